package cooccur

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteAdjList writes s as a whitespace-separated adjacency list. Each line
// starts with a node followed by its neighbors that have not already been
// written on an earlier line, so every edge appears exactly once. Weights are
// not preserved.
func WriteAdjList(w io.Writer, s *Subgraph) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "# cooccur adjacency list: %d nodes, %d edges\n", s.NodeCount(), s.EdgeCount()); err != nil {
		return fmt.Errorf("write adjlist header: %w", err)
	}

	neighbors := make(map[string][]string, s.NodeCount())
	for _, e := range s.edges {
		neighbors[e.Source] = append(neighbors[e.Source], e.Target)
		neighbors[e.Target] = append(neighbors[e.Target], e.Source)
	}

	written := make(map[string]bool, s.NodeCount())
	for _, n := range s.nodes {
		fields := []string{n.Word}
		for _, nbr := range neighbors[n.Word] {
			if !written[nbr] {
				fields = append(fields, nbr)
			}
		}
		written[n.Word] = true
		if _, err := fmt.Fprintln(bw, strings.Join(fields, " ")); err != nil {
			return fmt.Errorf("write adjlist line for %s: %w", n.Word, err)
		}
	}
	return bw.Flush()
}

// ReadAdjList parses an adjacency list into a Graph. Blank lines and lines
// starting with '#' are skipped. A line with one field declares an isolated
// node; "a b c" adds the edges a-b and a-c. Each node gets count 1 and each
// edge count is the number of lines declaring it.
func ReadAdjList(r io.Reader) (*Graph, error) {
	g := newGraph()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		self := fields[0]
		if !g.HasNode(self) {
			g.addOccurrence(self)
		}
		for _, nbr := range fields[1:] {
			if nbr == self {
				continue
			}
			if !g.HasNode(nbr) {
				g.addOccurrence(nbr)
			}
			g.addCooccurrence(self, nbr)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read adjlist line %d: %w", lineNo+1, err)
	}
	return g, nil
}
