package visualization

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/nvandessel/cooccur/internal/cooccur"
)

// Format specifies the output format for graph rendering.
type Format string

const (
	FormatHTML    Format = "html"
	FormatDOT     Format = "dot"
	FormatJSON    Format = "json"
	FormatPNG     Format = "png"
	FormatAdjList Format = "adjlist"
)

// Formats lists every supported format.
var Formats = []Format{FormatHTML, FormatDOT, FormatJSON, FormatPNG, FormatAdjList}

// ErrUnknownFormat is returned by ParseFormat for an unsupported name.
var ErrUnknownFormat = errors.New("unknown render format")

// ParseFormat validates a format name. An empty name selects HTML.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatHTML, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Extension returns the file extension conventionally used for f.
func (f Format) Extension() string {
	if f == FormatAdjList {
		return ".adjlist"
	}
	return "." + string(f)
}

// Render writes sub to w in format f.
func Render(w io.Writer, f Format, sub *cooccur.Subgraph, opts Options) error {
	switch f {
	case FormatDOT:
		_, err := io.WriteString(w, RenderDOT(sub, opts.Style))
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(RenderJSON(sub, opts))
	case FormatHTML:
		html, err := RenderHTML(BuildView(sub, opts), nil)
		if err != nil {
			return err
		}
		_, err = w.Write(html)
		return err
	case FormatPNG:
		return RenderPNG(w, BuildView(sub, opts), opts.Style)
	case FormatAdjList:
		return cooccur.WriteAdjList(w, sub)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// RenderDOT produces an undirected Graphviz representation of sub.
func RenderDOT(sub *cooccur.Subgraph, style Style) string {
	var b strings.Builder
	b.WriteString("graph cooccur {\n")
	b.WriteString("  layout=neato;\n")
	b.WriteString("  overlap=false;\n")
	b.WriteString("  node [shape=circle, style=filled, fontname=\"DejaVu Sans\"];\n")
	b.WriteString("  edge [fontname=\"DejaVu Sans\", fontsize=10];\n\n")

	for _, n := range sub.Nodes() {
		b.WriteString(fmt.Sprintf("  %q [label=%q, fillcolor=%q, fontcolor=%q, tooltip=\"count=%d\"];\n",
			n.Word, Label(n.Word), style.ColorFor(sub.Degree(n.Word)), style.LabelColor, n.Count))
	}
	b.WriteString("\n")

	edges := sub.Edges()
	lo, hi := edgeRange(edges)
	for _, e := range edges {
		t := Normalize(float64(e.Count), lo, hi)
		b.WriteString(fmt.Sprintf("  %q -- %q [weight=%d, penwidth=%.1f, color=%q, tooltip=\"count=%d\"];\n",
			e.Source, e.Target, e.Count, EdgeWidth(t), Blues(t), e.Count))
	}

	b.WriteString("}\n")
	return b.String()
}

// RenderJSON returns the styled, laid out view of sub.
func RenderJSON(sub *cooccur.Subgraph, opts Options) *View {
	return BuildView(sub, opts)
}

// FormState pre-fills the selection form served by Server.
type FormState struct {
	Zoom    int
	Names   string
	Missing []string
}

// htmlTemplateData holds data passed to the HTML template.
// GraphJSON is pre-sanitized JSON (via json.HTMLEscape) safe for inline <script>.
type htmlTemplateData struct {
	View      *View
	GraphJSON template.JS
	Form      *FormState
}

var graphTemplate = template.Must(template.New("graph.html.tmpl").Funcs(template.FuncMap{
	"half": func(v float64) float64 { return v / 2 },
}).ParseFS(templates, "templates/graph.html.tmpl"))

// RenderHTML produces a self-contained HTML page with an inline SVG drawing
// of v. A non-nil form adds the selection controls used by Server.
func RenderHTML(v *View, form *FormState) ([]byte, error) {
	graphJSON, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal graph data: %w", err)
	}

	// json.HTMLEscape converts <, >, & to unicode escapes, preventing
	// </script> breakout from document words.
	var escaped bytes.Buffer
	json.HTMLEscape(&escaped, graphJSON)

	var buf bytes.Buffer
	data := htmlTemplateData{
		View:      v,
		GraphJSON: template.JS(escaped.String()), // #nosec G203
		Form:      form,
	}
	if err := graphTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute HTML template: %w", err)
	}
	return buf.Bytes(), nil
}
