package tokenize

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed stopwords/*.txt
var stopWordFiles embed.FS

// punctuation mirrors ASCII punctuation plus the typographic quotes and dash
// found in prose.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var typographic = []string{"“", "”", "‘", "’", "—"}

// StopList is a set of lowercase words dropped during tokenization.
type StopList map[string]struct{}

// DefaultStopList returns the union of the bundled English stop-word lists,
// single punctuation characters, and typographic quotes.
func DefaultStopList() StopList {
	s := make(StopList, 512)
	for _, name := range []string{"stopwords/nltk_english.txt", "stopwords/en.txt"} {
		f, err := stopWordFiles.Open(name)
		if err != nil {
			// Embedded at build time.
			panic(fmt.Sprintf("tokenize: missing embedded list %s: %v", name, err))
		}
		err = s.read(f)
		f.Close()
		if err != nil {
			panic(fmt.Sprintf("tokenize: reading embedded list %s: %v", name, err))
		}
	}
	for _, r := range punctuation {
		s[string(r)] = struct{}{}
	}
	s.Add(typographic...)
	return s
}

// Add inserts words, lowercased and trimmed.
func (s StopList) Add(words ...string) {
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			s[w] = struct{}{}
		}
	}
}

// Contains reports whether word is a stop word.
func (s StopList) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// LoadFile adds one word per line from path. Lines starting with '#' are skipped.
func (s StopList) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open stop words file: %w", err)
	}
	defer f.Close()
	if err := s.read(f); err != nil {
		return fmt.Errorf("read stop words file %s: %w", path, err)
	}
	return nil
}

func (s StopList) read(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s.Add(line)
	}
	return scanner.Err()
}
