package tokenize

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// Sentence splitter names accepted by ParseSplitter.
const (
	SplitterPunkt  = "punkt"
	SplitterSimple = "simple"
)

// ErrInvalidSplitter is returned for an unknown splitter name.
var ErrInvalidSplitter = errors.New("invalid sentence splitter")

// SentenceSplitter breaks a document into sentences.
type SentenceSplitter interface {
	Split(text string) []string
}

// PunktSplitter splits with the pre-trained English Punkt model.
type PunktSplitter struct {
	tok *sentences.DefaultSentenceTokenizer
}

// NewPunktSplitter loads the bundled English Punkt model.
func NewPunktSplitter() (*PunktSplitter, error) {
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("load punkt model: %w", err)
	}
	return &PunktSplitter{tok: tok}, nil
}

// Split implements SentenceSplitter.
func (p *PunktSplitter) Split(text string) []string {
	var out []string
	for _, s := range p.tok.Tokenize(text) {
		if t := strings.TrimSpace(s.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// SimpleSplitter ends a sentence at '.', '!' or '?' followed by whitespace
// or end of text, and at blank lines. It knows nothing about abbreviations.
type SimpleSplitter struct{}

// Split implements SentenceSplitter.
func (SimpleSplitter) Split(text string) []string {
	var out []string
	runes := []rune(text)
	start := 0
	flush := func(end int) {
		if t := strings.TrimSpace(string(runes[start:end])); t != "" {
			out = append(out, t)
		}
		start = end
	}

	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; {
		case r == '.' || r == '!' || r == '?':
			j := i + 1
			// Absorb runs like "?!" and closing quotes.
			for j < len(runes) && isTerminalTrail(runes[j]) {
				j++
			}
			if j == len(runes) || unicode.IsSpace(runes[j]) {
				flush(j)
				i = j - 1
			}
		case r == '\n':
			if i+1 < len(runes) && runes[i+1] == '\n' {
				flush(i)
			}
		}
	}
	flush(len(runes))
	return out
}

func isTerminalTrail(r rune) bool {
	switch r {
	case '.', '!', '?', '"', '\'', ')', '”', '’':
		return true
	}
	return false
}

// ParseSplitter returns the splitter registered under name. An empty name
// selects Punkt.
func ParseSplitter(name string) (SentenceSplitter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", SplitterPunkt:
		return NewPunktSplitter()
	case SplitterSimple:
		return SimpleSplitter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (want %s or %s)", ErrInvalidSplitter, name, SplitterPunkt, SplitterSimple)
	}
}
