// Package tokenize turns a document into filtered, lowercase sentences.
package tokenize

import (
	"fmt"
	"iter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Options configures a Tokenizer.
type Options struct {
	// Splitter names the sentence splitter: "punkt" (default) or "simple".
	Splitter string
	// ExtraStopWords are added to the bundled lists.
	ExtraStopWords []string
	// StopWordsFile, if set, is read one word per line.
	StopWordsFile string
}

// Tokenizer lowercases text, splits it into sentences and words, and drops
// stop words.
type Tokenizer struct {
	splitter SentenceSplitter
	stop     StopList
}

// New builds a Tokenizer from opts.
func New(opts Options) (*Tokenizer, error) {
	splitter, err := ParseSplitter(opts.Splitter)
	if err != nil {
		return nil, err
	}
	stop := DefaultStopList()
	stop.Add(opts.ExtraStopWords...)
	if opts.StopWordsFile != "" {
		if err := stop.LoadFile(opts.StopWordsFile); err != nil {
			return nil, fmt.Errorf("tokenizer: %w", err)
		}
	}
	return &Tokenizer{splitter: splitter, stop: stop}, nil
}

// NewWith builds a Tokenizer around an existing splitter and stop list.
func NewWith(splitter SentenceSplitter, stop StopList) *Tokenizer {
	return &Tokenizer{splitter: splitter, stop: stop}
}

// Lower composes text to NFC and lowercases it using English casing rules,
// so precomposed and decomposed spellings of a word compare equal.
func Lower(text string) string {
	return cases.Lower(language.English).String(norm.NFC.String(text))
}

// Filter lowercases the words of one sentence and drops stop words.
func (t *Tokenizer) Filter(sentence string) []string {
	words := Words(sentence)
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = Lower(w)
		if !t.stop.Contains(w) {
			out = append(out, w)
		}
	}
	return out
}

// Sentences lazily yields the filtered tokens of each sentence of text.
// Sentences that lose every token to filtering are yielded empty.
func (t *Tokenizer) Sentences(text string) iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		for _, s := range t.splitter.Split(Lower(text)) {
			if !yield(t.Filter(s)) {
				return
			}
		}
	}
}
