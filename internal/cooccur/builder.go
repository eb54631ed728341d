package cooccur

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// CountMode controls how a co-occurring pair is counted within one sentence.
type CountMode string

const (
	// CountOnce adds 1 per unordered pair of distinct token positions.
	CountOnce CountMode = "once"

	// CountLegacy visits every ordered pair of positions, so each unordered
	// pair adds 2. Edge counts are exactly twice the CountOnce values.
	CountLegacy CountMode = "legacy"
)

// ErrInvalidCountMode is returned by ParseCountMode for unknown modes.
var ErrInvalidCountMode = errors.New("invalid count mode")

// ParseCountMode maps a configuration string to a CountMode.
// The empty string selects CountOnce.
func ParseCountMode(s string) (CountMode, error) {
	switch CountMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", CountOnce:
		return CountOnce, nil
	case CountLegacy:
		return CountLegacy, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: once, legacy)", ErrInvalidCountMode, s)
	}
}

// Builder accumulates sentences into a single owned Graph.
// A Builder is not safe for concurrent use.
type Builder struct {
	mode      CountMode
	graph     *Graph
	sentences int
	tokens    int
}

// NewBuilder creates a builder using mode. An unknown mode falls back to CountOnce.
func NewBuilder(mode CountMode) *Builder {
	if mode != CountLegacy {
		mode = CountOnce
	}
	return &Builder{mode: mode, graph: newGraph()}
}

// Mode returns the builder's count mode.
func (b *Builder) Mode() CountMode { return b.mode }

// AddSentence records one sentence of already-filtered tokens.
// Every token increments its node; every pair of positions holding
// distinct tokens increments their shared edge.
func (b *Builder) AddSentence(tokens []string) {
	b.sentences++
	if len(tokens) == 0 {
		return
	}
	b.tokens += len(tokens)

	for _, v := range tokens {
		b.graph.addOccurrence(v)
	}

	for i, v := range tokens {
		for j, w := range tokens {
			if v == w {
				continue
			}
			if b.mode == CountOnce && j < i {
				continue
			}
			b.graph.addCooccurrence(v, w)
		}
	}
}

// Sentences returns the number of sentences seen, including empty ones.
func (b *Builder) Sentences() int { return b.sentences }

// Tokens returns the number of tokens seen.
func (b *Builder) Tokens() int { return b.tokens }

// Graph returns the accumulated graph. The builder must not be used afterwards.
func (b *Builder) Graph() *Graph {
	g := b.graph
	b.graph = newGraph()
	return g
}

// Build consumes every sentence in seq and returns the resulting graph.
func Build(seq iter.Seq[[]string], mode CountMode) *Graph {
	b := NewBuilder(mode)
	for sentence := range seq {
		b.AddSentence(sentence)
	}
	return b.Graph()
}
