// Package text contributes string helpers and a text builder. Its types are
// declared in an embedded manifest and bound to the Go handlers below.
package text

import (
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Builder accumulates text.
type Builder struct {
	parts []string
}

// NewBuilder returns an empty builder.
func NewBuilder() Builder {
	return Builder{}
}

// Write appends s and returns b for chaining.
func Write(b *Builder, s string) *Builder {
	b.parts = append(b.parts, s)
	return b
}

// String returns everything written so far.
func String(b Builder) string {
	return strings.Join(b.parts, "")
}

// Len returns the number of bytes written so far.
func Len(b Builder) int {
	n := 0
	for _, p := range b.parts {
		n += len(p)
	}
	return n
}

func Upper(s string) string { return strings.ToUpper(s) }

func Lower(s string) string { return strings.ToLower(s) }

func Repeat(s string, n int) string { return strings.Repeat(s, n) }

func Join(parts []string, sep string) string { return strings.Join(parts, sep) }

func Split(s, sep string) []string { return strings.Split(s, sep) }

// WordCount counts the whitespace separated words of s.
func WordCount(s string) map[string]int {
	counts := make(map[string]int)
	for _, w := range strings.Fields(s) {
		counts[w]++
	}
	return counts
}

// Vocabulary returns the distinct words of s in sorted order.
func Vocabulary(s string) []string {
	words := maps.Keys(WordCount(s))
	slices.Sort(words)
	return words
}
