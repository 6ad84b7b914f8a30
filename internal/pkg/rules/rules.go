// Package rules evaluates ordered keyword tables: the first rule with any
// keyword contained in the input wins.
package rules

import (
	"strings"
	"sync"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
)

// Rule maps a keyword set onto a value.
type Rule[T any] struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
	Value    T        `yaml:"value" json:"value"`
}

type finder interface {
	FindAll(haystack string) []ahocorasick.Match
}

type compiled[T any] struct {
	rule   Rule[T]
	finder finder
}

// Matcher is an immutable, compiled rule table.
type Matcher[T any] struct {
	mu    sync.Mutex
	rules []compiled[T]
}

// NewMatcher compiles the table, keeping its order. Rules without non-blank
// keywords can never match and are dropped.
func NewMatcher[T any](table []Rule[T]) *Matcher[T] {
	m := &Matcher[T]{rules: make([]compiled[T], 0, len(table))}
	for _, r := range table {
		keywords := normalize(r.Keywords)
		if len(keywords) == 0 {
			continue
		}
		builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
			AsciiCaseInsensitive: true,
			MatchOnlyWholeWords:  false,
			MatchKind:            ahocorasick.LeftMostFirstMatch,
			DFA:                  true,
		})
		ac := builder.Build(keywords)
		m.rules = append(m.rules, compiled[T]{rule: r, finder: ac})
	}
	return m
}

// Match returns the value and name of the first rule whose keywords occur in
// text, ignoring case.
func (m *Matcher[T]) Match(text string) (T, string, bool) {
	var zero T
	if text == "" {
		return zero, "", false
	}
	haystack := strings.ToLower(text)

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.rules {
		if len(c.finder.FindAll(haystack)) > 0 {
			return c.rule.Value, c.rule.Name, true
		}
	}
	return zero, "", false
}

// MatchOr is Match with a default for unmatched text.
func (m *Matcher[T]) MatchOr(text string, fallback T) T {
	if v, _, ok := m.Match(text); ok {
		return v
	}
	return fallback
}

// Len is the number of compiled rules.
func (m *Matcher[T]) Len() int {
	return len(m.rules)
}

func normalize(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}
