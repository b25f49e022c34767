package rules

import (
	"regexp"
	"strings"
)

// Matcher is a compiled case-insensitive name matcher. The zero value matches
// nothing.
type Matcher struct {
	re *regexp.Regexp
}

// Match reports whether the name matches the vocabulary.
func (m Matcher) Match(name string) bool {
	return m.re != nil && m.re.MatchString(name)
}

// CompileUnion joins regular-expression fragments into a single
// case-insensitive alternation. An empty list compiles to a never-matching
// Matcher.
func CompileUnion(fragments []string) (Matcher, error) {
	if len(fragments) == 0 {
		return Matcher{}, nil
	}
	re, err := regexp.Compile("(?i)" + strings.Join(fragments, "|"))
	if err != nil {
		return Matcher{}, err
	}
	return Matcher{re: re}, nil
}

// CompileLiteralUnion is CompileUnion for plain phrases: each entry is quoted
// before joining, so "J.Crew" matches literally.
func CompileLiteralUnion(phrases []string) (Matcher, error) {
	quoted := make([]string, len(phrases))
	for i, p := range phrases {
		quoted[i] = regexp.QuoteMeta(p)
	}
	return CompileUnion(quoted)
}

// CompilePattern compiles a single case-insensitive pattern.
func CompilePattern(pattern string) (Matcher, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return Matcher{}, err
	}
	return Matcher{re: re}, nil
}

// MustCompilePattern is CompilePattern for patterns fixed at build time.
func MustCompilePattern(pattern string) Matcher {
	m, err := CompilePattern(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

// TypeSet is an exact-match set of lowercase place-type tokens.
type TypeSet map[string]struct{}

// NewTypeSet builds a TypeSet, lowercasing entries.
func NewTypeSet(types []string) TypeSet {
	s := make(TypeSet, len(types))
	for _, t := range types {
		s[strings.ToLower(t)] = struct{}{}
	}
	return s
}

// Has reports membership for a single token (case-insensitive).
func (s TypeSet) Has(t string) bool {
	_, ok := s[strings.ToLower(t)]
	return ok
}

// HasAny reports whether any of the tokens is in the set.
func (s TypeSet) HasAny(tokens []string) bool {
	for _, t := range tokens {
		if s.Has(t) {
			return true
		}
	}
	return false
}

// Values returns the set's tokens. Order is unspecified.
func (s TypeSet) Values() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	return out
}
