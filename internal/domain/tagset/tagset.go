// Package tagset derives tag sets from raw catalog tag strings and compares them.
package tagset

import (
	"sort"
	"strings"
)

// Delimiter separates tags in a raw catalog tag string.
const Delimiter = ", "

// Set is a deduplicated set of tag tokens.
type Set map[string]struct{}

// Normalize splits a raw tag string into a Set.
// Tokens are split on commas, trimmed, and deduplicated; empty tokens are
// dropped. An empty raw string yields an empty, non-nil Set.
func Normalize(raw string) Set {
	s := make(Set)
	if strings.TrimSpace(raw) == "" {
		return s
	}
	// Splitting on the bare comma covers both "a, b" and stray "a,b" / "a ,b".
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		s[tok] = struct{}{}
	}
	return s
}

// Of builds a Set from already-split tags, applying the same trimming rules as Normalize.
func Of(tags ...string) Set {
	s := make(Set, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			s[t] = struct{}{}
		}
	}
	return s
}

// Len returns the number of tags.
func (s Set) Len() int { return len(s) }

// Has reports whether tag is a member.
func (s Set) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

// Sorted returns the tags in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// String renders the set joined by Delimiter in lexical order.
func (s Set) String() string {
	return strings.Join(s.Sorted(), Delimiter)
}

// Similarity returns the Jaccard index |a∩b| / |a∪b|.
// It is 0 when either set is empty, including when both are.
func Similarity(a, b Set) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	inter := 0
	for t := range small {
		if large.Has(t) {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
