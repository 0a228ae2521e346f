// Package wordset implements an ordered set of distinct strings together
// with its bracketed text form, "[a, b, c]".
package wordset

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrMalformed is returned by Parse for text that is not a bracketed list.
var ErrMalformed = errors.New("malformed word set")

const separator = ", "

// reserved may not appear inside an element: commas and ASCII whitespace.
const reserved = ", \t\n\v\f\r"

// Set keeps its words sorted in ascending byte order. The zero value is an
// empty set ready to use. A Set is not safe for concurrent use.
type Set struct {
	words []string
}

func New(words ...string) *Set {
	s := &Set{}
	for _, w := range words {
		s.Add(w)
	}
	return s
}

// Add inserts w and reports whether it was not already present.
func (s *Set) Add(w string) bool {
	i := sort.SearchStrings(s.words, w)
	if i < len(s.words) && s.words[i] == w {
		return false
	}
	s.words = append(s.words, "")
	copy(s.words[i+1:], s.words[i:])
	s.words[i] = w
	return true
}

// Union adds every word of other to s.
func (s *Set) Union(other *Set) {
	for _, w := range other.words {
		s.Add(w)
	}
}

func (s *Set) Contains(w string) bool {
	i := sort.SearchStrings(s.words, w)
	return i < len(s.words) && s.words[i] == w
}

func (s *Set) Len() int { return len(s.words) }

// Words returns a sorted copy of the set's contents.
func (s *Set) Words() []string {
	out := make([]string, len(s.words))
	copy(out, s.words)
	return out
}

func (s *Set) String() string {
	return "[" + strings.Join(s.words, separator) + "]"
}

// IsSerialized reports whether v looks like the output of Set.String.
func IsSerialized(v string) bool {
	return strings.HasPrefix(v, "[")
}

// Parse is the inverse of Set.String for sets whose words contain no
// reserved characters.
func Parse(v string) (*Set, error) {
	if len(v) < 2 || v[0] != '[' || v[len(v)-1] != ']' {
		return nil, fmt.Errorf("%w: %q", ErrMalformed, v)
	}
	body := v[1 : len(v)-1]
	s := &Set{}
	if body == "" {
		return s, nil
	}
	for _, w := range strings.Split(body, separator) {
		if w == "" {
			return nil, fmt.Errorf("%w: empty element in %q", ErrMalformed, v)
		}
		// String never produces an element holding a comma or a space.
		if strings.ContainsAny(w, reserved) {
			return nil, fmt.Errorf("%w: element %q in %q", ErrMalformed, w, v)
		}
		s.Add(w)
	}
	return s, nil
}
