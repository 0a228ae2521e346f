package maxword

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/Collapssar/maxwordlength/wordset"
)

// Aggregator groups words by length. It accepts merges from any number of
// goroutines until Finalize is called, after which it is read-only.
type Aggregator struct {
	mu        sync.Mutex
	groups    map[int]*wordset.Set
	finalized bool
}

func NewAggregator() *Aggregator {
	return &Aggregator{groups: make(map[int]*wordset.Set)}
}

// Merge adds c.Word to the group of c.Length. c must be a candidate
// LongestWord could have produced.
func (a *Aggregator) Merge(c Candidate) error {
	if err := checkWord(c.Length, c.Word); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCandidate, err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.finalized {
		return ErrFinalized
	}
	a.group(c.Length).Add(c.Word)
	return nil
}

// MergeValue adds value to the group of length. value is either a single
// word or a serialized partial set such as "[ant, bee]".
func (a *Aggregator) MergeValue(length int, value string) error {
	partial := wordset.New()
	if err := addValue(partial, length, value); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.finalized {
		return ErrFinalized
	}
	if partial.Len() > 0 {
		a.group(length).Union(partial)
	}
	return nil
}

// group must be called with a.mu held.
func (a *Aggregator) group(length int) *wordset.Set {
	s, ok := a.groups[length]
	if !ok {
		s = wordset.New()
		a.groups[length] = s
	}
	return s
}

// Finalize stops accepting merges and returns the group with the greatest
// length. It can only be called once.
func (a *Aggregator) Finalize() (Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.finalized {
		return Result{}, ErrFinalized
	}
	a.finalized = true

	if len(a.groups) == 0 {
		return Result{}, ErrEmptyCorpus
	}
	longest := -1
	for length := range a.groups {
		if length > longest {
			longest = length
		}
	}
	return Result{MaxLength: longest, Words: a.groups[longest].Words()}, nil
}

// Groups returns a snapshot of every group, longest first.
func (a *Aggregator) Groups() []Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Result, 0, len(a.groups))
	for length, s := range a.groups {
		out = append(out, Result{MaxLength: length, Words: s.Words()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MaxLength > out[j].MaxLength })
	return out
}

// addValue inserts a raw word or every word of a serialized set into s.
func addValue(s *wordset.Set, length int, value string) error {
	if !wordset.IsSerialized(value) {
		if err := checkWord(length, value); err != nil {
			return fmt.Errorf("%w: key %d: %v", ErrInvalidCandidate, length, err)
		}
		s.Add(value)
		return nil
	}
	partial, err := wordset.Parse(value)
	if err != nil {
		return fmt.Errorf("%w: key %d: %w", ErrMalformedPartialSet, length, err)
	}
	for _, w := range partial.Words() {
		if err := checkWord(length, w); err != nil {
			return fmt.Errorf("%w: key %d value %q: %v", ErrMalformedPartialSet, length, value, err)
		}
	}
	s.Union(partial)
	return nil
}

// checkWord reports why word cannot be stored under length, if it cannot.
func checkWord(length int, word string) error {
	switch {
	case !Qualifies(word) || trim(word) != word:
		return fmt.Errorf("word %q does not qualify", word)
	case strings.ToLower(word) != word:
		return fmt.Errorf("word %q is not lowercase", word)
	case utf8.RuneCountInString(word) != length:
		return fmt.Errorf("word %q is not %d characters long", word, length)
	}
	return nil
}
