package maxword

import (
	"strings"
	"unicode/utf8"
)

// punctuation is stripped from both ends of every token.
const punctuation = `.,?!'";:|[](){}&@#$%=_~-<>*^`

// blocked disqualifies a token wherever it appears in it.
const blocked = ":/@.,"

// Candidate is the longest qualifying word of one line.
type Candidate struct {
	Length int
	Word   string
}

// Strip removes punctuation from the right end of token, then from the left.
func Strip(token string) string {
	return strings.TrimLeft(strings.TrimRight(token, punctuation), punctuation)
}

// Qualifies reports whether a stripped token may be a line's winner.
func Qualifies(word string) bool {
	return trim(word) != "" && !strings.ContainsAny(word, blocked)
}

// isSpace matches the ASCII whitespace set: space, \t, \n, \v, \f, \r.
// Other Unicode spaces such as U+00A0 stay inside tokens.
func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// trim drops control characters and spaces (U+0000 to U+0020) from both ends.
func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return r <= ' ' })
}

// tokens splits line on whitespace runs and then on "--".
func tokens(line string) []string {
	var out []string
	for _, field := range strings.FieldsFunc(line, isSpace) {
		out = append(out, strings.Split(field, "--")...)
	}
	return out
}

// LongestWord returns the first strictly longest qualifying word of line,
// lowercased. ok is false when no word on the line qualifies.
func LongestWord(line string) (c Candidate, ok bool) {
	longest, best := "", 0
	for _, tok := range tokens(line) {
		word := trim(Strip(tok))
		if !Qualifies(word) {
			continue
		}
		if n := utf8.RuneCountInString(word); n > best {
			longest, best = word, n
		}
	}
	if best == 0 {
		return Candidate{}, false
	}
	longest = strings.ToLower(longest)
	return Candidate{Length: utf8.RuneCountInString(longest), Word: longest}, true
}
