package maxword

import (
	"fmt"
	"strings"

	"github.com/Collapssar/maxwordlength/wordset"
)

// Result is the longest word length found and every distinct word of that
// length, sorted.
type Result struct {
	MaxLength int      `json:"maxLength"`
	Words     []string `json:"words"`
}

// String renders the words as a bracketed list, "[w1, w2]".
func (r Result) String() string {
	return wordset.New(r.Words...).String()
}

// Summary is the human-readable report for a run over source.
func (r Result) Summary(source string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The longest word(s) found in %s equal(s) %d characters long.\n", source, r.MaxLength)
	fmt.Fprintf(&b, "Longest word(s) found in %s = %s\n", source, strings.Join(r.Words, ", "))
	return b.String()
}
