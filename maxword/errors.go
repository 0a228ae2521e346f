package maxword

import "errors"

var (
	// ErrEmptyCorpus means no line of the input produced a candidate.
	ErrEmptyCorpus = errors.New("empty corpus: no qualifying words")

	// ErrMalformedPartialSet means a bracketed value could not be parsed.
	ErrMalformedPartialSet = errors.New("malformed partial set")

	// ErrInvalidCandidate means a word is empty, would not qualify, or does
	// not have the length it was merged under.
	ErrInvalidCandidate = errors.New("invalid candidate")

	ErrFinalized = errors.New("aggregator already finalized")
)
