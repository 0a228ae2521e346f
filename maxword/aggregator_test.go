package maxword

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregator_MergeIdempotent(t *testing.T) {
	a := NewAggregator()
	require.NoError(t, a.Merge(Candidate{5, "quick"}))
	require.NoError(t, a.Merge(Candidate{5, "quick"}))
	r, err := a.Finalize()
	require.NoError(t, err)
	require.Equal(t, Result{MaxLength: 5, Words: []string{"quick"}}, r)
}

func TestAggregator_MergeCommutative(t *testing.T) {
	cands := []Candidate{{5, "quick"}, {3, "fox"}, {5, "jumps"}, {5, "brown"}, {4, "lazy"}}
	want := Result{MaxLength: 5, Words: []string{"brown", "jumps", "quick"}}

	orders := [][]int{{0, 1, 2, 3, 4}, {4, 3, 2, 1, 0}, {2, 0, 4, 1, 3}}
	for _, order := range orders {
		a := NewAggregator()
		for _, i := range order {
			require.NoError(t, a.Merge(cands[i]))
		}
		r, err := a.Finalize()
		require.NoError(t, err)
		require.Equal(t, want, r)
	}
}

func TestAggregator_SerializedEqualsIndividual(t *testing.T) {
	a := NewAggregator()
	require.NoError(t, a.MergeValue(5, "[jumps, quick]"))

	b := NewAggregator()
	require.NoError(t, b.Merge(Candidate{5, "jumps"}))
	require.NoError(t, b.Merge(Candidate{5, "quick"}))

	ra, err := a.Finalize()
	require.NoError(t, err)
	rb, err := b.Finalize()
	require.NoError(t, err)
	require.Equal(t, rb, ra)
}

func TestAggregator_MergeValueMixed(t *testing.T) {
	a := NewAggregator()
	require.NoError(t, a.MergeValue(5, "quick"))
	require.NoError(t, a.MergeValue(5, "[brown, quick]"))
	require.NoError(t, a.MergeValue(9, "[]"))
	r, err := a.Finalize()
	require.NoError(t, err)
	require.Equal(t, Result{MaxLength: 5, Words: []string{"brown", "quick"}}, r)
}

func TestAggregator_MalformedPartialSet(t *testing.T) {
	a := NewAggregator()
	err := a.MergeValue(5, "[jumps, quick")
	require.ErrorIs(t, err, ErrMalformedPartialSet)
	require.Contains(t, err.Error(), "key 5")
	require.Contains(t, err.Error(), "[jumps, quick")
}

func TestAggregator_Empty(t *testing.T) {
	_, err := NewAggregator().Finalize()
	require.ErrorIs(t, err, ErrEmptyCorpus)
}

func TestAggregator_FinalizedIsReadOnly(t *testing.T) {
	a := NewAggregator()
	require.NoError(t, a.Merge(Candidate{3, "fox"}))
	_, err := a.Finalize()
	require.NoError(t, err)

	require.ErrorIs(t, a.Merge(Candidate{5, "quick"}), ErrFinalized)
	require.ErrorIs(t, a.MergeValue(5, "[quick]"), ErrFinalized)
	_, err = a.Finalize()
	require.ErrorIs(t, err, ErrFinalized)
	require.Equal(t, []Result{{MaxLength: 3, Words: []string{"fox"}}}, a.Groups())
}

func TestAggregator_ConcurrentMerge(t *testing.T) {
	a := NewAggregator()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				w := fmt.Sprintf("w%03d", i)
				assert.NoError(t, a.Merge(Candidate{len(w), w}))
			}
		}(g)
	}
	wg.Wait()
	r, err := a.Finalize()
	require.NoError(t, err)
	require.Equal(t, 4, r.MaxLength)
	require.Len(t, r.Words, 100)
	require.Equal(t, "w000", r.Words[0])
	require.Equal(t, "w099", r.Words[99])
}

func TestAggregator_Groups(t *testing.T) {
	a := NewAggregator()
	require.NoError(t, a.Merge(Candidate{3, "fox"}))
	require.NoError(t, a.Merge(Candidate{5, "quick"}))
	require.NoError(t, a.Merge(Candidate{3, "dog"}))
	require.Equal(t, []Result{
		{MaxLength: 5, Words: []string{"quick"}},
		{MaxLength: 3, Words: []string{"dog", "fox"}},
	}, a.Groups())
}

func TestAggregator_RejectsInvalidCandidates(t *testing.T) {
	a := NewAggregator()
	for _, c := range []Candidate{
		{0, "xyz"},
		{0, ""},
		{4, "xyz"},
		{3, "XYZ"},
		{3, "a.b"},
		{9, "user@host"},
		{4, " xyz"},
	} {
		require.ErrorIs(t, a.Merge(c), ErrInvalidCandidate, "%+v", c)
	}
	require.ErrorIs(t, a.MergeValue(3, "quick"), ErrInvalidCandidate)
	require.Empty(t, a.Groups())

	_, err := a.Finalize()
	require.ErrorIs(t, err, ErrEmptyCorpus)
}

func TestAggregator_PartialSetWithForeignWords(t *testing.T) {
	for _, v := range []string{"[a,b]", "[a.b]", "[ab:]", "[quick, brown, Jumps]", "[quick, fox]"} {
		a := NewAggregator()
		err := a.MergeValue(5, v)
		require.ErrorIs(t, err, ErrMalformedPartialSet, v)
		require.Empty(t, a.Groups(), v)
	}
}
