package perturb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestPerturber(t *testing.T, perturbation Perturbation, strategy Strategy, opts ...Option) *Perturber {
	t.Helper()
	p, err := New(Config{
		Perturbation: perturbation,
		DocSepToken:  sep,
		Strategy:     strategy,
		Seed:         seedPtr(0),
	}, opts...)
	require.NoError(t, err)
	return p
}

func TestSelectDocsInsufficientCandidates(t *testing.T) {
	p := newTestPerturber(t, Addition, Random)

	_, err := p.selectDocs(context.Background(), selection{
		documents: []string{example("a", "b", "c")},
		k:         3,
		query:     example("a"),
	})
	require.Error(t, err)
	assert.True(t, IsInsufficientCandidatesError(err))
}

func TestSelectDocsExcludesQueryDocuments(t *testing.T) {
	p := newTestPerturber(t, Addition, Random)

	sel, err := p.selectDocs(context.Background(), selection{
		documents: []string{example("a", "b"), example("c", "d")},
		k:         2,
		query:     example("a", "c"),
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"b", "d"}, sel.docs)
}

func TestSelectDocsRandomIsDistinct(t *testing.T) {
	p := newTestPerturber(t, Addition, Random)

	sel, err := p.selectDocs(context.Background(), selection{
		documents: []string{example("a", "b", "c", "d", "e")},
		k:         5,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c", "d", "e"}, sel.docs)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4}, sel.indices)
}

func TestSelectDocsRandomIgnoresTargetSilently(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := NewMockLogger(ctrl)

	p := newTestPerturber(t, Addition, Random, WithLogger(log))

	sel, err := p.selectDocs(context.Background(), selection{
		documents: []string{example("a", "b")},
		k:         1,
		target:    "a",
	})
	require.NoError(t, err)
	assert.Len(t, sel.docs, 1)
}

func TestSelectDocsRanksByTarget(t *testing.T) {
	p := newTestPerturber(t, Addition, BestCase, WithEmbedder(newFakeEmbedder()))
	ctx := context.Background()

	sel, err := p.selectDocs(ctx, selection{
		documents: []string{example("cherry", "banana", "apple")},
		k:         3,
		target:    "apple",
		largest:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "banana", "cherry"}, sel.docs)
	assert.Equal(t, []int{2, 1, 0}, sel.indices)

	sel, err = p.selectDocs(ctx, selection{
		documents: []string{example("cherry", "banana", "apple")},
		k:         2,
		target:    "apple",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"cherry", "banana"}, sel.docs)
}

func TestSelectDocsRanksByMeanQuerySimilarity(t *testing.T) {
	p := newTestPerturber(t, Addition, BestCase, WithEmbedder(newFakeEmbedder()))

	// durian is closest on average to apple and banana; cherry is orthogonal to both.
	sel, err := p.selectDocs(context.Background(), selection{
		documents: []string{example("cherry", "elder", "durian")},
		k:         3,
		query:     example("apple", "banana"),
		largest:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"durian", "elder", "cherry"}, sel.docs)
}

func TestSelectDocsRequiresReference(t *testing.T) {
	p := newTestPerturber(t, Addition, WorstCase, WithEmbedder(newFakeEmbedder()))
	ctx := context.Background()

	for name, sel := range map[string]selection{
		"enough candidates":  {documents: []string{example("apple", "banana")}, k: 1},
		"too few candidates": {documents: []string{example("apple")}, k: 3},
		"zero k":             {documents: []string{example("apple")}, k: 0},
	} {
		_, err := p.selectDocs(ctx, sel)
		require.Error(t, err, name)
		assert.True(t, IsInvalidArgumentError(err), name)
	}
}

func TestSelectDocsZeroK(t *testing.T) {
	p := newTestPerturber(t, Addition, BestCase, WithEmbedder(newFakeEmbedder()))

	sel, err := p.selectDocs(context.Background(), selection{documents: []string{example("apple")}, k: 0, target: "apple"})
	require.NoError(t, err)
	assert.Empty(t, sel.docs)
}

func TestRankIsStableOnTies(t *testing.T) {
	assert.Equal(t, []int{1, 3, 0, 2}, rank([]float32{0, 1, 0, 1}, true))
	assert.Equal(t, []int{0, 2, 1, 3}, rank([]float32{0, 1, 0, 1}, false))
}
