package perturb

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/Aleph-Alpha/open-mds/pkg/embedcache"
)

// selection describes one call to the document selector.
type selection struct {
	// documents are examples or loose documents; each is split on the separator.
	documents []string
	k         int
	// query, when set, is an example whose documents are excluded from the
	// candidates and, without a target, serve as the similarity reference.
	query string
	// target is the similarity reference under non-random strategies.
	target  string
	largest bool
}

// selected holds the chosen documents and their positions in the flattened candidate list.
type selected struct {
	docs    []string
	indices []int
}

// selectDocs chooses sel.k documents from sel.documents according to the Perturber's strategy.
//
// Under the random strategy documents are sampled uniformly without replacement
// and the target is not consulted.
// Otherwise candidates are ranked by similarity to the target, or by mean
// similarity to the query documents, and the top (largest) or bottom k are
// returned in ranking order.
func (p *Perturber) selectDocs(ctx context.Context, sel selection) (selected, error) {
	if p.strategy != Random && sel.query == "" && sel.target == "" {
		return selected{}, fmt.Errorf("%w: strategy %s needs a query or a target", ErrInvalidArgument, p.strategy)
	}

	var candidates []string
	for _, doc := range sel.documents {
		candidates = append(candidates, SplitDocs(doc, p.docSepToken)...)
	}

	var queryDocs []string
	if sel.query != "" {
		queryDocs = SplitDocs(sel.query, p.docSepToken)
		candidates = slices.DeleteFunc(candidates, func(c string) bool {
			return slices.Contains(queryDocs, c)
		})
	}

	if sel.k <= 0 {
		return selected{}, nil
	}
	if len(candidates) < sel.k {
		return selected{}, fmt.Errorf("%w: need %d documents, %d eligible", ErrInsufficientCandidates, sel.k, len(candidates))
	}

	if p.strategy == Random {
		idx := p.sample(len(candidates), sel.k)
		return selected{docs: pick(candidates, idx), indices: idx}, nil
	}

	scores, err := p.score(ctx, candidates, queryDocs, sel.target)
	if err != nil {
		return selected{}, err
	}

	idx := rank(scores, sel.largest)[:sel.k]
	return selected{docs: pick(candidates, idx), indices: idx}, nil
}

// score returns the similarity of every candidate to the target, or the mean similarity to queryDocs.
func (p *Perturber) score(ctx context.Context, candidates, queryDocs []string, target string) ([]float32, error) {
	defer p.observeCall("embedding", time.Now())

	vectors, err := p.cache.Embeddings(ctx, candidates, p.embedder)
	if err != nil {
		return nil, fmt.Errorf("embedding candidates: %w", err)
	}

	var refs [][]float32
	if target != "" {
		refs, err = p.cache.Embeddings(ctx, []string{target}, p.embedder)
	} else {
		if len(queryDocs) == 0 {
			return nil, fmt.Errorf("%w: query has no documents", ErrInvalidArgument)
		}
		refs, err = p.cache.Embeddings(ctx, queryDocs, p.embedder)
	}
	if err != nil {
		return nil, fmt.Errorf("embedding reference: %w", err)
	}

	scores := make([]float32, len(vectors))
	for i, v := range vectors {
		var sum float32
		for _, ref := range refs {
			sum += embedcache.Dot(v, ref)
		}
		scores[i] = sum / float32(len(refs))
	}
	return scores, nil
}

// rank orders positions by score, descending when largest is set. Ties keep insertion order.
func rank(scores []float32, largest bool) []int {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		if largest {
			return scores[idx[a]] > scores[idx[b]]
		}
		return scores[idx[a]] < scores[idx[b]]
	})
	return idx
}

// sample draws k distinct positions from [0, n) in draw order.
func (p *Perturber) sample(n, k int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + p.rng.IntN(n-i)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm[:k]
}
