package perturb

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
)

// operand is the per-example input shared by every operator.
type operand struct {
	example string
	// frac is the fraction of documents to perturb.
	frac float64
	// target is the similarity reference; empty under the random strategy.
	target string
	// pool is the deduplicated candidate pool of the batch.
	pool []string
}

// apply runs the configured perturbation on one example and returns the
// perturbed example together with the number of documents it touched.
func (p *Perturber) apply(ctx context.Context, op operand) (string, int, error) {
	switch p.perturbation {
	case Sorting:
		return p.sorting(ctx, op)
	case Duplication:
		return p.duplication(ctx, op)
	case Addition:
		return p.addition(ctx, op)
	case Deletion:
		return p.deletion(ctx, op)
	case Replacement:
		return p.replacement(ctx, op)
	case Backtranslation:
		return p.backtranslation(ctx, op)
	default:
		return "", 0, fmt.Errorf("%w: %q", ErrUnknownPerturbation, p.perturbation)
	}
}

func (p *Perturber) bestCase() bool { return p.strategy == BestCase }

func (p *Perturber) worstCase() bool { return p.strategy == WorstCase }

// sorting reorders the documents of an example. The fraction is ignored.
func (p *Perturber) sorting(ctx context.Context, op operand) (string, int, error) {
	docs := SplitDocs(op.example, p.docSepToken)

	if p.strategy == Random {
		p.rng.Shuffle(len(docs), func(i, j int) { docs[i], docs[j] = docs[j], docs[i] })
		return JoinDocs(docs, p.docSepToken), len(docs), nil
	}

	sel, err := p.selectDocs(ctx, selection{
		documents: []string{op.example},
		k:         len(docs),
		target:    op.target,
		largest:   p.bestCase(),
	})
	if err != nil {
		return "", 0, err
	}
	return JoinDocs(pick(docs, sel.indices), p.docSepToken), len(docs), nil
}

// duplication appends copies of k documents of the example to its end.
func (p *Perturber) duplication(ctx context.Context, op operand) (string, int, error) {
	docs := SplitDocs(op.example, p.docSepToken)
	k := NumToPerturb(op.frac, len(docs))

	idx, err := p.ownPositions(ctx, op, docs, k, p.bestCase())
	if err != nil {
		return "", 0, err
	}

	out := append(slices.Clone(docs), pick(docs, idx)...)
	return JoinDocs(out, p.docSepToken), k, nil
}

// addition appends k documents drawn from the candidate pool that are not
// already part of the example.
func (p *Perturber) addition(ctx context.Context, op operand) (string, int, error) {
	docs := SplitDocs(op.example, p.docSepToken)
	k := NumToPerturb(op.frac, len(docs))

	sel, err := p.selectDocs(ctx, selection{
		documents: op.pool,
		k:         k,
		query:     op.example,
		target:    op.target,
		largest:   p.bestCase(),
	})
	if err != nil {
		return "", 0, err
	}

	out := append(docs, sel.docs...)
	return JoinDocs(out, p.docSepToken), k, nil
}

// deletion removes k documents, keeping the survivors in order.
func (p *Perturber) deletion(ctx context.Context, op operand) (string, int, error) {
	docs := SplitDocs(op.example, p.docSepToken)
	k := NumToPerturb(op.frac, len(docs))
	if k >= len(docs) {
		return "", len(docs), nil
	}

	// Under worst-case the documents most similar to the target are removed.
	idx, err := p.ownPositions(ctx, op, docs, k, p.worstCase())
	if err != nil {
		return "", 0, err
	}

	out := make([]string, 0, len(docs)-k)
	for i, doc := range docs {
		if !slices.Contains(idx, i) {
			out = append(out, doc)
		}
	}
	return JoinDocs(out, p.docSepToken), k, nil
}

// replacement overwrites k documents of the example in place with documents
// from the candidate pool that are not already part of it.
func (p *Perturber) replacement(ctx context.Context, op operand) (string, int, error) {
	docs := SplitDocs(op.example, p.docSepToken)
	k := NumToPerturb(op.frac, len(docs))

	repl, err := p.selectDocs(ctx, selection{
		documents: op.pool,
		k:         k,
		query:     op.example,
		target:    op.target,
		largest:   p.bestCase(),
	})
	if err != nil {
		return "", 0, err
	}

	// Best-case brings in the most similar replacements and overwrites the least similar originals.
	var idx []int
	if p.strategy == Random {
		idx = p.sample(len(docs), k)
	} else {
		sel, err := p.selectDocs(ctx, selection{
			documents: []string{op.example},
			k:         k,
			target:    op.target,
			largest:   !p.bestCase(),
		})
		if err != nil {
			return "", 0, err
		}
		idx = sel.indices
	}

	for i, j := range idx {
		docs[j] = strings.TrimSpace(repl.docs[i])
	}
	return JoinDocs(docs, p.docSepToken), k, nil
}

// backtranslation round-trips the sentences of k documents through the
// translator and writes the corrupted text back at the same positions.
func (p *Perturber) backtranslation(ctx context.Context, op operand) (string, int, error) {
	docs := SplitDocs(op.example, p.docSepToken)
	k := NumToPerturb(op.frac, len(docs))

	var idx []int
	switch {
	case k >= len(docs):
		idx = make([]int, len(docs))
		for i := range idx {
			idx[i] = i
		}
	case p.strategy == Random:
		sel, err := p.selectDocs(ctx, selection{documents: []string{op.example}, k: k})
		if err != nil {
			return "", 0, err
		}
		idx = sel.indices
	default:
		sel, err := p.selectDocs(ctx, selection{
			documents: []string{op.example},
			k:         k,
			target:    op.target,
			largest:   p.worstCase(),
		})
		if err != nil {
			return "", 0, err
		}
		idx = sel.indices
	}

	if len(idx) == 0 {
		return JoinDocs(docs, p.docSepToken), 0, nil
	}

	splitter, err := p.sentenceSplitter()
	if err != nil {
		return "", 0, err
	}

	var sentences []string
	counts := make([]int, len(idx))
	for i, j := range idx {
		s := splitter.Split(docs[j])
		if len(s) == 0 {
			s = []string{docs[j]}
		}
		counts[i] = len(s)
		sentences = append(sentences, s...)
	}

	start := time.Now()
	translated, err := p.translator.Augment(ctx, sentences)
	p.observeCall("translation", start)
	if err != nil {
		return "", 0, fmt.Errorf("back-translating %d sentences: %w", len(sentences), err)
	}
	if len(translated) != len(sentences) {
		return "", 0, fmt.Errorf("translator returned %d sentences for %d inputs", len(translated), len(sentences))
	}

	offset := 0
	for i, j := range idx {
		parts := translated[offset : offset+counts[i]]
		offset += counts[i]
		for n := range parts {
			parts[n] = strings.TrimSpace(parts[n])
		}
		docs[j] = strings.Join(parts, " ")
	}
	return JoinDocs(docs, p.docSepToken), len(idx), nil
}

// ownPositions chooses k positions within the example's own documents.
// k equal to the document count selects every position in order.
func (p *Perturber) ownPositions(ctx context.Context, op operand, docs []string, k int, largest bool) ([]int, error) {
	if k >= len(docs) {
		idx := make([]int, len(docs))
		for i := range idx {
			idx[i] = i
		}
		return idx, nil
	}
	if p.strategy == Random {
		return p.sample(len(docs), k), nil
	}
	sel, err := p.selectDocs(ctx, selection{
		documents: []string{op.example},
		k:         k,
		target:    op.target,
		largest:   largest,
	})
	if err != nil {
		return nil, err
	}
	return sel.indices, nil
}
