// Package perturb perturbs multi-document summarization inputs to simulate
// retrieval errors.
//
// An example is a single string holding several documents joined by a
// separator token. A Perturber is configured with one of six perturbations
// and a selection strategy:
//
//   - sorting reorders the documents
//   - duplication appends copies of some documents
//   - addition appends documents taken from other examples
//   - deletion removes documents
//   - replacement overwrites documents with ones taken from other examples
//   - backtranslation corrupts documents by round-trip translation
//
// The random strategy picks affected documents uniformly from a seeded source.
// The best-case and worst-case strategies rank documents by embedding
// similarity to a target, typically the reference summary, and pick the ones
// that respectively keep the example closest to or move it furthest from that
// target.
//
// Basic usage:
//
//	seed := int64(42)
//	p, err := perturb.New(perturb.Config{
//		Perturbation: perturb.Deletion,
//		DocSepToken:  "|||||",
//		Strategy:     perturb.Random,
//		Seed:         &seed,
//	})
//	if err != nil {
//		return err
//	}
//	perturbed, err := p.Perturb(ctx, inputs, perturb.Request{PerturbedFrac: 0.5})
//
// Similarity strategies need an embedder, and backtranslation needs a
// translator; both are passed as options:
//
//	p, err := perturb.New(cfg,
//		perturb.WithEmbedder(embeddingClient),
//		perturb.WithTranslator(backTranslator),
//		perturb.WithSentenceSplitter(segment.NewSplitter()),
//	)
//
// Documents are identified by position, so examples containing repeated
// documents are perturbed position by position.
package perturb
