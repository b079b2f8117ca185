package perturb

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/open-mds/pkg/embedcache"
)

// FXModule provides a *Perturber built from a Config and whichever capabilities
// are available in the container.
//
// Usage:
//
//	app := fx.New(
//	    fx.Supply(perturb.Config{Perturbation: perturb.Deletion, DocSepToken: "|||||"}),
//	    perturb.FXModule,
//	)
var FXModule = fx.Module("perturb",
	fx.Provide(
		NewFromParams,
	),
)

// Params defines the dependencies of a Perturber. Only Config is required.
type Params struct {
	fx.In

	Config     Config
	Logger     Logger              `optional:"true"`
	Embedder   embedcache.Embedder `optional:"true"`
	Cache      *embedcache.Cache   `optional:"true"`
	Translator Translator          `optional:"true"`
	Splitter   SentenceSplitter    `optional:"true"`
	Factory    SplitterFactory     `optional:"true"`
	Recorder   Recorder            `optional:"true"`
	Tracer     Tracer              `optional:"true"`
}

// NewFromParams builds a Perturber from fx-injected dependencies.
func NewFromParams(params Params) (*Perturber, error) {
	opts := []Option{}
	if params.Logger != nil {
		opts = append(opts, WithLogger(params.Logger))
	}
	if params.Embedder != nil {
		opts = append(opts, WithEmbedder(params.Embedder))
	}
	if params.Cache != nil {
		opts = append(opts, WithCache(params.Cache))
	}
	if params.Translator != nil {
		opts = append(opts, WithTranslator(params.Translator))
	}
	if params.Splitter != nil {
		opts = append(opts, WithSentenceSplitter(params.Splitter))
	}
	if params.Factory != nil {
		opts = append(opts, WithSentenceSplitterFactory(params.Factory))
	}
	if params.Recorder != nil {
		opts = append(opts, WithRecorder(params.Recorder))
	}
	if params.Tracer != nil {
		opts = append(opts, WithTracer(params.Tracer))
	}
	return New(params.Config, opts...)
}
