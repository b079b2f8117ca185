package perturb

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/open-mds/pkg/embedcache"
)

// Translator round-trips sentences through an intermediate language.
// The output is positionally aligned with the input and has the same length.
type Translator interface {
	Augment(ctx context.Context, sentences []string) ([]string, error)
}

// SentenceSplitter splits a document into its sentences, in order.
type SentenceSplitter interface {
	Split(document string) []string
}

// SplitterFactory builds a SentenceSplitter on first use.
type SplitterFactory func() (SentenceSplitter, error)

// Recorder receives per-example perturbation observations and capability latencies.
type Recorder interface {
	ObservePerturbation(perturbation, strategy string, documents int)
	ObserveCapabilityCall(capability string, d time.Duration)
}

// Tracer opens spans around batches and examples. *tracer.Tracer satisfies it.
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, trace.Span)
	RecordErrorOnSpan(span trace.Span, err error)
	SetAttributes(span trace.Span, attrs map[string]interface{})
}

// Perturber applies one configured perturbation to batches of examples.
//
// A Perturber owns its random source and is not safe for concurrent calls to Perturb.
type Perturber struct {
	perturbation Perturbation
	strategy     Strategy
	docSepToken  string
	seed         uint64

	rng *rand.Rand

	embedder   embedcache.Embedder
	cache      *embedcache.Cache
	translator Translator
	splitter   SentenceSplitter

	newSplitter SplitterFactory

	logger   Logger
	recorder Recorder
	tracer   Tracer
}

// Option configures optional collaborators of a Perturber.
type Option func(*Perturber)

// WithEmbedder sets the embedding capability used by the best-case and worst-case strategies.
func WithEmbedder(e embedcache.Embedder) Option {
	return func(p *Perturber) { p.embedder = e }
}

// WithCache shares an embedding cache across Perturbers. A private cache is created otherwise.
func WithCache(c *embedcache.Cache) Option {
	return func(p *Perturber) { p.cache = c }
}

// WithTranslator sets the translation capability required by backtranslation.
func WithTranslator(t Translator) Option {
	return func(p *Perturber) { p.translator = t }
}

// WithSentenceSplitter sets the splitter used by backtranslation.
func WithSentenceSplitter(s SentenceSplitter) Option {
	return func(p *Perturber) { p.splitter = s }
}

// WithSentenceSplitterFactory sets a constructor called the first time backtranslation
// needs a splitter and none was injected.
func WithSentenceSplitterFactory(f SplitterFactory) Option {
	return func(p *Perturber) { p.newSplitter = f }
}

func WithLogger(l Logger) Option {
	return func(p *Perturber) { p.logger = l }
}

func WithRecorder(r Recorder) Option {
	return func(p *Perturber) { p.recorder = r }
}

func WithTracer(t Tracer) Option {
	return func(p *Perturber) { p.tracer = t }
}

// New validates cfg and builds a Perturber.
//
// Backtranslation requires a Translator, and the best-case and worst-case
// strategies require an Embedder. Missing capabilities fail with ErrMissingCapability.
func New(cfg Config, opts ...Option) (*Perturber, error) {
	if cfg.Strategy == "" {
		cfg.Strategy = Random
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := rand.Uint64()
	if cfg.Seed != nil {
		seed = uint64(*cfg.Seed)
	}

	p := &Perturber{
		perturbation: cfg.Perturbation,
		strategy:     cfg.Strategy,
		docSepToken:  cfg.DocSepToken,
		seed:         seed,
		rng:          rand.New(rand.NewPCG(seed, seed)),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = nopLogger{}
	}

	if p.perturbation == Backtranslation && p.translator == nil {
		return nil, fmt.Errorf("%w: %s requires a translator", ErrMissingCapability, p.perturbation)
	}
	if p.strategy != Random {
		if p.embedder == nil {
			return nil, fmt.Errorf("%w: strategy %s requires an embedder", ErrMissingCapability, p.strategy)
		}
		if p.cache == nil {
			p.cache = embedcache.New()
		}
	}

	return p, nil
}

// Perturbation returns the configured perturbation.
func (p *Perturber) Perturbation() Perturbation { return p.perturbation }

// Strategy returns the configured selection strategy.
func (p *Perturber) Strategy() Strategy { return p.strategy }

// DocSepToken returns the configured document separator.
func (p *Perturber) DocSepToken() string { return p.docSepToken }

// Seed returns the seed of the private random source, drawn at construction when none was configured.
func (p *Perturber) Seed() uint64 { return p.seed }

// sentenceSplitter returns the injected splitter, building one on first use.
func (p *Perturber) sentenceSplitter() (SentenceSplitter, error) {
	if p.splitter != nil {
		return p.splitter, nil
	}
	if p.newSplitter == nil {
		return nil, fmt.Errorf("%w: %s requires a sentence splitter", ErrMissingCapability, p.perturbation)
	}
	splitter, err := p.newSplitter()
	if err != nil {
		return nil, fmt.Errorf("building sentence splitter: %w", err)
	}
	p.splitter = splitter
	return splitter, nil
}

// observeCall reports the latency of a capability call started at start.
func (p *Perturber) observeCall(capability string, start time.Time) {
	if p.recorder != nil {
		p.recorder.ObserveCapabilityCall(capability, time.Since(start))
	}
}

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}
func (nopLogger) Fatal(string, error, ...map[string]interface{}) {}
