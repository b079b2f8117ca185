package perturb

import "fmt"

// Perturbation names one of the document-level perturbations.
type Perturbation string

const (
	Sorting         Perturbation = "sorting"
	Duplication     Perturbation = "duplication"
	Addition        Perturbation = "addition"
	Deletion        Perturbation = "deletion"
	Replacement     Perturbation = "replacement"
	Backtranslation Perturbation = "backtranslation"
)

// Perturbations lists every supported perturbation in a stable order.
var Perturbations = []Perturbation{Sorting, Duplication, Addition, Deletion, Replacement, Backtranslation}

// ParsePerturbation converts a name into a Perturbation, failing with
// ErrUnknownPerturbation for anything not listed in Perturbations.
func ParsePerturbation(name string) (Perturbation, error) {
	for _, p := range Perturbations {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPerturbation, name)
}

// Strategy decides how documents are chosen for a perturbation.
type Strategy string

const (
	// Random selects documents uniformly.
	Random Strategy = "random"
	// BestCase selects documents that keep the example as close as possible to the target.
	BestCase Strategy = "best-case"
	// WorstCase selects documents that move the example as far as possible from the target.
	WorstCase Strategy = "worst-case"
)

// ParseStrategy converts a name into a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(name) {
	case Random, BestCase, WorstCase:
		return Strategy(name), nil
	default:
		return "", fmt.Errorf("%w: unknown strategy %q", ErrInvalidArgument, name)
	}
}

// DocSepTokens maps dataset names to the separator their inputs are joined with.
var DocSepTokens = map[string]string{
	"multi_news":          "|||||",
	"multi_x_science_sum": "</s>",
	"ms2":                 "</s>",
}

// Config holds the construction-time settings of a Perturber.
type Config struct {
	// Perturbation is the operator applied to every example.
	//
	// This setting can be configured via:
	//   - Environment variable PERTURB_PERTURBATION
	Perturbation Perturbation `yaml:"perturbation" envconfig:"PERTURB_PERTURBATION"`

	// DocSepToken is the literal substring separating documents in an example.
	DocSepToken string `yaml:"doc_sep_token" envconfig:"PERTURB_DOC_SEP_TOKEN"`

	// Strategy governs document selection. Default: random
	Strategy Strategy `yaml:"strategy" envconfig:"PERTURB_STRATEGY" default:"random"`

	// Seed seeds the private random source. A nil seed draws one at construction.
	Seed *int64 `yaml:"seed" envconfig:"PERTURB_SEED"`
}

// Validate checks that the configuration names a known perturbation and strategy
// and carries a usable separator.
func (c Config) Validate() error {
	if _, err := ParsePerturbation(string(c.Perturbation)); err != nil {
		return err
	}
	if c.Strategy == "" {
		return fmt.Errorf("%w: strategy is required", ErrInvalidArgument)
	}
	if _, err := ParseStrategy(string(c.Strategy)); err != nil {
		return err
	}
	if c.DocSepToken == "" {
		return fmt.Errorf("%w: doc_sep_token must not be empty", ErrInvalidArgument)
	}
	return nil
}

// usesCandidatePool reports whether the perturbation draws from the batch-wide candidate pool.
func (p Perturbation) usesCandidatePool() bool {
	return p == Addition || p == Replacement
}
