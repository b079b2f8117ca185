// Package segment splits documents into sentences with a Punkt tokenizer
// trained on English text.
package segment

import (
	"fmt"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/open-mds/pkg/perturb"
)

// FXModule provides a perturb.SplitterFactory, so the Punkt model is only
// loaded when a backtranslation actually runs.
var FXModule = fx.Module("segment",
	fx.Provide(
		func() perturb.SplitterFactory { return NewSentenceSplitter },
	),
)

// Splitter satisfies perturb.SentenceSplitter.
type Splitter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewSplitter loads the bundled English Punkt model.
func NewSplitter() (*Splitter, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("segment: load english tokenizer: %w", err)
	}
	return &Splitter{tokenizer: tokenizer}, nil
}

// NewSentenceSplitter is NewSplitter typed as a perturb.SplitterFactory.
func NewSentenceSplitter() (perturb.SentenceSplitter, error) {
	s, err := NewSplitter()
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Split returns the trimmed, non-empty sentences of document in order.
func (s *Splitter) Split(document string) []string {
	var out []string
	for _, sentence := range s.tokenizer.Tokenize(document) {
		if text := strings.TrimSpace(sentence.Text); text != "" {
			out = append(out, text)
		}
	}
	return out
}
