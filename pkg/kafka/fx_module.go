package kafka

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/open-mds/pkg/runs"
)

// FXModule provides a *Producer and adds it to the run publisher group.
// An Encoder in the graph replaces the JSON encoding.
var FXModule = fx.Module("kafka",
	fx.Provide(
		NewProducerFromParams,
		fx.Annotate(
			func(p *Producer) runs.Publisher { return p },
			fx.ResultTags(runs.PublisherGroup),
		),
	),
	fx.Invoke(RegisterKafkaLifecycle),
)

// Params defines the dependencies of a fx-built Producer.
type Params struct {
	fx.In

	Config  Config
	Logger  Logger
	Encoder Encoder `optional:"true"`
}

// NewProducerFromParams builds a Producer from fx-injected dependencies.
func NewProducerFromParams(params Params) (*Producer, error) {
	p, err := NewProducer(params.Config, params.Logger)
	if err != nil {
		return nil, err
	}
	if params.Encoder != nil {
		p.WithEncoder(params.Encoder)
	}
	return p, nil
}

// RegisterKafkaLifecycle closes the producer when the app stops.
func RegisterKafkaLifecycle(lc fx.Lifecycle, p *Producer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			p.logger.Info("closing kafka producer", nil)
			return p.Close()
		},
	})
}
