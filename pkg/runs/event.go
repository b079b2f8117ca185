// Package runs defines the event announced when a perturbation run finishes
// and the interface of the sinks that carry it.
package runs

import (
	"context"
	"time"
)

// PublisherGroup is the fx value group every event sink joins.
const PublisherGroup = `group:"run_publishers"`

// Event describes a finished run. Error is empty on success.
type Event struct {
	RunID         string    `json:"run_id,omitempty"`
	Perturbation  string    `json:"perturbation"`
	Strategy      string    `json:"strategy"`
	PerturbedFrac float64   `json:"perturbed_frac"`
	Seed          uint64    `json:"seed"`
	Examples      int       `json:"examples"`
	Input         string    `json:"input"`
	Output        string    `json:"output"`
	FinishedAt    time.Time `json:"finished_at"`
	Error         string    `json:"error,omitempty"`
}

// Publisher delivers run events to a broker.
type Publisher interface {
	PublishRun(ctx context.Context, event Event) error
}
