package embedding

import "context"

// Provider contract
type Provider interface {
	// Embed returns one vector per text, in input order.
	Embed(ctx context.Context, model string, texts []string) ([][]float32, error)
}
