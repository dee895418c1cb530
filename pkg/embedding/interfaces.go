package embedding

import "context"

// Provider produces dense vector representations for a batch of texts.
// One call covers the whole batch; vectors are returned in input order
// and share a fixed dimension. Implementations must be safe for
// concurrent read-only use.
type Provider interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
