package pipeline

import (
	"context"
	"log/slog"

	"github.com/JaimeStill/menucatch/internal/catalog"
	"github.com/JaimeStill/menucatch/internal/resolve"
)

// Catalog fetches the food record for a resolved (category, name) pair.
// catalog.System satisfies it.
type Catalog interface {
	Lookup(ctx context.Context, category, name string) (*catalog.Food, error)
}

// Runtime bundles the dependencies that pipeline nodes require.
// Index is shared read-only across every fragment.
type Runtime struct {
	Classifier    resolve.Classifier
	Index         *resolve.Index
	Catalog       Catalog
	Filter        resolve.Filter
	MaxHypotheses int
	Logger        *slog.Logger
}
