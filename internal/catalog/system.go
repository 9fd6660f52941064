package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/menucatch/pkg/pagination"
)

// System defines the public contract for catalog domain operations.
type System interface {
	Handler() *Handler

	// Names returns every category with its food names in catalog order.
	// Categories without foods map to an empty slice.
	Names(ctx context.Context) (map[string][]string, error)

	// Lookup returns the food with the exact category and name,
	// or ErrNotFound.
	Lookup(ctx context.Context, category, name string) (*Food, error)

	Categories(ctx context.Context) ([]Category, error)

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Food], error)

	Find(ctx context.Context, id uuid.UUID) (*Food, error)
}
