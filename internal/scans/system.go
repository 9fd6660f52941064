package scans

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/menucatch/pkg/storage"
)

// System defines the public contract for scan session operations.
type System interface {
	Handler() *Handler

	// Warm loads the catalog index and classifier ahead of the first batch.
	Warm(ctx context.Context) error

	Create(ctx context.Context) (*Session, error)
	Find(ctx context.Context, id uuid.UUID) (*Session, error)
	// Resolve consolidates the batch, resolves every fragment and appends the
	// resolved foods to the session in scan order. With sequential resolution
	// a batch that stops on an error, such as cancellation, keeps the records
	// appended so far and archives a report marked partial before returning.
	Resolve(ctx context.Context, id uuid.UUID, cmd BatchCommand) (*BatchReport, error)

	// Clear empties the collection. Batches in flight discard their
	// remaining records.
	Clear(ctx context.Context, id uuid.UUID) (*Session, error)

	Delete(ctx context.Context, id uuid.UUID) error

	// Subscribe streams session snapshots, starting with the current one.
	// The channel closes when the session is deleted or cancel is called.
	Subscribe(ctx context.Context, id uuid.UUID) (<-chan Session, func(), error)

	Archive(ctx context.Context, id uuid.UUID, marker string, maxResults int32) (*storage.BlobList, error)

	Diagnose(ctx context.Context, text string) (*Diagnosis, error)
}
