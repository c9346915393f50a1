// Package ledger defines the data-access contract for ledger entries.
package ledger

import (
	"context"

	"github.com/carteiralabs/carteira/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines ledger entry data access.
type Repository interface {
	// Create inserts a new ledger entry.
	Create(ctx context.Context, create *dto.EntryCreate) error

	// Get retrieves an entry by ID, or nil when absent.
	Get(ctx context.Context, id uuid.UUID) (*dto.EntryRead, error)

	// ListByDocument retrieves all entries where the document appears as
	// sender or receiver, most recent first.
	ListByDocument(ctx context.Context, document string) ([]*dto.EntryRead, error)

	// MarkReversed flips an active entry to reversed. It fails with
	// domain.ErrNothingUpdated when the entry is missing or already reversed,
	// so an entry can be reversed at most once.
	MarkReversed(ctx context.Context, id uuid.UUID) error
}
