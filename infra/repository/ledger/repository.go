package ledger

import (
	"context"
	"errors"

	"github.com/carteiralabs/carteira/pkg/domain"
	ledgerdomain "github.com/carteiralabs/carteira/pkg/domain/ledger"
	"github.com/carteiralabs/carteira/pkg/dto"
	ledgerrepo "github.com/carteiralabs/carteira/pkg/repository/ledger"
	"github.com/google/uuid"
	"gorm.io/gorm"

	infrarepo "github.com/carteiralabs/carteira/infra/repository"
)

type repository struct {
	db *gorm.DB
}

// New creates a gorm-backed ledger repository.
func New(db *gorm.DB) ledgerrepo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	create *dto.EntryCreate,
) error {
	entry := &Entry{
		ID:           create.ID,
		Kind:         create.Kind,
		FromName:     create.FromName,
		FromDocument: create.FromDocument,
		ToName:       create.ToName,
		ToDocument:   create.ToDocument,
		Amount:       create.Amount,
		Status:       create.Status,
	}
	return infrarepo.MapGormError(
		r.db.WithContext(ctx).Create(entry).Error,
	)
}

func (r *repository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.EntryRead, error) {
	var entry Entry
	if err := r.db.WithContext(
		ctx,
	).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, infrarepo.MapGormError(err)
	}
	return mapModelToDTO(&entry), nil
}

func (r *repository) ListByDocument(
	ctx context.Context,
	document string,
) ([]*dto.EntryRead, error) {
	var entries []Entry
	if err := r.db.WithContext(ctx).
		Where("from_document = ? OR to_document = ?", document, document).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, infrarepo.MapGormError(err)
	}

	result := make([]*dto.EntryRead, 0, len(entries))
	for i := range entries {
		result = append(result, mapModelToDTO(&entries[i]))
	}
	return result, nil
}

// MarkReversed only matches active entries, so the second reversal attempt
// reports domain.ErrNothingUpdated instead of flipping state twice.
func (r *repository) MarkReversed(
	ctx context.Context,
	id uuid.UUID,
) error {
	res := r.db.WithContext(ctx).Model(&Entry{}).
		Where("id = ? AND status = ?", id, string(ledgerdomain.StatusActive)).
		Update("status", string(ledgerdomain.StatusReversed))
	if res.Error != nil {
		return infrarepo.MapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNothingUpdated
	}
	return nil
}

func mapModelToDTO(entry *Entry) *dto.EntryRead {
	return &dto.EntryRead{
		ID:           entry.ID,
		Kind:         entry.Kind,
		FromName:     entry.FromName,
		FromDocument: entry.FromDocument,
		ToName:       entry.ToName,
		ToDocument:   entry.ToDocument,
		Amount:       entry.Amount,
		Status:       entry.Status,
		CreatedAt:    entry.CreatedAt,
	}
}

var _ ledgerrepo.Repository = (*repository)(nil)
