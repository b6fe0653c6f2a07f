package repository

import (
	"context"

	"legal-docgen/internal/domain/model"
)

// GenerationRepository stores GenerationRecords. Ownership is NOT enforced
// here; the use case layer checks record.UserID against the caller before
// returning or deleting anything.
type GenerationRepository interface {
	Save(ctx context.Context, tx Tx, rec *model.GenerationRecord) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.GenerationRecord, error)
	// ListByUser returns the caller's records newest-first, at most limit rows.
	ListByUser(ctx context.Context, tx Tx, userID string, limit int) ([]*model.GenerationRecord, error)
	Delete(ctx context.Context, tx Tx, id string) error
}
