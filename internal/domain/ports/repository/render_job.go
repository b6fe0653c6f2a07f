package repository

import (
	"context"

	"legal-docgen/internal/domain/model"
)

type RenderJobRepository interface {
	Save(ctx context.Context, tx Tx, job *model.RenderJob) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.RenderJob, error)
	// FetchAndMarkProcessing atomically claims the oldest queued job and marks
	// it 'processing' so no other worker picks it up. domain.ErrNotFound when
	// the queue is empty.
	FetchAndMarkProcessing(ctx context.Context) (*model.RenderJob, error)
	// UpdateProgress writes progress/progressMessage without touching status.
	UpdateProgress(ctx context.Context, id string, progress int, message string) error
}
