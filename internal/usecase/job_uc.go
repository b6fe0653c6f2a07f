package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"legal-docgen/internal/domain"
	"legal-docgen/internal/domain/model"
	"legal-docgen/internal/domain/ports/repository"
	"legal-docgen/internal/registry"
)

var _ JobUseCase = (*jobUC)(nil)

type JobUseCase interface {
	// Submit validates the request and enqueues a render job. Invalid requests
	// fail here, before anything is persisted.
	Submit(ctx context.Context, req model.GenerationRequest) (*model.RenderJob, error)
	Status(ctx context.Context, userID, jobID string) (*model.RenderJob, error)
}

type jobUC struct {
	reg           *registry.Registry
	jobs          repository.RenderJobRepository
	defaultFormat model.OutputFormat
}

func NewJobUseCase(reg *registry.Registry, jobs repository.RenderJobRepository, defaultFormat model.OutputFormat) *jobUC {
	return &jobUC{reg: reg, jobs: jobs, defaultFormat: defaultFormat}
}

func (j *jobUC) Submit(ctx context.Context, req model.GenerationRequest) (*model.RenderJob, error) {
	def, err := j.reg.ResolveType(req.ContractType)
	if err != nil {
		return nil, err
	}
	if err := j.reg.ValidateParameters(def, req.Parameters); err != nil {
		return nil, err
	}
	format := req.Format
	if format == "" {
		format = j.defaultFormat
	}
	if !format.Valid() {
		return nil, fmt.Errorf("%w: unsupported output format %q", domain.ErrValidation, format)
	}

	job := &model.RenderJob{
		ID:           ulid.Make().String(),
		UserID:       req.UserID,
		ContractType: def.ID,
		Parameters:   req.Parameters,
		Format:       format,
		Status:       model.RenderJobStatusQueued,
		CreatedAt:    time.Now(),
	}
	if err := j.jobs.Save(ctx, nil, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (j *jobUC) Status(ctx context.Context, userID, jobID string) (*model.RenderJob, error) {
	job, err := j.jobs.FindByID(ctx, nil, jobID)
	if err != nil {
		return nil, err
	}
	if job.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return job, nil
}
