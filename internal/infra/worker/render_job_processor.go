package worker

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"legal-docgen/internal/domain"
	"legal-docgen/internal/domain/model"
	"legal-docgen/internal/domain/ports/repository"
	"legal-docgen/internal/infra/logging"
	"legal-docgen/internal/infra/metrics"
	"legal-docgen/internal/usecase"
)

// generationRunner is the slice of the generation use case the processor needs.
type generationRunner interface {
	GenerateWithProgress(ctx context.Context, req model.GenerationRequest, progress usecase.ProgressFn) (*model.GenerationResult, error)
}

// RenderJobProcessor drains the render_jobs queue: it claims queued jobs,
// hands them to the pool, and moves each one to a terminal status when the
// pipeline finishes.
type RenderJobProcessor struct {
	jobs         repository.RenderJobRepository
	gen          generationRunner
	pool         *Pool
	pollInterval time.Duration
	log          *zerolog.Logger
}

func NewRenderJobProcessor(
	jobs repository.RenderJobRepository,
	gen generationRunner,
	pool *Pool,
	pollInterval time.Duration,
	log *zerolog.Logger,
) *RenderJobProcessor {
	if pollInterval <= 0 {
		pollInterval = 500 * time.Millisecond
	}
	return &RenderJobProcessor{
		jobs:         jobs,
		gen:          gen,
		pool:         pool,
		pollInterval: pollInterval,
		log:          log,
	}
}

func (p *RenderJobProcessor) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(p.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.drain(ctx)
			}
		}
	}()
}

// drain claims queued jobs until the queue is empty or the pool is saturated.
// A job that cannot be submitted goes back to queued for the next tick.
func (p *RenderJobProcessor) drain(ctx context.Context) {
	for {
		job, err := p.jobs.FetchAndMarkProcessing(ctx)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				p.log.Error().Err(err).Msg("claiming render job failed")
			}
			return
		}
		claimed := job
		if err := p.pool.Submit(func(taskCtx context.Context) error {
			p.process(taskCtx, claimed)
			return nil
		}); err != nil {
			claimed.Status = model.RenderJobStatusQueued
			if saveErr := p.jobs.Save(ctx, nil, claimed); saveErr != nil {
				p.log.Error().Err(saveErr).Str("job_id", claimed.ID).Msg("requeueing render job failed")
			}
			return
		}
	}
}

func (p *RenderJobProcessor) process(ctx context.Context, job *model.RenderJob) {
	ctx = logging.WithJobID(ctx, job.ID)
	log := logging.With(ctx, p.log)
	defer logging.TraceDuration(log, "render job")()

	result, err := p.gen.GenerateWithProgress(ctx, model.GenerationRequest{
		ContractType: job.ContractType,
		Parameters:   job.Parameters,
		Format:       job.Format,
		UserID:       job.UserID,
	}, func(pct int, msg string) {
		if upErr := p.jobs.UpdateProgress(ctx, job.ID, pct, msg); upErr != nil {
			log.Warn().Err(upErr).Msg("progress update failed")
		}
	})

	now := time.Now()
	job.CompletedAt = &now
	if err != nil {
		job.Status = model.RenderJobStatusFailed
		job.LastError = err.Error()
		log.Error().Err(err).Msg("render job failed")
	} else {
		job.Status = model.RenderJobStatusCompleted
		job.Progress = 100
		job.ProgressMessage = "completed"
		job.Result = result
	}
	// The terminal write must survive a canceled task context.
	if saveErr := p.jobs.Save(context.Background(), nil, job); saveErr != nil {
		log.Error().Err(saveErr).Msg("saving terminal job state failed")
	}
	metrics.IncRenderJob(string(job.Status))
}
