package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"legal-docgen/internal/domain"
	"legal-docgen/internal/domain/model"
	"legal-docgen/internal/domain/ports/repository"
)

var _ repository.RenderJobRepository = (*renderJobRepo)(nil)

type renderJobRepo struct {
	pool *pgxpool.Pool
	tm   repository.TransactionManager
}

func NewRenderJobRepo(pool *pgxpool.Pool, tm repository.TransactionManager) *renderJobRepo {
	return &renderJobRepo{pool: pool, tm: tm}
}

func (r *renderJobRepo) Save(ctx context.Context, tx repository.Tx, job *model.RenderJob) error {
	params, err := json.Marshal(job.Parameters)
	if err != nil {
		return err
	}

	var resultURL, resultDoc string
	if job.Result != nil {
		resultURL = job.Result.DownloadURL
		resultDoc = job.Result.DocumentID
	}

	const q = `
INSERT INTO render_jobs (id, user_id, contract_type, parameters, format, status, progress, progress_message,
                         result_download_url, result_document_id, error, created_at, completed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (id) DO UPDATE SET
  status = EXCLUDED.status,
  progress = EXCLUDED.progress,
  progress_message = EXCLUDED.progress_message,
  result_download_url = EXCLUDED.result_download_url,
  result_document_id = EXCLUDED.result_document_id,
  error = EXCLUDED.error,
  completed_at = EXCLUDED.completed_at;`

	_, err = execSQL(ctx, r.pool, tx, q,
		job.ID, job.UserID, job.ContractType, params, job.Format, job.Status, job.Progress, job.ProgressMessage,
		resultURL, resultDoc, job.LastError, job.CreatedAt, job.CompletedAt)
	return err
}

func (r *renderJobRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.RenderJob, error) {
	row, err := pickRow(ctx, r.pool, tx, selectJob+` WHERE id = $1;`, id)
	if err != nil {
		return nil, err
	}
	return scanJob(row)
}

// FetchAndMarkProcessing claims the oldest queued job under FOR UPDATE SKIP
// LOCKED so concurrent workers never process the same job twice.
func (r *renderJobRepo) FetchAndMarkProcessing(ctx context.Context) (*model.RenderJob, error) {
	var job *model.RenderJob

	err := r.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		row, err := pickRow(ctx, r.pool, tx, selectJob+`
 WHERE status = 'queued'
 ORDER BY created_at
 LIMIT 1
 FOR UPDATE SKIP LOCKED;`)
		if err != nil {
			return err
		}

		fetched, err := scanJob(row)
		if err != nil {
			return err
		}

		fetched.Status = model.RenderJobStatusProcessing
		if err := r.Save(ctx, tx, fetched); err != nil {
			return err
		}
		job = fetched
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return job, nil
}

func (r *renderJobRepo) UpdateProgress(ctx context.Context, id string, progress int, message string) error {
	const q = `UPDATE render_jobs SET progress = $2, progress_message = $3 WHERE id = $1;`
	_, err := execSQL(ctx, r.pool, nil, q, id, progress, message)
	return err
}

const selectJob = `
SELECT id, user_id, contract_type, parameters, format, status, progress, progress_message,
       result_download_url, result_document_id, error, created_at, completed_at
FROM render_jobs`

func scanJob(row pgx.Row) (*model.RenderJob, error) {
	var job model.RenderJob
	var params []byte
	var format, status, resultURL, resultDoc string
	var completedAt *time.Time

	err := row.Scan(&job.ID, &job.UserID, &job.ContractType, &params, &format, &status,
		&job.Progress, &job.ProgressMessage, &resultURL, &resultDoc, &job.LastError,
		&job.CreatedAt, &completedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}

	job.Format = model.OutputFormat(format)
	job.Status = model.RenderJobStatus(status)
	job.CompletedAt = completedAt
	if resultDoc != "" || resultURL != "" {
		job.Result = &model.GenerationResult{DownloadURL: resultURL, DocumentID: resultDoc}
	}
	if len(params) > 0 {
		if err := json.Unmarshal(params, &job.Parameters); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
	}
	return &job, nil
}
