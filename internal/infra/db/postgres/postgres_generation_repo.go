package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"legal-docgen/internal/domain"
	"legal-docgen/internal/domain/model"
	"legal-docgen/internal/domain/ports/repository"
)

var _ repository.GenerationRepository = (*generationRepo)(nil)

type generationRepo struct {
	pool *pgxpool.Pool
}

func NewGenerationRepo(pool *pgxpool.Pool) *generationRepo {
	return &generationRepo{pool: pool}
}

func (r *generationRepo) Save(ctx context.Context, tx repository.Tx, rec *model.GenerationRecord) error {
	params, err := json.Marshal(rec.Parameters)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO generation_records (id, user_id, contract_type, parameters, content, status, error, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
  content = EXCLUDED.content,
  status = EXCLUDED.status,
  error = EXCLUDED.error;`

	_, err = execSQL(ctx, r.pool, tx, q,
		rec.ID, rec.UserID, rec.ContractType, params, rec.Content, rec.Status, rec.Error, rec.CreatedAt)
	return err
}

func (r *generationRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.GenerationRecord, error) {
	const q = `
SELECT id, user_id, contract_type, parameters, content, status, error, created_at
FROM generation_records
WHERE id = $1;`

	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanRecord(row)
}

func (r *generationRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string, limit int) ([]*model.GenerationRecord, error) {
	const q = `
SELECT id, user_id, contract_type, parameters, content, status, error, created_at
FROM generation_records
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2;`

	rows, err := pickRows(ctx, r.pool, tx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.GenerationRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *generationRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	tag, err := execSQL(ctx, r.pool, tx, `DELETE FROM generation_records WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanRecord(row pgx.Row) (*model.GenerationRecord, error) {
	var rec model.GenerationRecord
	var params []byte
	var status string
	err := row.Scan(&rec.ID, &rec.UserID, &rec.ContractType, &params, &rec.Content, &status, &rec.Error, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	rec.Status = model.GenerationStatus(status)
	if len(params) > 0 {
		if err := json.Unmarshal(params, &rec.Parameters); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
	}
	return &rec, nil
}
