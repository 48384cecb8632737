package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"image-gateway/internal/domain"
	"image-gateway/internal/domain/model"
	"image-gateway/internal/domain/ports/repository"
)

var _ repository.QuotaRepository = (*quotaRepo)(nil)

type quotaRepo struct {
	pool *pgxpool.Pool
}

func NewQuotaRepo(pool *pgxpool.Pool) *quotaRepo {
	return &quotaRepo{pool: pool}
}

func (r *quotaRepo) Find(ctx context.Context, credentialID string) (*model.QuotaRecord, error) {
	const q = `
SELECT credential_id, requests_count, last_reset, max_requests
FROM quota_records WHERE credential_id = $1;`

	var rec model.QuotaRecord
	err := r.pool.QueryRow(ctx, q, credentialID).Scan(
		&rec.CredentialID, &rec.RequestsCount, &rec.LastReset, &rec.MaxRequests,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *quotaRepo) Save(ctx context.Context, rec *model.QuotaRecord) error {
	const q = `
INSERT INTO quota_records (credential_id, requests_count, last_reset, max_requests)
VALUES ($1, $2, $3, $4)
ON CONFLICT (credential_id) DO UPDATE SET
  requests_count = EXCLUDED.requests_count,
  last_reset = EXCLUDED.last_reset,
  max_requests = EXCLUDED.max_requests;`

	_, err := r.pool.Exec(ctx, q, rec.CredentialID, rec.RequestsCount, rec.LastReset, rec.MaxRequests)
	return err
}
