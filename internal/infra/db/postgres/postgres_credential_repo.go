package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"image-gateway/internal/domain"
	"image-gateway/internal/domain/model"
	"image-gateway/internal/domain/ports/repository"
)

var _ repository.CredentialRepository = (*credentialRepo)(nil)

type credentialRepo struct {
	pool *pgxpool.Pool
}

func NewCredentialRepo(pool *pgxpool.Pool) *credentialRepo {
	return &credentialRepo{pool: pool}
}

func (r *credentialRepo) Save(ctx context.Context, c *model.Credential) error {
	const q = `
INSERT INTO credentials (id, key_hash, name, max_requests, revoked, lifetime_requests, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
  name = EXCLUDED.name,
  max_requests = EXCLUDED.max_requests,
  revoked = EXCLUDED.revoked;`

	_, err := r.pool.Exec(ctx, q,
		c.ID, c.KeyHash, c.Name, c.MaxRequests, c.Revoked, c.LifetimeRequests, c.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrAlreadyExists
	}
	return err
}

func (r *credentialRepo) FindByKeyHash(ctx context.Context, keyHash string) (*model.Credential, error) {
	const q = `
SELECT id, key_hash, name, max_requests, revoked, lifetime_requests, created_at
FROM credentials WHERE key_hash = $1;`
	return r.scanOne(ctx, q, keyHash)
}

func (r *credentialRepo) FindByID(ctx context.Context, id string) (*model.Credential, error) {
	const q = `
SELECT id, key_hash, name, max_requests, revoked, lifetime_requests, created_at
FROM credentials WHERE id = $1;`
	return r.scanOne(ctx, q, id)
}

func (r *credentialRepo) scanOne(ctx context.Context, q string, arg interface{}) (*model.Credential, error) {
	var c model.Credential
	err := r.pool.QueryRow(ctx, q, arg).Scan(
		&c.ID, &c.KeyHash, &c.Name, &c.MaxRequests, &c.Revoked, &c.LifetimeRequests, &c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *credentialRepo) RecordUsage(ctx context.Context, id string) error {
	const q = `UPDATE credentials SET lifetime_requests = lifetime_requests + 1 WHERE id = $1;`
	tag, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
