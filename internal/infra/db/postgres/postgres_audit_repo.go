package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/oklog/ulid/v2"

	"image-gateway/internal/domain/model"
	"image-gateway/internal/domain/ports/repository"
)

var _ repository.AuditRepository = (*auditRepo)(nil)

type auditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepo(pool *pgxpool.Pool) *auditRepo {
	return &auditRepo{pool: pool}
}

func (r *auditRepo) Append(ctx context.Context, rec *model.AuditRecord) error {
	if rec.ID == "" {
		rec.ID = ulid.Make().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	const q = `
INSERT INTO audit_records (id, credential_id, endpoint, prompt, model, outcome, artifact_path, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`

	_, err := r.pool.Exec(ctx, q,
		rec.ID, rec.CredentialID, rec.Endpoint, rec.Prompt, rec.Model, rec.Outcome, rec.ArtifactPath, rec.CreatedAt)
	return err
}
