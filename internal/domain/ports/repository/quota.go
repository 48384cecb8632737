package repository

import (
	"context"

	"image-gateway/internal/domain/model"
)

type QuotaRepository interface {
	Find(ctx context.Context, credentialID string) (*model.QuotaRecord, error)
	// Save upserts the record keyed by credential ID.
	Save(ctx context.Context, rec *model.QuotaRecord) error
}
