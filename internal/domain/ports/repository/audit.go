package repository

import (
	"context"

	"image-gateway/internal/domain/model"
)

type AuditRepository interface {
	Append(ctx context.Context, rec *model.AuditRecord) error
}
