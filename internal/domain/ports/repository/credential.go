package repository

import (
	"context"

	"image-gateway/internal/domain/model"
)

type CredentialRepository interface {
	Save(ctx context.Context, c *model.Credential) error
	FindByKeyHash(ctx context.Context, keyHash string) (*model.Credential, error)
	FindByID(ctx context.Context, id string) (*model.Credential, error)
	// RecordUsage bumps the lifetime counter. Best-effort; callers log and
	// move on when it fails.
	RecordUsage(ctx context.Context, id string) error
}
