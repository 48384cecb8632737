package postgres

import (
	"context"

	"image-gateway/internal/domain/model"
	"image-gateway/internal/domain/ports/repository"
	"image-gateway/internal/infra/metrics"
	red "image-gateway/internal/infra/redis"
)

var _ repository.CredentialRepository = (*credentialRepoCacheDecorator)(nil)

// credentialRepoCacheDecorator keeps hot API-key lookups in Redis. Writes
// invalidate the cached entry so issuance and revocation converge fast;
// reads are warmed through on miss.
type credentialRepoCacheDecorator struct {
	inner repository.CredentialRepository
	cache *red.CredentialCache
}

func NewCredentialRepoCacheDecorator(inner repository.CredentialRepository, cache *red.CredentialCache) repository.CredentialRepository {
	return &credentialRepoCacheDecorator{inner: inner, cache: cache}
}

func (d *credentialRepoCacheDecorator) Save(ctx context.Context, c *model.Credential) error {
	_ = d.cache.Delete(ctx, c.KeyHash)
	return d.inner.Save(ctx, c)
}

func (d *credentialRepoCacheDecorator) FindByKeyHash(ctx context.Context, keyHash string) (*model.Credential, error) {
	if cred, err := d.cache.Get(ctx, keyHash); err == nil {
		metrics.IncCacheRequest("credential", "hit")
		return cred, nil
	}
	metrics.IncCacheRequest("credential", "miss")

	cred, err := d.inner.FindByKeyHash(ctx, keyHash)
	if err != nil {
		return nil, err
	}
	_ = d.cache.Store(ctx, keyHash, cred)
	return cred, nil
}

func (d *credentialRepoCacheDecorator) FindByID(ctx context.Context, id string) (*model.Credential, error) {
	// ID lookups are admin-only; no caching needed.
	return d.inner.FindByID(ctx, id)
}

func (d *credentialRepoCacheDecorator) RecordUsage(ctx context.Context, id string) error {
	// Lifetime counter lives only in Postgres; cached entries may lag it.
	return d.inner.RecordUsage(ctx, id)
}
