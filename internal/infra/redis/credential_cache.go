package redis

import (
	"context"
	"encoding/json"
	"time"

	"image-gateway/internal/domain/model"
)

// CredentialCache keeps API-key lookups out of Postgres on the hot path.
// Entries are TTL-bounded; revocations converge within the TTL.
type CredentialCache struct {
	client *redClient
	ttl    time.Duration
}

func NewCredentialCache(client *redClient, ttl time.Duration) *CredentialCache {
	return &CredentialCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *CredentialCache) Store(ctx context.Context, keyHash string, cred *model.Credential) error {
	data, err := json.Marshal(cred)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "credential:hash:"+keyHash, data, c.ttl)
}

func (c *CredentialCache) Get(ctx context.Context, keyHash string) (*model.Credential, error) {
	data, err := c.client.Get(ctx, "credential:hash:"+keyHash)
	if err != nil {
		return nil, err
	}
	var cred model.Credential
	if err := json.Unmarshal([]byte(data), &cred); err != nil {
		return nil, err
	}
	return &cred, nil
}

func (c *CredentialCache) Delete(ctx context.Context, keyHash string) error {
	return c.client.Del(ctx, "credential:hash:"+keyHash)
}
