package model

import (
	"time"

	"image-gateway/internal/domain"

	"github.com/google/uuid"
)

// Credential is an issued API key. Only the SHA-256 hash of the key is
// stored; the plaintext key is printed once at issuance and never persisted.
type Credential struct {
	ID               string
	KeyHash          string
	Name             string
	MaxRequests      int // daily quota ceiling
	Revoked          bool
	LifetimeRequests int64 // lifetime audit counter, separate from the daily ledger
	CreatedAt        time.Time
}

func NewCredential(id, keyHash, name string, maxRequests int) (*Credential, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if keyHash == "" || name == "" {
		return nil, domain.ErrInvalidRequest
	}
	if maxRequests <= 0 {
		return nil, domain.ErrInvalidRequest
	}
	return &Credential{
		ID:          id,
		KeyHash:     keyHash,
		Name:        name,
		MaxRequests: maxRequests,
		CreatedAt:   time.Now(),
	}, nil
}
