// File: internal/usecase/quota_uc.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"image-gateway/internal/domain"
	"image-gateway/internal/domain/model"
	"image-gateway/internal/domain/ports/adapter"
	"image-gateway/internal/domain/ports/repository"
	"image-gateway/internal/infra/metrics"
)

// Compile-time check
var _ QuotaUseCase = (*quotaUC)(nil)

// Locker serializes check-and-consume across gateway instances. Satisfied by
// the Redis locker; nil disables cross-instance locking (single instance).
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (token string, err error)
	Unlock(ctx context.Context, key, token string) error
}

type QuotaUseCase interface {
	// CheckAndConsume admits or denies one request for the credential.
	// On admission the returned record reflects the consumed slot; on
	// denial it returns domain.ErrQuotaExceeded and the untouched record.
	CheckAndConsume(ctx context.Context, credentialID string, ceiling int) (*model.QuotaRecord, error)
	// Peek returns the current record without consuming. Informational only.
	Peek(ctx context.Context, credentialID string, ceiling int) (*model.QuotaRecord, error)
}

type quotaUC struct {
	store  repository.QuotaRepository
	locker Locker
	notify adapter.OperatorNotifier
	log    *zerolog.Logger
	now    func() time.Time

	mu    sync.Mutex
	byKey map[string]*sync.Mutex
}

func NewQuotaUseCase(store repository.QuotaRepository, locker Locker, notify adapter.OperatorNotifier, logger *zerolog.Logger) *quotaUC {
	return &quotaUC{
		store:  store,
		locker: locker,
		notify: notify,
		log:    logger,
		now:    time.Now,
		byKey:  make(map[string]*sync.Mutex),
	}
}

// WithClock injects a deterministic clock. Test hook.
func (q *quotaUC) WithClock(now func() time.Time) *quotaUC {
	q.now = now
	return q
}

// keyMutex serializes at the credential key, not globally: requests for
// different credentials proceed fully in parallel.
func (q *quotaUC) keyMutex(credentialID string) *sync.Mutex {
	q.mu.Lock()
	defer q.mu.Unlock()
	m, ok := q.byKey[credentialID]
	if !ok {
		m = &sync.Mutex{}
		q.byKey[credentialID] = m
	}
	return m
}

func (q *quotaUC) CheckAndConsume(ctx context.Context, credentialID string, ceiling int) (*model.QuotaRecord, error) {
	m := q.keyMutex(credentialID)
	m.Lock()
	defer m.Unlock()

	if q.locker != nil {
		token, err := q.locker.TryLock(ctx, "quota:"+credentialID, 5*time.Second)
		if err != nil {
			return nil, fmt.Errorf("quota lock: %w", err)
		}
		defer func() { _ = q.locker.Unlock(ctx, "quota:"+credentialID, token) }()
	}

	now := q.now()
	rec, err := q.store.Find(ctx, credentialID)
	switch {
	case errors.Is(err, domain.ErrNotFound) || (err == nil && rec.Stale(now)):
		// Reset-and-consume in one transition: a fresh day admits the
		// request that triggered the reset, so count starts at 1.
		rec = &model.QuotaRecord{
			CredentialID:  credentialID,
			RequestsCount: 1,
			LastReset:     model.ResetBoundary(now),
			MaxRequests:   ceiling,
		}
	case err != nil:
		return nil, err
	case rec.RequestsCount >= ceiling:
		metrics.IncQuotaDecision("denied")
		if rec.RequestsCount == ceiling {
			q.alertExhausted(ctx, credentialID, ceiling)
		}
		return rec, domain.ErrQuotaExceeded
	default:
		rec.RequestsCount++
		rec.MaxRequests = ceiling
	}

	if err := q.store.Save(ctx, rec); err != nil {
		return nil, err
	}
	metrics.IncQuotaDecision("admitted")
	return rec, nil
}

func (q *quotaUC) Peek(ctx context.Context, credentialID string, ceiling int) (*model.QuotaRecord, error) {
	now := q.now()
	rec, err := q.store.Find(ctx, credentialID)
	if errors.Is(err, domain.ErrNotFound) {
		return &model.QuotaRecord{
			CredentialID: credentialID,
			LastReset:    model.ResetBoundary(now),
			MaxRequests:  ceiling,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	if rec.Stale(now) {
		rec.RequestsCount = 0
		rec.LastReset = model.ResetBoundary(now)
	}
	return rec, nil
}

func (q *quotaUC) alertExhausted(ctx context.Context, credentialID string, ceiling int) {
	if q.notify == nil {
		return
	}
	msg := fmt.Sprintf("quota exhausted: credential=%s ceiling=%d", credentialID, ceiling)
	if err := q.notify.Alert(ctx, msg); err != nil {
		q.log.Warn().Err(err).Str("credential_id", credentialID).Msg("operator alert failed")
	}
}
