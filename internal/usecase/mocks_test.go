// File: internal/usecase/mocks_test.go
package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"image-gateway/internal/domain"
	"image-gateway/internal/domain/model"
	"image-gateway/internal/domain/ports/adapter"
)

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// noSleep returns immediately so poll loops run without real timers.
func noSleep(ctx context.Context, d time.Duration) error { return nil }

// ---- Upstream fakes ----

// fakeUpstream scripts submit acks and a sequence of poll results.
type fakeUpstream struct {
	mu          sync.Mutex
	submitAck   *adapter.SubmitAck
	submitErr   error
	submitCalls int
	lastPrompt  string
	lastVariant string

	polls     []pollStep
	pollCalls int
}

type pollStep struct {
	res *adapter.PollResult
	err error
}

func (f *fakeUpstream) Submit(ctx context.Context, endpoint, prompt, variant string) (*adapter.SubmitAck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitCalls++
	f.lastPrompt = prompt
	f.lastVariant = variant
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	if f.submitAck != nil {
		return f.submitAck, nil
	}
	return &adapter.SubmitAck{OK: true, TaskHandle: "task-1"}, nil
}

func (f *fakeUpstream) Poll(ctx context.Context, taskHandle string) (*adapter.PollResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pollCalls++
	if f.pollCalls > len(f.polls) {
		return &adapter.PollResult{Status: adapter.PollPending}, nil
	}
	step := f.polls[f.pollCalls-1]
	return step.res, step.err
}

// ---- Materializer fakes ----

type fakeFetcher struct {
	data []byte
	err  error
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

type fakeStorage struct {
	mu      sync.Mutex
	putErr  error
	signErr error
	puts    map[string][]byte
	signed  string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{puts: map[string][]byte{}, signed: "https://store.example/signed"}
}

func (f *fakeStorage) Put(ctx context.Context, path string, body []byte, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	f.puts[path] = body
	return nil
}

func (f *fakeStorage) SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	return f.signed, nil
}

// ---- Repositories ----

type memQuotaRepo struct {
	mu      sync.Mutex
	store   map[string]*model.QuotaRecord
	findErr error
	saveErr error
}

func newMemQuotaRepo() *memQuotaRepo {
	return &memQuotaRepo{store: map[string]*model.QuotaRecord{}}
}

func (m *memQuotaRepo) Find(ctx context.Context, credentialID string) (*model.QuotaRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	rec, ok := m.store[credentialID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (m *memQuotaRepo) Save(ctx context.Context, rec *model.QuotaRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	cp := *rec
	m.store[rec.CredentialID] = &cp
	return nil
}

type memAuditRepo struct {
	mu        sync.Mutex
	records   []*model.AuditRecord
	appendErr error
}

func (m *memAuditRepo) Append(ctx context.Context, rec *model.AuditRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return m.appendErr
	}
	cp := *rec
	m.records = append(m.records, &cp)
	return nil
}

func (m *memAuditRepo) outcomes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r.Outcome)
	}
	return out
}

type memCredRepo struct {
	mu    sync.Mutex
	usage map[string]int
}

func newMemCredRepo() *memCredRepo { return &memCredRepo{usage: map[string]int{}} }

func (m *memCredRepo) Save(ctx context.Context, c *model.Credential) error { return nil }
func (m *memCredRepo) FindByKeyHash(ctx context.Context, keyHash string) (*model.Credential, error) {
	return nil, domain.ErrNotFound
}
func (m *memCredRepo) FindByID(ctx context.Context, id string) (*model.Credential, error) {
	return nil, domain.ErrNotFound
}
func (m *memCredRepo) RecordUsage(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.usage[id]++
	return nil
}

// ---- Notifier ----

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (f *fakeNotifier) Alert(ctx context.Context, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
	return nil
}

var errBoom = errors.New("boom")
