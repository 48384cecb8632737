// File: internal/usecase/materializer.go
package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"image-gateway/internal/domain"
	"image-gateway/internal/domain/model"
	"image-gateway/internal/domain/ports/adapter"
	"image-gateway/internal/domain/ports/repository"
	"image-gateway/internal/infra/metrics"
)

// Compile-time check
var _ Materializer = (*materializer)(nil)

// Materializer converts a transient upstream result URL into a durable,
// caller-consumable artifact: a signed URL over a re-hosted copy, or inline
// base64 bytes.
type Materializer interface {
	Materialize(ctx context.Context, in MaterializeInput) (*model.Artifact, error)
}

type MaterializeInput struct {
	SourceURL    string
	CredentialID string
	Prompt       string
	Model        string
	Encoding     model.ResponseFormat
}

type materializer struct {
	fetcher adapter.ArtifactFetcher
	storage adapter.ObjectStorage
	audit   repository.AuditRepository
	notify  adapter.OperatorNotifier
	signTTL time.Duration
	log     *zerolog.Logger
}

func NewMaterializer(
	fetcher adapter.ArtifactFetcher,
	storage adapter.ObjectStorage,
	audit repository.AuditRepository,
	notify adapter.OperatorNotifier,
	signTTL time.Duration,
	logger *zerolog.Logger,
) *materializer {
	if signTTL <= 0 {
		signTTL = 120 * time.Second
	}
	return &materializer{
		fetcher: fetcher,
		storage: storage,
		audit:   audit,
		notify:  notify,
		signTTL: signTTL,
		log:     logger,
	}
}

func (m *materializer) Materialize(ctx context.Context, in MaterializeInput) (*model.Artifact, error) {
	if in.Encoding == model.FormatB64JSON {
		return m.inline(ctx, in)
	}
	return m.rehost(ctx, in)
}

// download copies the source artifact into a scoped temporary file. The
// caller receives a cleanup func that must run on every exit path.
func (m *materializer) download(ctx context.Context, sourceURL string) (path string, cleanup func(), err error) {
	body, err := m.fetcher.Fetch(ctx, sourceURL)
	if err != nil {
		return "", nil, fmt.Errorf("fetch artifact: %w", err)
	}
	defer body.Close()

	f, err := os.CreateTemp("", "imggw-artifact-*")
	if err != nil {
		return "", nil, fmt.Errorf("temp file: %w", err)
	}
	cleanup = func() { _ = os.Remove(f.Name()) }

	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("download artifact: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close temp file: %w", err)
	}
	return f.Name(), cleanup, nil
}

// inline returns the artifact bytes base64-encoded. There is no fallback
// representation here, so every failure aborts the request.
func (m *materializer) inline(ctx context.Context, in MaterializeInput) (*model.Artifact, error) {
	path, cleanup, err := m.download(ctx, in.SourceURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrArtifactProcessingFailed, err)
	}
	defer cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrArtifactProcessingFailed, err)
	}
	return &model.Artifact{
		SourceURL: in.SourceURL,
		InlineB64: base64.StdEncoding.EncodeToString(data),
	}, nil
}

// rehost copies the artifact into durable storage and mints a short-lived
// signed URL. Any failure degrades to the original upstream URL: some
// working URL beats no response. The fallback is silent to the caller but
// logged for operators.
func (m *materializer) rehost(ctx context.Context, in MaterializeInput) (*model.Artifact, error) {
	path, cleanup, err := m.download(ctx, in.SourceURL)
	if err != nil {
		return m.degrade(ctx, in, err), nil
	}
	defer cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		return m.degrade(ctx, in, err), nil
	}

	objectPath := fmt.Sprintf("generated/%s/%s.png", in.CredentialID, ulid.Make().String())
	if err := m.storage.Put(ctx, objectPath, data, "image/png"); err != nil {
		return m.degrade(ctx, in, err), nil
	}
	signed, err := m.storage.SignedURL(ctx, objectPath, m.signTTL)
	if err != nil {
		return m.degrade(ctx, in, err), nil
	}

	m.appendAudit(ctx, in, objectPath)

	return &model.Artifact{
		SourceURL:   in.SourceURL,
		StoragePath: objectPath,
		SignedURL:   signed,
		ExpiresAt:   time.Now().Add(m.signTTL),
	}, nil
}

func (m *materializer) degrade(ctx context.Context, in MaterializeInput, cause error) *model.Artifact {
	metrics.IncStorageFallback()
	m.log.Warn().Err(cause).
		Str("credential_id", in.CredentialID).
		Str("source_url", in.SourceURL).
		Msg("artifact re-hosting degraded to source URL")
	if m.notify != nil {
		if err := m.notify.Alert(ctx, fmt.Sprintf("storage degraded: serving upstream URL directly (%v)", cause)); err != nil {
			m.log.Warn().Err(err).Msg("operator alert failed")
		}
	}
	return &model.Artifact{SourceURL: in.SourceURL}
}

// appendAudit records a successful re-host. Best-effort.
func (m *materializer) appendAudit(ctx context.Context, in MaterializeInput, objectPath string) {
	if m.audit == nil {
		return
	}
	rec := &model.AuditRecord{
		ID:           ulid.Make().String(),
		CredentialID: in.CredentialID,
		Prompt:       in.Prompt,
		Model:        in.Model,
		Outcome:      "rehosted",
		ArtifactPath: objectPath,
		CreatedAt:    time.Now(),
	}
	if err := m.audit.Append(ctx, rec); err != nil {
		m.log.Warn().Err(err).Str("artifact_path", objectPath).Msg("audit append failed")
	}
}
