// File: internal/usecase/generation_uc.go
package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"image-gateway/internal/domain"
	"image-gateway/internal/domain/model"
	"image-gateway/internal/domain/ports/repository"
	"image-gateway/internal/infra/logging"
	"image-gateway/internal/infra/metrics"
	"image-gateway/internal/provider"
)

// Compile-time check
var _ GenerationUseCase = (*generationUC)(nil)

type GenerationUseCase interface {
	Generate(ctx context.Context, req *model.GenerationRequest) (*GenerationResult, error)
}

// GenerationResult carries everything the transport layer needs to shape an
// OpenAI-compatible response. The single artifact is replicated Count times
// by the responder; the upstream provider is called exactly once per request.
type GenerationResult struct {
	Created  time.Time
	Artifact *model.Artifact
	Count    int
	Format   model.ResponseFormat
}

type generationUC struct {
	catalog *provider.Catalog
	poller  JobPoller
	mat     Materializer
	audit   repository.AuditRepository
	creds   repository.CredentialRepository
	log     *zerolog.Logger
	now     func() time.Time
}

func NewGenerationUseCase(
	catalog *provider.Catalog,
	poller JobPoller,
	mat Materializer,
	audit repository.AuditRepository,
	creds repository.CredentialRepository,
	logger *zerolog.Logger,
) *generationUC {
	return &generationUC{
		catalog: catalog,
		poller:  poller,
		mat:     mat,
		audit:   audit,
		creds:   creds,
		log:     logger,
		now:     time.Now,
	}
}

func (g *generationUC) Generate(ctx context.Context, req *model.GenerationRequest) (*GenerationResult, error) {
	log := logging.With(ctx, g.log)
	defer logging.TraceDuration(log, "GenerationUC.Generate")()

	// Validation and resolution fail fast, before any side effect.
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	target, err := g.catalog.Resolve(req.Model, req.Size)
	if err != nil {
		return nil, err
	}
	if target.Alias != "" {
		log.Info().
			Str("alias", target.Alias).
			Str("canonical_model", target.CanonicalModel).
			Msg("compatibility alias substituted")
	}

	start := g.now()
	sourceURL, err := g.poller.Run(ctx, target, req.Prompt)
	if err != nil {
		// Poller failure classes propagate unchanged; the audit write is
		// best-effort and cannot mask the error.
		g.recordOutcome(ctx, req, target, outcomeOf(err), "")
		metrics.ObserveGeneration(target.Provider, target.CanonicalModel, time.Since(start), false)
		return nil, err
	}

	artifact, err := g.mat.Materialize(ctx, MaterializeInput{
		SourceURL:    sourceURL,
		CredentialID: req.CredentialID,
		Prompt:       req.Prompt,
		Model:        target.CanonicalModel,
		Encoding:     req.ResponseFormat,
	})
	if err != nil {
		g.recordOutcome(ctx, req, target, outcomeOf(err), "")
		metrics.ObserveGeneration(target.Provider, target.CanonicalModel, time.Since(start), false)
		return nil, err
	}

	g.recordOutcome(ctx, req, target, "ok", artifact.StoragePath)
	g.recordUsage(ctx, req.CredentialID)
	metrics.ObserveGeneration(target.Provider, target.CanonicalModel, time.Since(start), true)

	return &GenerationResult{
		Created:  g.now(),
		Artifact: artifact,
		Count:    req.Count,
		Format:   req.ResponseFormat,
	}, nil
}

// validateRequest re-checks the constructed request. The constructor already
// enforces these, but the orchestrator must not trust its callers.
func validateRequest(req *model.GenerationRequest) error {
	_, err := model.NewGenerationRequest(
		req.Prompt, req.Count, string(req.Size), string(req.ResponseFormat), req.Model, req.CredentialID,
	)
	return err
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrUpstreamRejected):
		return "upstream_rejected"
	case errors.Is(err, domain.ErrUpstreamGenerationFailed):
		return "upstream_failed"
	case errors.Is(err, domain.ErrGenerationTimeout):
		return "timeout"
	case errors.Is(err, domain.ErrArtifactProcessingFailed):
		return "artifact_failed"
	default:
		return "error"
	}
}

// recordOutcome writes one audit record per terminal outcome. Best-effort:
// append failures are logged and swallowed so they are structurally unable
// to override the primary result.
func (g *generationUC) recordOutcome(ctx context.Context, req *model.GenerationRequest, target *provider.ResolvedTarget, outcome, artifactPath string) {
	if g.audit == nil {
		return
	}
	rec := &model.AuditRecord{
		ID:           ulid.Make().String(),
		CredentialID: req.CredentialID,
		Endpoint:     target.Endpoint,
		Prompt:       req.Prompt,
		Model:        target.CanonicalModel,
		Outcome:      outcome,
		ArtifactPath: artifactPath,
		CreatedAt:    g.now(),
	}
	if err := g.audit.Append(ctx, rec); err != nil {
		g.log.Warn().Err(err).Str("outcome", outcome).Msg("audit append failed")
	}
}

func (g *generationUC) recordUsage(ctx context.Context, credentialID string) {
	if g.creds == nil || credentialID == "" {
		return
	}
	if err := g.creds.RecordUsage(ctx, credentialID); err != nil {
		g.log.Warn().Err(err).Str("credential_id", credentialID).Msg("lifetime usage increment failed")
	}
}
