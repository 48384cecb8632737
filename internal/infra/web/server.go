// File: internal/infra/web/server.go
package web

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"image-gateway/internal/config"
	"image-gateway/internal/domain/ports/repository"
	"image-gateway/internal/usecase"
)

// Server wires the public OpenAI-compatible surface and the admin surface.
type Server struct {
	genUC   usecase.GenerationUseCase
	quotaUC usecase.QuotaUseCase
	creds   repository.CredentialRepository
	auth    *AuthManager
	adminPW string
	log     *zerolog.Logger
}

func NewServer(
	genUC usecase.GenerationUseCase,
	quotaUC usecase.QuotaUseCase,
	creds repository.CredentialRepository,
	adminCfg config.AdminConfig,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		genUC:   genUC,
		quotaUC: quotaUC,
		creds:   creds,
		auth:    NewAuthManager(adminCfg.JWTSecret, adminCfg.SessionTTL),
		adminPW: adminCfg.Password,
		log:     logger,
	}
}

// PublicRouter serves the caller-facing API. Auth and the quota gate run
// before the orchestrator; the gate never runs for unauthenticated calls.
func (s *Server) PublicRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(TraceID)
	r.Use(RequestLog(s.log))
	r.Use(Recover(s.log))

	r.Get("/health", healthHandler)

	r.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.creds))
		r.Use(QuotaGuard(s.quotaUC))
		r.Post("/v1/images/generations", generationsHandler(s.genUC))
	})
	return r
}

// AdminRouter serves operator endpoints and Prometheus metrics.
func (s *Server) AdminRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(TraceID)
	r.Use(RequestLog(s.log))
	r.Use(Recover(s.log))

	r.Handle("/metrics", promhttp.Handler())
	r.Post("/admin/api/v1/login", adminLoginHandler(s.auth, s.adminPW))

	r.Group(func(r chi.Router) {
		r.Use(s.auth.AdminAuth)
		r.Get("/admin/api/v1/credentials/{id}/quota", adminQuotaHandler(s.creds, s.quotaUC))
	})
	return r
}
