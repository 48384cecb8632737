// File: internal/infra/web/auth.go
package web

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"image-gateway/internal/domain"
	"image-gateway/internal/domain/model"
	"image-gateway/internal/domain/ports/repository"
	"image-gateway/internal/infra/logging"
	"image-gateway/internal/infra/security"
	"image-gateway/internal/usecase"
)

type ctxKey string

const ctxCredential ctxKey = "credential"

// credentialFrom pulls the authenticated credential placed by APIKeyAuth.
func credentialFrom(ctx context.Context) *model.Credential {
	c, _ := ctx.Value(ctxCredential).(*model.Credential)
	return c
}

// APIKeyAuth authenticates `Authorization: Bearer sk-...` against the
// credential store and stashes the credential in the request context.
func APIKeyAuth(creds repository.CredentialRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, ok := bearerToken(r)
			if !ok || !security.LooksLikeAPIKey(key) {
				writeError(w, domain.ErrUnauthorized)
				return
			}
			cred, err := creds.FindByKeyHash(r.Context(), security.HashAPIKey(key))
			if err != nil || cred.Revoked {
				writeError(w, domain.ErrUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), ctxCredential, cred)
			ctx = logging.WithCredentialID(ctx, cred.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// QuotaGuard consults the ledger before the orchestrator runs. Informational
// rate-limit headers are attached on every outcome.
func QuotaGuard(quota usecase.QuotaUseCase) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cred := credentialFrom(r.Context())
			if cred == nil {
				writeError(w, domain.ErrUnauthorized)
				return
			}
			rec, err := quota.CheckAndConsume(r.Context(), cred.ID, cred.MaxRequests)
			if rec != nil {
				setRateLimitHeaders(w, rec)
			}
			if err != nil {
				writeError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func setRateLimitHeaders(w http.ResponseWriter, rec *model.QuotaRecord) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rec.MaxRequests))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(rec.Remaining()))
	w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", model.NextReset(rec.LastReset).Unix()))
}

func bearerToken(r *http.Request) (string, bool) {
	hdr := r.Header.Get("Authorization")
	if hdr == "" {
		return "", false
	}
	parts := strings.SplitN(hdr, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
