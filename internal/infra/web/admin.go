// File: internal/infra/web/admin.go
package web

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"image-gateway/internal/domain/ports/repository"
	"image-gateway/internal/usecase"
)

// adminLoginHandler exchanges the configured password for a session JWT.
func adminLoginHandler(auth *AuthManager, password string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if password == "" || subtle.ConstantTimeCompare([]byte(body.Password), []byte(password)) != 1 {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		token, err := auth.Mint()
		if err != nil {
			http.Error(w, "Failed to mint token", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"token": token})
	}
}

// adminQuotaHandler reports a credential's current daily usage.
func adminQuotaHandler(creds repository.CredentialRepository, quota usecase.QuotaUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := chi.URLParam(r, "id")

		cred, err := creds.FindByID(ctx, id)
		if err != nil {
			http.Error(w, "Credential not found", http.StatusNotFound)
			return
		}
		rec, err := quota.Peek(ctx, cred.ID, cred.MaxRequests)
		if err != nil {
			http.Error(w, "Failed to read quota", http.StatusInternalServerError)
			return
		}

		response := struct {
			CredentialID     string    `json:"credential_id"`
			Name             string    `json:"name"`
			Revoked          bool      `json:"revoked"`
			RequestsCount    int       `json:"requests_count"`
			MaxRequests      int       `json:"max_requests"`
			Remaining        int       `json:"remaining"`
			NextReset        time.Time `json:"next_reset"`
			LifetimeRequests int64     `json:"lifetime_requests"`
		}{
			CredentialID:     cred.ID,
			Name:             cred.Name,
			Revoked:          cred.Revoked,
			RequestsCount:    rec.RequestsCount,
			MaxRequests:      rec.MaxRequests,
			Remaining:        rec.Remaining(),
			NextReset:        rec.LastReset.AddDate(0, 0, 1),
			LifetimeRequests: cred.LifetimeRequests,
		}
		writeJSON(w, http.StatusOK, response)
	}
}
