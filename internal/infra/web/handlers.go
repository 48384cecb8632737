// File: internal/infra/web/handlers.go
package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"image-gateway/internal/domain"
	"image-gateway/internal/domain/model"
	"image-gateway/internal/usecase"
)

// imagesRequest mirrors the OpenAI images API body.
type imagesRequest struct {
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format"`
	Model          string `json:"model"`
}

func generationsHandler(genUC usecase.GenerationUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		cred := credentialFrom(ctx)
		if cred == nil {
			writeError(w, domain.ErrUnauthorized)
			return
		}

		var body imagesRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, fmt.Errorf("%w: malformed json body", domain.ErrInvalidRequest))
			return
		}

		req, err := model.NewGenerationRequest(
			body.Prompt, body.N, body.Size, body.ResponseFormat, body.Model, cred.ID,
		)
		if err != nil {
			writeError(w, err)
			return
		}

		res, err := genUC.Generate(ctx, req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeImages(w, res)
	}
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
