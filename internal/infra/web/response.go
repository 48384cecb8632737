// File: internal/infra/web/response.go
package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"image-gateway/internal/domain"
	"image-gateway/internal/usecase"
)

// OpenAI-compatible response shapes.

type imageEntry struct {
	URL     string `json:"url,omitempty"`
	B64JSON string `json:"b64_json,omitempty"`
}

type imagesResponse struct {
	Creator string       `json:"creator"`
	Created int64        `json:"created"`
	Data    []imageEntry `json:"data"`
}

type apiError struct {
	Message string  `json:"message"`
	Type    string  `json:"type"`
	Param   *string `json:"param"`
	Code    *string `json:"code"`
}

type errorResponse struct {
	Error apiError `json:"error"`
}

const creatorName = "image-gateway"

// writeImages shapes the response contract: the single generated artifact is
// replicated Count times, one data entry per requested image.
func writeImages(w http.ResponseWriter, res *usecase.GenerationResult) {
	var entry imageEntry
	if b64 := res.Artifact.InlineB64; b64 != "" {
		entry.B64JSON = b64
	} else {
		entry.URL = res.Artifact.URL()
	}
	data := make([]imageEntry, res.Count)
	for i := range data {
		data[i] = entry
	}
	writeJSON(w, http.StatusOK, imagesResponse{
		Creator: creatorName,
		Created: res.Created.Unix(),
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, err error) {
	status, kind := classify(err)
	writeJSON(w, status, errorResponse{Error: apiError{
		Message: err.Error(),
		Type:    kind,
	}})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest, "invalid_request_error"
	case errors.Is(err, domain.ErrInvalidModel):
		return http.StatusBadRequest, "invalid_request_error"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "authentication_error"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found_error"
	case errors.Is(err, domain.ErrQuotaExceeded):
		return http.StatusTooManyRequests, "rate_limit_error"
	case errors.Is(err, domain.ErrGenerationTimeout):
		return http.StatusRequestTimeout, "timeout_error"
	case errors.Is(err, domain.ErrUpstreamRejected),
		errors.Is(err, domain.ErrUpstreamGenerationFailed):
		return http.StatusBadGateway, "upstream_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
