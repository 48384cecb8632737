package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")

	// Request validation and model resolution
	ErrInvalidRequest = errors.New("invalid request")
	ErrInvalidModel   = errors.New("unknown model")

	// Credential / quota gate
	ErrUnauthorized  = errors.New("invalid or revoked api key")
	ErrQuotaExceeded = errors.New("daily request quota exceeded")

	// Generation pipeline
	ErrUpstreamRejected         = errors.New("upstream rejected submission")
	ErrUpstreamGenerationFailed = errors.New("upstream reported generation failure")
	ErrGenerationTimeout        = errors.New("generation did not complete in time")
	ErrArtifactProcessingFailed = errors.New("artifact processing failed")
)
