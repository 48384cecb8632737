package model

import (
	"fmt"
	"strings"

	"image-gateway/internal/domain"
)

type ResponseFormat string

const (
	FormatURL     ResponseFormat = "url"
	FormatB64JSON ResponseFormat = "b64_json"
)

type ImageSize string

const (
	Size256  ImageSize = "256x256"
	Size512  ImageSize = "512x512"
	Size1024 ImageSize = "1024x1024"
	SizeWide ImageSize = "1792x1024"
	SizeTall ImageSize = "1024x1792"
)

var supportedSizes = map[ImageSize]bool{
	Size256:  true,
	Size512:  true,
	Size1024: true,
	SizeWide: true,
	SizeTall: true,
}

const (
	MinImageCount = 1
	MaxImageCount = 10
)

// GenerationRequest is an immutable, validated image-generation request.
// Construct via NewGenerationRequest; zero values are filled with defaults
// before validation.
type GenerationRequest struct {
	Prompt         string
	Count          int
	Size           ImageSize
	ResponseFormat ResponseFormat
	Model          string
	CredentialID   string
}

// NewGenerationRequest validates the caller-supplied fields and applies
// OpenAI-compatible defaults (count=1, response_format=url). Size and model
// may stay empty; the resolver picks provider defaults for those.
func NewGenerationRequest(prompt string, count int, size, format, model, credentialID string) (*GenerationRequest, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, fmt.Errorf("%w: prompt must not be empty", domain.ErrInvalidRequest)
	}
	if count == 0 {
		count = MinImageCount
	}
	if count < MinImageCount || count > MaxImageCount {
		return nil, fmt.Errorf("%w: n must be between %d and %d", domain.ErrInvalidRequest, MinImageCount, MaxImageCount)
	}
	sz := ImageSize(size)
	if size != "" && !supportedSizes[sz] {
		return nil, fmt.Errorf("%w: unsupported size %q", domain.ErrInvalidRequest, size)
	}
	rf := ResponseFormat(format)
	if format == "" {
		rf = FormatURL
	}
	if rf != FormatURL && rf != FormatB64JSON {
		return nil, fmt.Errorf("%w: response_format must be %q or %q", domain.ErrInvalidRequest, FormatURL, FormatB64JSON)
	}
	return &GenerationRequest{
		Prompt:         prompt,
		Count:          count,
		Size:           sz,
		ResponseFormat: rf,
		Model:          strings.TrimSpace(model),
		CredentialID:   credentialID,
	}, nil
}
