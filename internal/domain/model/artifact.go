package model

import "time"

// Artifact is the caller-consumable representation of a generated image:
// either a short-lived signed URL over a re-hosted copy, the original
// upstream URL when re-hosting degraded, or inline base64 bytes.
type Artifact struct {
	SourceURL   string
	StoragePath string // empty when re-hosting was skipped or degraded
	SignedURL   string
	InlineB64   string
	ExpiresAt   time.Time
}

// URL returns the best available reference: the signed URL when re-hosting
// succeeded, otherwise the original upstream URL.
func (a *Artifact) URL() string {
	if a.SignedURL != "" {
		return a.SignedURL
	}
	return a.SourceURL
}

// Degraded reports whether the URL path fell back to the upstream source.
func (a *Artifact) Degraded() bool {
	return a.InlineB64 == "" && a.SignedURL == ""
}
