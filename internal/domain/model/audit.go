package model

import "time"

// AuditRecord captures one terminal generation outcome or one successful
// artifact re-host. Writes are best-effort: a failed append never affects
// the primary result.
type AuditRecord struct {
	ID           string
	CredentialID string
	Endpoint     string
	Prompt       string
	Model        string
	Outcome      string // "ok" or the failure class
	ArtifactPath string
	CreatedAt    time.Time
}
