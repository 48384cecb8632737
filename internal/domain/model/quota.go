package model

import "time"

// QuotaRecord tracks one credential's request count against its daily
// ceiling. One record per credential; mutated on every admitted request.
type QuotaRecord struct {
	CredentialID  string
	RequestsCount int
	LastReset     time.Time
	MaxRequests   int
}

// ResetBoundary returns midnight of the day containing now, in now's zone.
func ResetBoundary(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// NextReset returns the first instant of the following day.
func NextReset(now time.Time) time.Time {
	return ResetBoundary(now).AddDate(0, 0, 1)
}

// Stale reports whether the record predates the current reset boundary and
// must be re-initialized before any limit check.
func (r *QuotaRecord) Stale(now time.Time) bool {
	return r.LastReset.Before(ResetBoundary(now))
}

func (r *QuotaRecord) Remaining() int {
	if left := r.MaxRequests - r.RequestsCount; left > 0 {
		return left
	}
	return 0
}
