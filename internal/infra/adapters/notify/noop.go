package notify

import (
	"context"

	"image-gateway/internal/domain/ports/adapter"
)

var _ adapter.OperatorNotifier = (*NoopNotifier)(nil)

// NoopNotifier is used when no alert channel is configured.
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier { return &NoopNotifier{} }

func (NoopNotifier) Alert(ctx context.Context, message string) error { return nil }
