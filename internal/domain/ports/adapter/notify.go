package adapter

import "context"

// OperatorNotifier pushes operational alerts (storage degradation, quota
// exhaustion) to whoever is on call. Fire-and-forget; failures are logged.
type OperatorNotifier interface {
	Alert(ctx context.Context, message string) error
}
