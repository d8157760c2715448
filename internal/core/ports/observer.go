package ports

import "context"

// SeenSet remembers which new-order ids have already raised an alert, per scope
// (a delivery partner's phone number).
type SeenSet interface {
	Members(ctx context.Context, scope string) ([]string, error)
	Add(ctx context.Context, scope string, ids ...string) error
	Remove(ctx context.Context, scope string, ids ...string) error
}

// Alarm is the ringing notification shown while an order waits for a decision.
// Stop on a silent alarm is a no-op.
type Alarm interface {
	Start(scope, id string)
	Stop(scope, id string)
	Ringing(scope string) []string
}
