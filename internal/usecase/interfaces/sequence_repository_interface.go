package interfaces

import "context"

// NumberAssignment pairs one order with the number the backfill pass chose
// for it.
type NumberAssignment struct {
	OrderID string
	Number  int64
}

// ISequenceRepository abstracts the durable order-number counter.
//
// Increment must be a single atomic read-modify-write against the store
// (DynamoDB ADD), never a read followed by a write: two sessions creating
// orders at the same instant must not observe the same value. A missing
// counter record is initialized implicitly by the first increment; an
// already-existing counter always wins that race inside the store.
//
// AssignNumbers writes a backfill batch plus the new counter value as one
// all-or-nothing transaction; a partial assignment must never become
// visible.

type ISequenceRepository interface {
	Increment(ctx context.Context) (int64, error)
	AssignNumbers(ctx context.Context, assignments []NumberAssignment, counterValue int64) error
}
