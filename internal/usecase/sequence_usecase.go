package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"sisgenius/internal/domain/entities"
	"sisgenius/internal/usecase/interfaces"
)

var (
	// ErrSequenceUnavailable means the atomic counter increment could not be
	// completed. Order creation must fail rather than proceed with a guessed
	// number.
	ErrSequenceUnavailable = errors.New("order number sequence unavailable")

	// ErrBackfillBatchTooLarge means more orders are missing numbers than a
	// single all-or-nothing store transaction can carry. Splitting the batch
	// would break the no-partial-numbering guarantee, so the run is refused.
	ErrBackfillBatchTooLarge = errors.New("backfill batch exceeds transaction limit")
)

// BackfillResult summarizes one backfill pass.
type BackfillResult struct {
	Assigned   int   `json:"assigned"`
	MaxNumber  int64 `json:"max_number"`
	NewCounter int64 `json:"new_counter"`
}

// ISequenceUseCase issues globally unique, strictly increasing order numbers
// and owns the one-time legacy backfill.

type ISequenceUseCase interface {
	NextOrderNumber(ctx context.Context) (int64, error)
	BackfillMissingNumbers(ctx context.Context) (BackfillResult, error)
}

type SequenceUseCase struct {
	counter interfaces.ISequenceRepository
	orders  interfaces.IServiceOrderRepository
}

var _ ISequenceUseCase = (*SequenceUseCase)(nil)

// maxBackfillAssignments keeps the order updates plus the counter write
// within DynamoDB's 100-action transaction limit.
const maxBackfillAssignments = 99

func NewSequenceUseCase(counter interfaces.ISequenceRepository, orders interfaces.IServiceOrderRepository) *SequenceUseCase {
	return &SequenceUseCase{counter: counter, orders: orders}
}

// NextOrderNumber returns the next value of the shared counter. Uniqueness
// and monotonicity hold across concurrent sessions because the increment is
// a single atomic read-modify-write inside the store. Numbers are not
// necessarily contiguous: a failed commit after issuance burns its number.
func (u *SequenceUseCase) NextOrderNumber(ctx context.Context) (int64, error) {
	n, err := u.counter.Increment(ctx)
	if err != nil {
		log.Printf("[sequence][usecase] counter increment failed err=%v", err)
		return 0, fmt.Errorf("%w: %v", ErrSequenceUnavailable, err)
	}
	return n, nil
}

// BackfillMissingNumbers assigns numbers to legacy orders lacking one.
//
// Missing orders are numbered max+1, max+2, ... in ascending creation-time
// order, and the counter lands on max+count, all written as one
// all-or-nothing batch. Re-running when nothing is missing is a no-op, which
// makes the pass idempotent.
func (u *SequenceUseCase) BackfillMissingNumbers(ctx context.Context) (BackfillResult, error) {
	orders, err := u.orders.List(ctx)
	if err != nil {
		return BackfillResult{}, err
	}

	var max int64
	var missing []entities.ServiceOrder
	for _, o := range orders {
		if o.Number > 0 {
			if o.Number > max {
				max = o.Number
			}
			continue
		}
		missing = append(missing, o)
	}

	if len(missing) == 0 {
		log.Printf("[sequence][usecase] backfill no-op, all %d orders numbered", len(orders))
		return BackfillResult{Assigned: 0, MaxNumber: max, NewCounter: max}, nil
	}
	if len(missing) > maxBackfillAssignments {
		return BackfillResult{}, ErrBackfillBatchTooLarge
	}

	sort.SliceStable(missing, func(i, j int) bool {
		return missing[i].CreatedAt.Before(missing[j].CreatedAt)
	})

	assignments := make([]interfaces.NumberAssignment, 0, len(missing))
	for i, o := range missing {
		assignments = append(assignments, interfaces.NumberAssignment{
			OrderID: o.ID,
			Number:  max + int64(i) + 1,
		})
	}
	newCounter := max + int64(len(missing))

	if err := u.counter.AssignNumbers(ctx, assignments, newCounter); err != nil {
		log.Printf("[sequence][usecase] backfill batch failed count=%d err=%v", len(assignments), err)
		return BackfillResult{}, err
	}

	log.Printf("[sequence][usecase] backfill assigned=%d counter=%d", len(assignments), newCounter)
	return BackfillResult{Assigned: len(assignments), MaxNumber: max, NewCounter: newCounter}, nil
}
