package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/signalsfoundry/constellation-deployment/timectrl"
)

// ErrBudgetExhausted is returned when a search runs out of steps or time.
var ErrBudgetExhausted = errors.New("search budget exhausted")

// deadlineCheckInterval is how many steps pass between clock and context checks.
const deadlineCheckInterval = 1024

// Budget bounds the combinatorial work of one planning call. A step is one
// node of the permutation search or one partial partition considered by the
// enumerator. A nil *Budget is unlimited.
//
// Budget is not safe for concurrent use; create one per call.
type Budget struct {
	ctx      context.Context
	clock    timectrl.Clock
	maxSteps int
	deadline time.Time

	steps int
	err   error
}

// NewBudget returns a budget of maxSteps steps (0 means unlimited) that also
// expires maxDuration after now on clock (0 means no deadline) or when ctx is
// done. A nil clock uses the wall clock.
func NewBudget(ctx context.Context, clock timectrl.Clock, maxSteps int, maxDuration time.Duration) *Budget {
	if ctx == nil {
		ctx = context.Background()
	}
	if clock == nil {
		clock = timectrl.System()
	}
	b := &Budget{ctx: ctx, clock: clock, maxSteps: maxSteps}
	if maxDuration > 0 {
		b.deadline = clock.Now().Add(maxDuration)
	}
	return b
}

// Spend consumes n steps. Once it has returned an error it keeps returning it.
func (b *Budget) Spend(n int) error {
	if b == nil {
		return nil
	}
	if b.err != nil {
		return b.err
	}
	before := b.steps
	b.steps += n
	if b.maxSteps > 0 && b.steps > b.maxSteps {
		b.err = fmt.Errorf("%w: exceeded %d steps", ErrBudgetExhausted, b.maxSteps)
		return b.err
	}
	if before/deadlineCheckInterval != b.steps/deadlineCheckInterval || before == 0 {
		if err := b.ctx.Err(); err != nil {
			b.err = err
			return b.err
		}
		if !b.deadline.IsZero() && !b.clock.Now().Before(b.deadline) {
			b.err = fmt.Errorf("%w: deadline passed after %d steps", ErrBudgetExhausted, b.steps)
			return b.err
		}
	}
	return nil
}

// Steps is the number of steps consumed so far.
func (b *Budget) Steps() int {
	if b == nil {
		return 0
	}
	return b.steps
}
