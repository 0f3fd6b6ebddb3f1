package test

import (
	"context"
	"sync"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/adapter/payment"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/notify"
)

// VerifierStub accepts references whose signature equals "valid" unless overridden.
type VerifierStub struct {
	VerifyFn func(context.Context, string, payment.Reference) (bool, error)
}

func (s VerifierStub) Verify(ctx context.Context, orderID string, ref payment.Reference) (bool, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, orderID, ref)
	}
	return ref.Signature == "valid", nil
}

// Emitted is one recorded emission.
type Emitted struct {
	Channel notify.Channel
	Event   model.StatusEvent
}

// EmitterRecorder records emitted events.
type EmitterRecorder struct {
	mu     sync.Mutex
	events []Emitted
}

func (r *EmitterRecorder) Emit(ctx context.Context, ch notify.Channel, event model.StatusEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Emitted{Channel: ch, Event: event})
}

// Events returns a copy of the recorded emissions.
func (r *EmitterRecorder) Events() []Emitted {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Emitted, len(r.events))
	copy(out, r.events)
	return out
}

// InlineExecutor runs jobs on the calling goroutine and counts them.
type InlineExecutor struct {
	Err   error
	Calls int
}

func (e *InlineExecutor) Do(ctx context.Context, fn func()) error {
	e.Calls++
	if e.Err != nil {
		return e.Err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	fn()
	return nil
}

var _ payment.Verifier = VerifierStub{}
var _ notify.Emitter = (*EmitterRecorder)(nil)
