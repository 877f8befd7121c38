package fsm

import (
	"context"
	"errors"

	loopfsm "github.com/looplab/fsm"

	"github.com/neomorfeo/servio/internal/domain"
)

// Compile-time check: Advancer implements domain.LifecycleAdvancer.
var _ domain.LifecycleAdvancer = (*Advancer)(nil)

// events converts domain.Transitions into looplab/fsm EventDesc format.
var events = buildEvents()

func buildEvents() []loopfsm.EventDesc {
	out := make([]loopfsm.EventDesc, 0, len(domain.Transitions))
	for _, t := range domain.Transitions {
		out = append(out, loopfsm.EventDesc{
			Name: string(t.Event),
			Src:  []string{string(t.Src)},
			Dst:  string(t.Dst),
		})
	}
	return out
}

// Advancer implements domain.LifecycleAdvancer using looplab/fsm.
// It creates a short-lived FSM instance per Next call, initialized with
// the server's current status. This is necessary because looplab/fsm is
// stateful (it tracks the current state internally).
type Advancer struct{}

// New creates a new FSM-backed lifecycle advancer.
func New() *Advancer {
	return &Advancer{}
}

// Next returns the status that follows current in the provisioning lifecycle.
// It returns domain.ErrLifecycleComplete when current is terminal. The
// lifecycle is linear today, but richer transition tables (guards, branches)
// slot in here without touching the worker or dispatcher.
func (a *Advancer) Next(ctx context.Context, current domain.Status) (domain.Status, error) {
	event, ok := domain.NextEvent(current)
	if !ok {
		return "", domain.ErrLifecycleComplete
	}

	machine := loopfsm.NewFSM(string(current), events, nil)

	if err := machine.Event(ctx, string(event)); err != nil {
		var invalidEvent loopfsm.InvalidEventError
		var noTransition loopfsm.NoTransitionError
		if errors.As(err, &invalidEvent) || errors.As(err, &noTransition) {
			// The transition table and NextEvent disagree; treat as terminal
			// rather than advancing out of order.
			return "", domain.ErrLifecycleComplete
		}
		return "", err
	}

	return domain.Status(machine.Current()), nil
}
