package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neomorfeo/servio/internal/domain"
)

// DefaultStepDelay is the fixed pause before the first and between each
// subsequent lifecycle step.
const DefaultStepDelay = 10 * time.Second

// Provisioner drives a single server through every remaining lifecycle step,
// persisting each one through the repository. At most one Run is ever active
// per server id: exactly one job is enqueued per created server.
type Provisioner struct {
	repo     domain.ServerRepository
	advancer domain.LifecycleAdvancer
	delay    time.Duration
}

// NewProvisioner creates a provisioner with the given inter-step delay.
// A delay of zero or less falls back to DefaultStepDelay.
func NewProvisioner(repo domain.ServerRepository, advancer domain.LifecycleAdvancer, delay time.Duration) *Provisioner {
	if delay <= 0 {
		delay = DefaultStepDelay
	}
	return &Provisioner{
		repo:     repo,
		advancer: advancer,
		delay:    delay,
	}
}

// Run advances the server until its lifecycle completes or the server is
// deleted. A deleted server is a normal early termination, not an error.
// A repository failure aborts the run and leaves the server at its last
// committed status; the error is reported to the caller and never retried.
func (p *Provisioner) Run(ctx context.Context, serverID int64) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.delay):
		}

		server, err := p.repo.GetByID(ctx, serverID)
		if errors.Is(err, domain.ErrServerNotFound) {
			// Deleted mid-lifecycle; abandon silently.
			return nil
		}
		if err != nil {
			return fmt.Errorf("looking up server %d: %w", serverID, err)
		}

		next, err := p.advancer.Next(ctx, server.Status)
		if errors.Is(err, domain.ErrLifecycleComplete) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("advancing server %d from %q: %w", serverID, server.Status, err)
		}

		ok, err := p.repo.UpdateStatus(ctx, serverID, next)
		if err != nil {
			return fmt.Errorf("persisting status %q for server %d: %w", next, serverID, err)
		}
		if !ok {
			// Lost the race with a delete; the delete wins.
			return nil
		}
	}
}
