package river

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/riverqueue/river"

	"github.com/neomorfeo/servio/internal/domain"
)

// Compile-time check: Dispatcher implements domain.TaskDispatcher.
var _ domain.TaskDispatcher = (*Dispatcher)(nil)

// ProvisionArgs carries the id of the server to provision. River serializes
// this as JSON into its job queue table. The worker re-reads the server from
// the database on every step, so the id is all it needs.
type ProvisionArgs struct {
	ServerID int64 `json:"server_id"`
}

// Kind returns the unique job type identifier used by River's job routing.
func (ProvisionArgs) Kind() string { return "server.provision" }

// Client is the River client type parameterized for SQLite (*sql.Tx).
type Client = river.Client[*sql.Tx]

// Dispatcher implements domain.TaskDispatcher by enqueuing River jobs.
// Each Schedule call inserts exactly one durable job and returns without
// waiting for any provisioning work.
type Dispatcher struct {
	client *Client
}

// NewDispatcher creates a dispatcher backed by the given River client.
func NewDispatcher(client *Client) *Dispatcher {
	return &Dispatcher{client: client}
}

// Schedule enqueues the provisioning job for a newly created server.
// MaxAttempts is pinned to 1: a failed run leaves the server at its last
// committed status and is never re-executed.
func (d *Dispatcher) Schedule(ctx context.Context, serverID int64) error {
	_, err := d.client.Insert(ctx, ProvisionArgs{ServerID: serverID}, &river.InsertOpts{
		MaxAttempts: 1,
	})
	if err != nil {
		return fmt.Errorf("enqueuing provision job: %w", err)
	}
	return nil
}
