package domain

import "context"

// ServerRepository defines the persistence contract for servers.
// The store assigns ids: they are monotonically issued and never reused,
// so a (tenant, id) pair stays unique across all servers that ever existed.
type ServerRepository interface {
	// Create persists a new server in status pending with today's date
	// and returns the full record including its assigned id.
	Create(ctx context.Context, tenantID int64, name string) (Server, error)
	// Get returns the server only if it exists under that exact tenant.
	Get(ctx context.Context, tenantID, id int64) (Server, error)
	// GetByID looks a server up without tenant scoping. Used by the
	// provisioning worker, which runs below the tenant-authorization boundary.
	GetByID(ctx context.Context, id int64) (Server, error)
	// List returns all servers for the tenant in ascending id order.
	List(ctx context.Context, tenantID int64) ([]Server, error)
	// UpdateStatus persists a new status if the server still exists.
	// Returns false without error when the row is gone; it never
	// resurrects a deleted record.
	UpdateStatus(ctx context.Context, id int64, status Status) (bool, error)
	// Delete removes the server if present under that tenant.
	// Returns false when absent.
	Delete(ctx context.Context, tenantID, id int64) (bool, error)
}

// LifecycleAdvancer computes the next status in the provisioning lifecycle.
// It returns ErrLifecycleComplete when the current status is terminal.
type LifecycleAdvancer interface {
	Next(ctx context.Context, current Status) (Status, error)
}

// TaskDispatcher schedules the background provisioning of a newly created
// server without blocking the caller. Exactly one job is enqueued per call.
type TaskDispatcher interface {
	Schedule(ctx context.Context, serverID int64) error
}
