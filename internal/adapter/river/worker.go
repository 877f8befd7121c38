package river

import (
	"context"
	"log/slog"

	"github.com/riverqueue/river"

	"github.com/neomorfeo/servio/internal/app"
)

// ProvisionWorker processes provisioning jobs from the River queue by
// handing them to the application-level Provisioner.
type ProvisionWorker struct {
	river.WorkerDefaults[ProvisionArgs]

	provisioner *app.Provisioner
}

// NewProvisionWorker creates a worker that runs the given provisioner.
func NewProvisionWorker(provisioner *app.Provisioner) *ProvisionWorker {
	return &ProvisionWorker{provisioner: provisioner}
}

// Work drives one server through its remaining lifecycle steps. It always
// reports success to River: a deleted server is a normal early termination,
// and a store failure is deliberately not retried, since re-running the job
// could start a second transition sequence for the same server.
func (w *ProvisionWorker) Work(ctx context.Context, job *river.Job[ProvisionArgs]) error {
	slog.InfoContext(ctx, "provisioning server",
		"server_id", job.Args.ServerID,
		"job_id", job.ID,
	)

	if err := w.provisioner.Run(ctx, job.Args.ServerID); err != nil {
		slog.ErrorContext(ctx, "provisioning aborted",
			"server_id", job.Args.ServerID,
			"job_id", job.ID,
			"error", err,
		)
	}

	return nil
}
