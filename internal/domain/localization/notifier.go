package localization

import (
	"context"

	"github.com/google/uuid"
)

// ProgressNotifier publishes job lifecycle events to workflow- and
// worker-scoped channels. Delivery is at-most-once and best-effort;
// subscribers must reconcile by re-polling progress on an interval
// rather than trusting push delivery.
type ProgressNotifier interface {
	// NotifyWorkflow publishes to the channel for all subscribers
	// watching the job's catalog product.
	NotifyWorkflow(ctx context.Context, catalogProductID uuid.UUID, event *JobEvent) error

	// NotifyWorker publishes to the channel scoped to one worker.
	NotifyWorker(ctx context.Context, workerID string, event *JobEvent) error
}
