package localization

import (
	"context"

	"github.com/google/uuid"
)

// JobRepository defines the interface for localization job persistence
type JobRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LocalizationJob, error)
	FindByCatalogProduct(ctx context.Context, catalogProductID uuid.UUID) ([]*LocalizationJob, error)
	FindPending(ctx context.Context, jobType JobType, limit int) ([]*LocalizationJob, error)

	// ExistsActive reports whether a pending or running job already
	// exists for the (catalog product, target locale, job type)
	// combination.
	ExistsActive(ctx context.Context, catalogProductID uuid.UUID, targetLocale string, jobType JobType) (bool, error)

	Save(ctx context.Context, job *LocalizationJob) error

	// SaveWithVersion persists the job only if the stored row still
	// carries the expected version, enforcing single-writer
	// transitions. Returns shared.ErrConcurrencyConflict on a stale
	// version.
	SaveWithVersion(ctx context.Context, job *LocalizationJob, expectedVersion int) error
}
