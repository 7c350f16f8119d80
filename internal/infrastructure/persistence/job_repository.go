package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/localization"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormJobRepository implements JobRepository using GORM
type GormJobRepository struct {
	db *gorm.DB
}

// NewGormJobRepository creates a new GormJobRepository
func NewGormJobRepository(db *gorm.DB) *GormJobRepository {
	return &GormJobRepository{db: db}
}

// FindByID finds a job by its ID
func (r *GormJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*localization.LocalizationJob, error) {
	var job localization.LocalizationJob
	if err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

// FindByCatalogProduct finds all jobs for a catalog product
func (r *GormJobRepository) FindByCatalogProduct(ctx context.Context, catalogProductID uuid.UUID) ([]*localization.LocalizationJob, error) {
	var jobs []*localization.LocalizationJob
	if err := r.db.WithContext(ctx).
		Where("catalog_product_id = ?", catalogProductID).
		Order("created_at ASC").
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// FindPending finds pending jobs of the given type, oldest first
func (r *GormJobRepository) FindPending(ctx context.Context, jobType localization.JobType, limit int) ([]*localization.LocalizationJob, error) {
	var jobs []*localization.LocalizationJob
	query := r.db.WithContext(ctx).
		Where("status = ?", localization.JobStatusPending).
		Order("created_at ASC")

	if jobType != "" {
		query = query.Where("job_type = ?", jobType)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// ExistsActive reports whether a pending or running job already exists
// for the (catalog product, target locale, job type) combination
func (r *GormJobRepository) ExistsActive(ctx context.Context, catalogProductID uuid.UUID, targetLocale string, jobType localization.JobType) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&localization.LocalizationJob{}).
		Where("catalog_product_id = ? AND target_locale = ? AND job_type = ?", catalogProductID, targetLocale, jobType).
		Where("status IN ?", []localization.JobStatus{localization.JobStatusPending, localization.JobStatusRunning}).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a job
func (r *GormJobRepository) Save(ctx context.Context, job *localization.LocalizationJob) error {
	return r.db.WithContext(ctx).Save(job).Error
}

// SaveWithVersion persists the job only if the stored row still carries
// the expected version
func (r *GormJobRepository) SaveWithVersion(ctx context.Context, job *localization.LocalizationJob, expectedVersion int) error {
	result := r.db.WithContext(ctx).
		Model(job).
		Where("id = ? AND version = ?", job.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":           job.Status,
			"worker_id":        job.WorkerID,
			"progress_percent": job.ProgressPercent,
			"error_message":    job.ErrorMessage,
			"started_at":       job.StartedAt,
			"finished_at":      job.FinishedAt,
			"version":          job.Version,
			"updated_at":       job.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}
