package localization

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// JobType identifies the kind of localization work a job performs
type JobType string

const (
	JobTypeTranslation        JobType = "translation"
	JobTypeCurrencyConversion JobType = "currency_conversion"
)

// IsValid reports whether the job type is known
func (t JobType) IsValid() bool {
	return t == JobTypeTranslation || t == JobTypeCurrencyConversion
}

// JobStatus represents the lifecycle state of a job
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// IsTerminal reports whether the status allows no further transition.
// Retries are new jobs, never reopened ones.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// JobConfig is the typed job configuration. Recognized options are
// explicit fields; Extra carries forward-compatible additions only.
type JobConfig struct {
	QualityTier    string            `json:"quality_tier,omitempty"`
	ReviewRequired bool              `json:"review_required,omitempty"`
	IncludeTax     bool              `json:"include_tax,omitempty"`
	IncludeFees    bool              `json:"include_fees,omitempty"`
	Extra          map[string]string `json:"extra,omitempty"`
}

// LocalizationJob is one unit of localization work for a
// (catalog product, target locale, job type) combination. A job row is
// written by the orchestrator as pending and then owned exclusively by
// the worker that claims it.
type LocalizationJob struct {
	shared.BaseAggregateRoot
	Name             string     `gorm:"type:varchar(200);not null"`
	JobType          JobType    `gorm:"type:varchar(30);not null;index:idx_job_dedup"`
	Status           JobStatus  `gorm:"type:varchar(20);not null;default:'pending';index"`
	CatalogID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	CatalogProductID uuid.UUID  `gorm:"type:uuid;not null;index:idx_job_dedup"`
	ProductID        uuid.UUID  `gorm:"type:uuid;not null"`
	SourceLocale     string     `gorm:"type:varchar(10);not null"`
	TargetLocale     string     `gorm:"type:varchar(10);not null;index:idx_job_dedup"`
	Config           JobConfig  `gorm:"type:jsonb;serializer:json"`
	CreatedBy        string     `gorm:"type:varchar(100);not null"`
	WorkerID         string     `gorm:"type:varchar(100)"`
	ProgressPercent  int        `gorm:"not null;default:0"`
	ErrorMessage     string     `gorm:"type:varchar(1000)"`
	StartedAt        *time.Time
	FinishedAt       *time.Time
}

// TableName returns the table name for GORM
func (LocalizationJob) TableName() string {
	return "localization_jobs"
}

// NewLocalizationJob creates a pending job carrying enough context for
// the consuming worker to operate without additional lookups
func NewLocalizationJob(name string, jobType JobType, catalogID, catalogProductID, productID uuid.UUID, sourceLocale, targetLocale, createdBy string, config JobConfig) (*LocalizationJob, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Job name cannot be empty")
	}
	if !jobType.IsValid() {
		return nil, shared.NewDomainError("INVALID_JOB_TYPE", "Unknown job type")
	}
	if catalogID == uuid.Nil || catalogProductID == uuid.Nil || productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Job requires catalog, catalog product, and product identifiers")
	}
	if sourceLocale == "" || targetLocale == "" {
		return nil, shared.NewDomainError("INVALID_LOCALE", "Source and target locales cannot be empty")
	}
	if sourceLocale == targetLocale {
		return nil, shared.NewDomainError("INVALID_LOCALE", "Source and target locales must differ")
	}
	if createdBy == "" {
		return nil, shared.NewDomainError("INVALID_CREATOR", "Job creator cannot be empty")
	}

	job := &LocalizationJob{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		JobType:           jobType,
		Status:            JobStatusPending,
		CatalogID:         catalogID,
		CatalogProductID:  catalogProductID,
		ProductID:         productID,
		SourceLocale:      sourceLocale,
		TargetLocale:      targetLocale,
		Config:            config,
		CreatedBy:         createdBy,
	}

	job.AddDomainEvent(NewJobCreatedEvent(job))

	return job, nil
}

// Claim transitions the job to running under the claiming worker.
// Only pending jobs can be claimed.
func (j *LocalizationJob) Claim(workerID string) error {
	if workerID == "" {
		return shared.NewDomainError("INVALID_WORKER", "Worker ID cannot be empty")
	}
	if j.Status != JobStatusPending {
		return shared.NewDomainError("INVALID_JOB_TRANSITION",
			"Cannot claim job in status "+string(j.Status))
	}
	now := time.Now()
	j.Status = JobStatusRunning
	j.WorkerID = workerID
	j.StartedAt = &now
	j.UpdatedAt = now
	j.IncrementVersion()
	j.AddDomainEvent(NewWorkerAssignedEvent(j))
	return nil
}

// UpdateProgress records worker progress on a running job
func (j *LocalizationJob) UpdateProgress(percent int) error {
	if j.Status != JobStatusRunning {
		return shared.NewDomainError("INVALID_JOB_TRANSITION",
			"Cannot report progress on job in status "+string(j.Status))
	}
	if percent < 0 || percent > 100 {
		return shared.NewDomainError("INVALID_PROGRESS", "Progress must be between 0 and 100")
	}
	if percent < j.ProgressPercent {
		return shared.NewDomainError("INVALID_PROGRESS", "Progress cannot decrease")
	}
	j.ProgressPercent = percent
	j.UpdatedAt = time.Now()
	j.IncrementVersion()
	j.AddDomainEvent(NewProgressUpdateEvent(j))
	return nil
}

// Complete transitions a running job to its terminal completed state
func (j *LocalizationJob) Complete() error {
	if j.Status != JobStatusRunning {
		return shared.NewDomainError("INVALID_JOB_TRANSITION",
			"Cannot complete job in status "+string(j.Status))
	}
	now := time.Now()
	j.Status = JobStatusCompleted
	j.ProgressPercent = 100
	j.FinishedAt = &now
	j.UpdatedAt = now
	j.IncrementVersion()
	j.AddDomainEvent(NewJobCompletedEvent(j))
	j.AddDomainEvent(NewWorkerReleasedEvent(j))
	return nil
}

// Fail transitions a running job to its terminal failed state
func (j *LocalizationJob) Fail(reason string) error {
	if j.Status != JobStatusRunning {
		return shared.NewDomainError("INVALID_JOB_TRANSITION",
			"Cannot fail job in status "+string(j.Status))
	}
	now := time.Now()
	j.Status = JobStatusFailed
	j.ErrorMessage = reason
	j.FinishedAt = &now
	j.UpdatedAt = now
	j.IncrementVersion()
	j.AddDomainEvent(NewJobFailedEvent(j))
	j.AddDomainEvent(NewWorkerReleasedEvent(j))
	return nil
}

// IsStale reports whether a running job has gone without updates for
// longer than the given threshold. Stale jobs are reported, never
// reaped automatically.
func (j *LocalizationJob) IsStale(threshold time.Duration, now time.Time) bool {
	if j.Status != JobStatusRunning {
		return false
	}
	return now.Sub(j.UpdatedAt) > threshold
}
