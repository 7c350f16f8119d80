package localization

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/localization"
)

// StartWorkflowRequest fans out localization jobs for one catalog
// product across target locales
type StartWorkflowRequest struct {
	CatalogID        uuid.UUID              `json:"catalog_id" binding:"required"`
	CatalogProductID uuid.UUID              `json:"catalog_product_id" binding:"required"`
	ProductID        uuid.UUID              `json:"product_id" binding:"required"`
	WorkflowType     string                 `json:"workflow_type" binding:"required"`
	TargetLocales    []string               `json:"target_locales" binding:"required,min=1,dive,locale_code"`
	SourceLocale     string                 `json:"source_locale" binding:"omitempty,locale_code"`
	CreatedBy        string                 `json:"created_by" binding:"required,min=1,max=100"`
	Config           localization.JobConfig `json:"config"`
}

// JobResponse represents a localization job in API responses
type JobResponse struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	JobType          string     `json:"job_type"`
	Status           string     `json:"status"`
	CatalogID        uuid.UUID  `json:"catalog_id"`
	CatalogProductID uuid.UUID  `json:"catalog_product_id"`
	ProductID        uuid.UUID  `json:"product_id"`
	SourceLocale     string     `json:"source_locale"`
	TargetLocale     string     `json:"target_locale"`
	WorkerID         string     `json:"worker_id,omitempty"`
	ProgressPercent  int        `json:"progress_percent"`
	ErrorMessage     string     `json:"error_message,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	StartedAt        *time.Time `json:"started_at,omitempty"`
	FinishedAt       *time.Time `json:"finished_at,omitempty"`
}

// LocaleFailure names one locale whose job creation failed. Failures
// are collected, never raised.
type LocaleFailure struct {
	Locale  string `json:"locale"`
	JobType string `json:"job_type"`
	Reason  string `json:"reason"`
}

// WorkflowResult is the partial-success outcome of StartWorkflow
type WorkflowResult struct {
	CreatedJobs []JobResponse   `json:"created_jobs"`
	Failures    []LocaleFailure `json:"failures"`
}

// ProgressResponse is the aggregated workflow progress snapshot
type ProgressResponse struct {
	CatalogProductID uuid.UUID     `json:"catalog_product_id"`
	TotalJobs        int           `json:"total_jobs"`
	CompletedJobs    int           `json:"completed_jobs"`
	FailedJobs       int           `json:"failed_jobs"`
	RunningJobs      int           `json:"running_jobs"`
	PendingJobs      int           `json:"pending_jobs"`
	StaleJobs        int           `json:"stale_jobs"`
	OverallPercent   int           `json:"overall_percent"`
	LocaleProgress   int           `json:"locale_progress"`
	ContentProgress  int           `json:"content_progress"`
	Status           string        `json:"status"`
	Jobs             []JobResponse `json:"jobs,omitempty"`
}

// ClaimJobRequest claims a pending job for a worker
type ClaimJobRequest struct {
	WorkerID string `json:"worker_id" binding:"required,min=1,max=100"`
}

// ReportProgressRequest reports worker progress on a running job
type ReportProgressRequest struct {
	WorkerID string `json:"worker_id" binding:"required,min=1,max=100"`
	Percent  int    `json:"percent" binding:"min=0,max=100"`
}

// FailJobRequest marks a running job failed
type FailJobRequest struct {
	WorkerID string `json:"worker_id" binding:"required,min=1,max=100"`
	Reason   string `json:"reason" binding:"required,min=1,max=1000"`
}

// ToJobResponse converts a domain job to a response DTO
func ToJobResponse(job *localization.LocalizationJob) JobResponse {
	return JobResponse{
		ID:               job.ID,
		Name:             job.Name,
		JobType:          string(job.JobType),
		Status:           string(job.Status),
		CatalogID:        job.CatalogID,
		CatalogProductID: job.CatalogProductID,
		ProductID:        job.ProductID,
		SourceLocale:     job.SourceLocale,
		TargetLocale:     job.TargetLocale,
		WorkerID:         job.WorkerID,
		ProgressPercent:  job.ProgressPercent,
		ErrorMessage:     job.ErrorMessage,
		CreatedAt:        job.CreatedAt,
		StartedAt:        job.StartedAt,
		FinishedAt:       job.FinishedAt,
	}
}
