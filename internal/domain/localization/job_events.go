package localization

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Event type names published on workflow and worker channels
const (
	EventTypeJobCreated     = "localization.job.created"
	EventTypeProgressUpdate = "localization.job.progress"
	EventTypeJobCompleted   = "localization.job.completed"
	EventTypeJobFailed      = "localization.job.failed"
	EventTypeWorkerAssigned = "localization.worker.assigned"
	EventTypeWorkerReleased = "localization.worker.released"
)

// JobEvent carries the identifying context shared by all job lifecycle
// events
type JobEvent struct {
	shared.BaseDomainEvent
	JobID            uuid.UUID `json:"job_id"`
	JobType          JobType   `json:"job_type"`
	CatalogProductID uuid.UUID `json:"catalog_product_id"`
	TargetLocale     string    `json:"target_locale"`
	WorkerID         string    `json:"worker_id,omitempty"`
	ProgressPercent  int       `json:"progress_percent"`
	ErrorMessage     string    `json:"error_message,omitempty"`
}

func newJobEvent(eventType string, j *LocalizationJob) *JobEvent {
	return &JobEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(eventType, "LocalizationJob", j.ID),
		JobID:            j.ID,
		JobType:          j.JobType,
		CatalogProductID: j.CatalogProductID,
		TargetLocale:     j.TargetLocale,
		WorkerID:         j.WorkerID,
		ProgressPercent:  j.ProgressPercent,
		ErrorMessage:     j.ErrorMessage,
	}
}

// NewJobCreatedEvent is published when the orchestrator writes a
// pending job
func NewJobCreatedEvent(j *LocalizationJob) *JobEvent {
	return newJobEvent(EventTypeJobCreated, j)
}

// NewProgressUpdateEvent is published on worker progress reports
func NewProgressUpdateEvent(j *LocalizationJob) *JobEvent {
	return newJobEvent(EventTypeProgressUpdate, j)
}

// NewJobCompletedEvent is published when a job reaches completed
func NewJobCompletedEvent(j *LocalizationJob) *JobEvent {
	return newJobEvent(EventTypeJobCompleted, j)
}

// NewJobFailedEvent is published when a job reaches failed
func NewJobFailedEvent(j *LocalizationJob) *JobEvent {
	return newJobEvent(EventTypeJobFailed, j)
}

// NewWorkerAssignedEvent is published when a worker claims a job
func NewWorkerAssignedEvent(j *LocalizationJob) *JobEvent {
	return newJobEvent(EventTypeWorkerAssigned, j)
}

// NewWorkerReleasedEvent is published when a job leaves its worker,
// on either terminal transition
func NewWorkerReleasedEvent(j *LocalizationJob) *JobEvent {
	return newJobEvent(EventTypeWorkerReleased, j)
}
