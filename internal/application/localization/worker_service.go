package localization

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/localization"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// WorkerService is the surface used by the external worker pool to
// claim jobs and report their outcomes. Every transition is persisted
// with an optimistic version check so no two writers can move the same
// job concurrently.
type WorkerService struct {
	jobRepo  localization.JobRepository
	notifier localization.ProgressNotifier
	logger   *zap.Logger
}

// NewWorkerService creates a new WorkerService
func NewWorkerService(
	jobRepo localization.JobRepository,
	notifier localization.ProgressNotifier,
	logger *zap.Logger,
) *WorkerService {
	return &WorkerService{
		jobRepo:  jobRepo,
		notifier: notifier,
		logger:   logger,
	}
}

// ClaimJob moves a pending job to running under the claiming worker
func (s *WorkerService) ClaimJob(ctx context.Context, jobID uuid.UUID, req ClaimJobRequest) (*JobResponse, error) {
	return s.transition(ctx, jobID, func(job *localization.LocalizationJob) error {
		return job.Claim(req.WorkerID)
	})
}

// ReportProgress records worker progress on a running job
func (s *WorkerService) ReportProgress(ctx context.Context, jobID uuid.UUID, req ReportProgressRequest) (*JobResponse, error) {
	return s.transition(ctx, jobID, func(job *localization.LocalizationJob) error {
		if err := s.requireOwner(job, req.WorkerID); err != nil {
			return err
		}
		return job.UpdateProgress(req.Percent)
	})
}

// CompleteJob moves a running job to its terminal completed state
func (s *WorkerService) CompleteJob(ctx context.Context, jobID uuid.UUID, req ClaimJobRequest) (*JobResponse, error) {
	return s.transition(ctx, jobID, func(job *localization.LocalizationJob) error {
		if err := s.requireOwner(job, req.WorkerID); err != nil {
			return err
		}
		return job.Complete()
	})
}

// FailJob moves a running job to its terminal failed state
func (s *WorkerService) FailJob(ctx context.Context, jobID uuid.UUID, req FailJobRequest) (*JobResponse, error) {
	return s.transition(ctx, jobID, func(job *localization.LocalizationJob) error {
		if err := s.requireOwner(job, req.WorkerID); err != nil {
			return err
		}
		return job.Fail(req.Reason)
	})
}

// GetJob returns one job by ID
func (s *WorkerService) GetJob(ctx context.Context, jobID uuid.UUID) (*JobResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	resp := ToJobResponse(job)
	return &resp, nil
}

// ListPendingJobs returns pending jobs for worker polling, oldest
// first. An empty job type returns pending jobs of every type.
func (s *WorkerService) ListPendingJobs(ctx context.Context, jobType localization.JobType, limit int) ([]JobResponse, error) {
	if jobType != "" && !jobType.IsValid() {
		return nil, shared.NewDomainError("INVALID_JOB_TYPE", "Unknown job type")
	}
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	jobs, err := s.jobRepo.FindPending(ctx, jobType, limit)
	if err != nil {
		return nil, err
	}
	responses := make([]JobResponse, 0, len(jobs))
	for _, job := range jobs {
		responses = append(responses, ToJobResponse(job))
	}
	return responses, nil
}

// transition loads a job, applies the mutation, and persists it under
// the version the job was loaded with. A concurrent writer loses with
// ErrConcurrencyConflict rather than overwriting.
func (s *WorkerService) transition(ctx context.Context, jobID uuid.UUID, mutate func(*localization.LocalizationJob) error) (*JobResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	loadedVersion := job.GetVersion()
	if err := mutate(job); err != nil {
		return nil, err
	}

	if err := s.jobRepo.SaveWithVersion(ctx, job, loadedVersion); err != nil {
		return nil, err
	}

	s.dispatchEvents(ctx, job)

	resp := ToJobResponse(job)
	return &resp, nil
}

// requireOwner rejects reports from a worker that does not own the job
func (s *WorkerService) requireOwner(job *localization.LocalizationJob, workerID string) error {
	if workerID == "" {
		return shared.NewDomainError("INVALID_WORKER", "Worker ID cannot be empty")
	}
	if job.WorkerID != workerID {
		return shared.NewDomainError("NOT_JOB_OWNER", "Job is owned by a different worker")
	}
	return nil
}

// dispatchEvents pushes the job's pending events to both the workflow
// channel and the owning worker's channel. Best-effort only.
func (s *WorkerService) dispatchEvents(ctx context.Context, job *localization.LocalizationJob) {
	if s.notifier == nil {
		job.ClearDomainEvents()
		return
	}
	for _, event := range job.GetDomainEvents() {
		jobEvent, ok := event.(*localization.JobEvent)
		if !ok {
			continue
		}
		if err := s.notifier.NotifyWorkflow(ctx, job.CatalogProductID, jobEvent); err != nil {
			s.logger.Debug("workflow notification dropped", zap.Error(err))
		}
		if job.WorkerID != "" {
			if err := s.notifier.NotifyWorker(ctx, job.WorkerID, jobEvent); err != nil {
				s.logger.Debug("worker notification dropped", zap.Error(err))
			}
		}
	}
	job.ClearDomainEvents()
}
