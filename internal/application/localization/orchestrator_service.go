package localization

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/storefront/backend/internal/domain/locale"
	"github.com/storefront/backend/internal/domain/localization"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// FailureReasonDuplicateJob marks a locale skipped because an active
// job for the same (catalog product, locale, job type) already exists
const FailureReasonDuplicateJob = "DUPLICATE_JOB"

// FailureReasonUnsupportedLocale marks a locale skipped because it is
// not in the supported locale set
const FailureReasonUnsupportedLocale = "UNSUPPORTED_LOCALE"

// OrchestratorService fans out localization jobs per target locale.
// Job creation per locale is independent: one locale failing never
// blocks the others.
type OrchestratorService struct {
	jobRepo  localization.JobRepository
	notifier localization.ProgressNotifier
	logger   *zap.Logger
}

// NewOrchestratorService creates a new OrchestratorService
func NewOrchestratorService(
	jobRepo localization.JobRepository,
	notifier localization.ProgressNotifier,
	logger *zap.Logger,
) *OrchestratorService {
	return &OrchestratorService{
		jobRepo:  jobRepo,
		notifier: notifier,
		logger:   logger,
	}
}

// localeOutcome is one locale's fan-out result, collected across
// concurrent creations
type localeOutcome struct {
	created  []JobResponse
	failures []LocaleFailure
}

// StartWorkflow creates the workflow's jobs across all target locales
// concurrently. The result is a partial success set: created jobs plus
// per-locale failures. It returns an error only when the request
// itself is invalid, never for individual locale failures.
func (s *OrchestratorService) StartWorkflow(ctx context.Context, req StartWorkflowRequest) (*WorkflowResult, error) {
	workflowType := localization.WorkflowType(req.WorkflowType)
	jobTypes, err := workflowType.JobTypes()
	if err != nil {
		return nil, err
	}
	if len(req.TargetLocales) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "At least one target locale is required")
	}
	if req.CreatedBy == "" {
		return nil, shared.NewDomainError("INVALID_CREATOR", "Workflow creator cannot be empty")
	}

	sourceLocale := req.SourceLocale
	if sourceLocale == "" {
		sourceLocale = locale.DefaultSourceLocale
	}

	outcomes := make([]localeOutcome, len(req.TargetLocales))
	var wg sync.WaitGroup
	for i, targetLocale := range req.TargetLocales {
		wg.Add(1)
		go func(index int, targetLocale string) {
			defer wg.Done()
			outcomes[index] = s.createLocaleJobs(ctx, req, jobTypes, sourceLocale, targetLocale)
		}(i, targetLocale)
	}
	wg.Wait()

	// outcomes are indexed by input position, so the result preserves
	// the request's locale order
	result := &WorkflowResult{
		CreatedJobs: make([]JobResponse, 0, len(req.TargetLocales)*len(jobTypes)),
		Failures:    make([]LocaleFailure, 0),
	}
	for _, outcome := range outcomes {
		result.CreatedJobs = append(result.CreatedJobs, outcome.created...)
		result.Failures = append(result.Failures, outcome.failures...)
	}

	s.logger.Info("workflow started",
		zap.String("workflow_type", req.WorkflowType),
		zap.String("catalog_product_id", req.CatalogProductID.String()),
		zap.Int("created", len(result.CreatedJobs)),
		zap.Int("failures", len(result.Failures)))

	return result, nil
}

// createLocaleJobs creates all job types for one target locale.
// Failures are recorded against the locale and do not propagate.
func (s *OrchestratorService) createLocaleJobs(ctx context.Context, req StartWorkflowRequest, jobTypes []localization.JobType, sourceLocale, targetLocale string) localeOutcome {
	var outcome localeOutcome

	if !locale.IsSupported(targetLocale) {
		s.logger.Warn("unsupported target locale",
			zap.String("target_locale", targetLocale))
		for _, jobType := range jobTypes {
			outcome.failures = append(outcome.failures, LocaleFailure{
				Locale:  targetLocale,
				JobType: string(jobType),
				Reason:  FailureReasonUnsupportedLocale,
			})
		}
		return outcome
	}

	for _, jobType := range jobTypes {
		job, err := s.createJob(ctx, req, jobType, sourceLocale, targetLocale)
		if err != nil {
			reason := err.Error()
			var domainErr *shared.DomainError
			if errors.As(err, &domainErr) {
				reason = domainErr.Message
				if domainErr.Code == FailureReasonDuplicateJob {
					reason = FailureReasonDuplicateJob
				}
			}
			s.logger.Warn("job creation failed",
				zap.String("target_locale", targetLocale),
				zap.String("job_type", string(jobType)),
				zap.Error(err))
			outcome.failures = append(outcome.failures, LocaleFailure{
				Locale:  targetLocale,
				JobType: string(jobType),
				Reason:  reason,
			})
			continue
		}
		outcome.created = append(outcome.created, ToJobResponse(job))
	}

	return outcome
}

// createJob creates and persists one pending job, skipping duplicates
// of still-active submissions
func (s *OrchestratorService) createJob(ctx context.Context, req StartWorkflowRequest, jobType localization.JobType, sourceLocale, targetLocale string) (*localization.LocalizationJob, error) {
	exists, err := s.jobRepo.ExistsActive(ctx, req.CatalogProductID, targetLocale, jobType)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(FailureReasonDuplicateJob,
			"An active job already exists for this locale and job type")
	}

	name := jobName(jobType, sourceLocale, targetLocale)
	job, err := localization.NewLocalizationJob(
		name, jobType,
		req.CatalogID, req.CatalogProductID, req.ProductID,
		sourceLocale, targetLocale,
		req.CreatedBy, req.Config,
	)
	if err != nil {
		return nil, err
	}

	if err := s.jobRepo.Save(ctx, job); err != nil {
		return nil, err
	}

	s.dispatchEvents(ctx, job)

	return job, nil
}

// dispatchEvents pushes pending domain events to the workflow channel.
// Delivery is best-effort; failures are logged and dropped.
func (s *OrchestratorService) dispatchEvents(ctx context.Context, job *localization.LocalizationJob) {
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
	}
	job.ClearDomainEvents()
}

func jobName(jobType localization.JobType, sourceLocale, targetLocale string) string {
	verb := "translate"
	if jobType == localization.JobTypeCurrencyConversion {
		verb = "convert"
	}
	return fmt.Sprintf("%s %s to %s", verb, strings.ToLower(sourceLocale), strings.ToLower(targetLocale))
}
