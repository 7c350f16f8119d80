package localization

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/content"
	"github.com/storefront/backend/internal/domain/localization"
	"github.com/storefront/backend/internal/domain/pricing"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProgressService aggregates workflow progress over a catalog
// product's jobs. Reads are idempotent snapshots; computing progress
// never mutates a job.
type ProgressService struct {
	jobRepo            localization.JobRepository
	catalogProductRepo catalog.CatalogProductRepository
	financialRepo      pricing.FinancialRepository
	contentRepo        content.ContentRepository
	staleAfter         time.Duration
	logger             *zap.Logger
}

// NewProgressService creates a new ProgressService
func NewProgressService(
	jobRepo localization.JobRepository,
	catalogProductRepo catalog.CatalogProductRepository,
	financialRepo pricing.FinancialRepository,
	contentRepo content.ContentRepository,
	staleAfter time.Duration,
	logger *zap.Logger,
) *ProgressService {
	if staleAfter <= 0 {
		staleAfter = 10 * time.Minute
	}
	return &ProgressService{
		jobRepo:            jobRepo,
		catalogProductRepo: catalogProductRepo,
		financialRepo:      financialRepo,
		contentRepo:        contentRepo,
		staleAfter:         staleAfter,
		logger:             logger,
	}
}

// GetProgress returns the progress snapshot for a catalog product.
// With job rows present the percentage is completed/total; without
// any, it falls back to the coarser content/financial row counts.
// Running jobs without recent updates are counted as stale but are
// never transitioned here.
func (s *ProgressService) GetProgress(ctx context.Context, catalogProductID uuid.UUID) (*ProgressResponse, error) {
	jobs, err := s.jobRepo.FindByCatalogProduct(ctx, catalogProductID)
	if err != nil {
		return nil, err
	}

	resp := &ProgressResponse{CatalogProductID: catalogProductID}

	if len(jobs) == 0 {
		return s.coarseProgress(ctx, catalogProductID, resp)
	}

	progress := localization.ComputeProgress(jobs)
	resp.TotalJobs = progress.TotalJobs
	resp.CompletedJobs = progress.CompletedJobs
	resp.FailedJobs = progress.FailedJobs
	resp.RunningJobs = progress.RunningJobs
	resp.PendingJobs = progress.PendingJobs
	resp.OverallPercent = progress.OverallPercent
	resp.Status = string(progress.Status)

	now := time.Now()
	for _, job := range jobs {
		if job.IsStale(s.staleAfter, now) {
			resp.StaleJobs++
			s.logger.Warn("running job has gone stale",
				zap.String("job_id", job.ID.String()),
				zap.String("worker_id", job.WorkerID),
				zap.Time("last_update", job.UpdatedAt))
		}
		resp.Jobs = append(resp.Jobs, ToJobResponse(job))
	}

	return resp, nil
}

// coarseProgress derives item-count progress from the content and
// financial stores when no job rows exist yet
func (s *ProgressService) coarseProgress(ctx context.Context, catalogProductID uuid.UUID, resp *ProgressResponse) (*ProgressResponse, error) {
	resp.Status = string(localization.WorkflowStatusPending)

	catalogProduct, err := s.catalogProductRepo.FindByID(ctx, catalogProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return resp, nil
		}
		return nil, err
	}

	totalFinancial, localized, err := s.financialRepo.CountByCatalogProduct(ctx, catalogProduct.CatalogID, catalogProduct.ProductID)
	if err == nil && totalFinancial > 0 {
		resp.LocaleProgress = int(localized * 100 / totalFinancial)
	}

	totalContent, translated, err := s.contentRepo.CountByProduct(ctx, catalogProduct.ProductID)
	if err == nil && totalContent > 0 {
		resp.ContentProgress = int(translated * 100 / totalContent)
	}

	resp.OverallPercent = (resp.LocaleProgress + resp.ContentProgress) / 2
	if resp.OverallPercent >= 100 {
		resp.Status = string(localization.WorkflowStatusCompleted)
	}

	return resp, nil
}
