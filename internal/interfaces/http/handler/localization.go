package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	localizationapp "github.com/storefront/backend/internal/application/localization"
	"github.com/storefront/backend/internal/domain/localization"
)

const defaultPendingJobLimit = 50

// LocalizationHandler handles localization workflow and worker
// endpoints
type LocalizationHandler struct {
	BaseHandler
	orchestrator    *localizationapp.OrchestratorService
	progressService *localizationapp.ProgressService
	workerService   *localizationapp.WorkerService
}

// NewLocalizationHandler creates a new LocalizationHandler
func NewLocalizationHandler(
	orchestrator *localizationapp.OrchestratorService,
	progressService *localizationapp.ProgressService,
	workerService *localizationapp.WorkerService,
) *LocalizationHandler {
	return &LocalizationHandler{
		orchestrator:    orchestrator,
		progressService: progressService,
		workerService:   workerService,
	}
}

// RegisterRoutes registers workflow and worker endpoints
func (h *LocalizationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	loc := rg.Group("/localization")
	{
		loc.POST("/workflows", h.StartWorkflow)
		loc.GET("/products/:id/progress", h.GetProgress)

		jobs := loc.Group("/jobs")
		{
			jobs.GET("/pending", h.ListPendingJobs)
			jobs.GET("/:id", h.GetJob)
			jobs.POST("/:id/claim", h.ClaimJob)
			jobs.POST("/:id/progress", h.ReportProgress)
			jobs.POST("/:id/complete", h.CompleteJob)
			jobs.POST("/:id/fail", h.FailJob)
		}
	}
}

// StartWorkflow fans out localization jobs for one catalog product
// across the requested target locales. Locales that fail job creation
// are reported in the result; the workflow is never rejected wholesale.
//
// POST /api/v1/localization/workflows
func (h *LocalizationHandler) StartWorkflow(c *gin.Context) {
	var req localizationapp.StartWorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.orchestrator.StartWorkflow(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetProgress returns the aggregated workflow progress snapshot for a
// catalog product.
//
// GET /api/v1/localization/products/:id/progress
func (h *LocalizationHandler) GetProgress(c *gin.Context) {
	catalogProductID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid catalog product ID")
		return
	}

	resp, err := h.progressService.GetProgress(c.Request.Context(), catalogProductID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListPendingJobs returns pending jobs for workers to claim, oldest
// first. The type query parameter narrows to one job type.
//
// GET /api/v1/localization/jobs/pending?type=translation&limit=20
func (h *LocalizationHandler) ListPendingJobs(c *gin.Context) {
	var jobType localization.JobType
	if t := c.Query("type"); t != "" {
		jobType = localization.JobType(t)
		if !jobType.IsValid() {
			h.BadRequest(c, "Unknown job type: "+t)
			return
		}
	}

	limit := defaultPendingJobLimit
	if l := c.Query("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 || parsed > 200 {
			h.BadRequest(c, "limit must be an integer between 1 and 200")
			return
		}
		limit = parsed
	}

	jobs, err := h.workerService.ListPendingJobs(c.Request.Context(), jobType, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, jobs)
}

// GetJob returns a single localization job.
//
// GET /api/v1/localization/jobs/:id
func (h *LocalizationHandler) GetJob(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid job ID")
		return
	}

	job, err := h.workerService.GetJob(c.Request.Context(), jobID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, job)
}

// ClaimJob transitions a pending job to running under the claiming
// worker. A concurrent claim by another worker yields a 409.
//
// POST /api/v1/localization/jobs/:id/claim
func (h *LocalizationHandler) ClaimJob(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid job ID")
		return
	}

	var req localizationapp.ClaimJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	job, err := h.workerService.ClaimJob(c.Request.Context(), jobID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, job)
}

// ReportProgress records worker progress on a running job.
//
// POST /api/v1/localization/jobs/:id/progress
func (h *LocalizationHandler) ReportProgress(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid job ID")
		return
	}

	var req localizationapp.ReportProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	job, err := h.workerService.ReportProgress(c.Request.Context(), jobID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, job)
}

// CompleteJob marks a running job completed by its owning worker.
//
// POST /api/v1/localization/jobs/:id/complete
func (h *LocalizationHandler) CompleteJob(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid job ID")
		return
	}

	var req localizationapp.ClaimJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	job, err := h.workerService.CompleteJob(c.Request.Context(), jobID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, job)
}

// FailJob marks a running job failed with the worker's reason.
//
// POST /api/v1/localization/jobs/:id/fail
func (h *LocalizationHandler) FailJob(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid job ID")
		return
	}

	var req localizationapp.FailJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	job, err := h.workerService.FailJob(c.Request.Context(), jobID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, job)
}
