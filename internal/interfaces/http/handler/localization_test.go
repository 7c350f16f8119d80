package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	localizationapp "github.com/storefront/backend/internal/application/localization"
	"github.com/storefront/backend/internal/domain/localization"
)

func testContext(t *testing.T, method, target string, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
		c.Request = httptest.NewRequest(method, target, reader)
		c.Request.Header.Set("Content-Type", "application/json")
	} else {
		c.Request = httptest.NewRequest(method, target, nil)
	}
	return c, w
}

func TestLocalizationHandlerRejectsInvalidJobID(t *testing.T) {
	h := NewLocalizationHandler(nil, nil, nil)

	endpoints := []func(*gin.Context){
		h.GetJob,
		h.ClaimJob,
		h.ReportProgress,
		h.CompleteJob,
		h.FailJob,
	}

	for _, endpoint := range endpoints {
		c, w := testContext(t, "POST", "/", `{"worker_id":"w-1"}`)
		c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

		endpoint(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestLocalizationHandlerRejectsInvalidProgressTarget(t *testing.T) {
	h := NewLocalizationHandler(nil, nil, nil)

	c, w := testContext(t, "GET", "/", "")
	c.Params = gin.Params{{Key: "id", Value: "garbage"}}

	h.GetProgress(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLocalizationHandlerRejectsMalformedWorkflowBody(t *testing.T) {
	h := NewLocalizationHandler(nil, nil, nil)

	c, w := testContext(t, "POST", "/", `{"target_locales": []}`)

	h.StartWorkflow(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListPendingJobsValidation(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "unknown job type", query: "?type=transliteration"},
		{name: "non numeric limit", query: "?limit=many"},
		{name: "limit too small", query: "?limit=0"},
		{name: "limit too large", query: "?limit=500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewLocalizationHandler(nil, nil, nil)
			c, w := testContext(t, "GET", "/jobs/pending"+tt.query, "")

			h.ListPendingJobs(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

// pendingOnlyJobRepository serves FindPending and nothing else. The
// embedded nil interface panics if a test reaches any other method.
type pendingOnlyJobRepository struct {
	localization.JobRepository
	gotType  localization.JobType
	gotLimit int
}

func (r *pendingOnlyJobRepository) FindPending(_ context.Context, jobType localization.JobType, limit int) ([]*localization.LocalizationJob, error) {
	r.gotType = jobType
	r.gotLimit = limit
	return nil, nil
}

func TestListPendingJobsWithoutTypeFilter(t *testing.T) {
	repo := &pendingOnlyJobRepository{}
	worker := localizationapp.NewWorkerService(repo, nil, zap.NewNop())
	h := NewLocalizationHandler(nil, nil, worker)

	c, w := testContext(t, "GET", "/jobs/pending", "")

	h.ListPendingJobs(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, localization.JobType(""), repo.gotType)
	assert.Equal(t, 50, repo.gotLimit)
}

func TestClaimJobRequiresWorkerID(t *testing.T) {
	h := NewLocalizationHandler(nil, nil, nil)

	c, w := testContext(t, "POST", "/", `{}`)
	c.Params = gin.Params{{Key: "id", Value: "550e8400-e29b-41d4-a716-446655440000"}}

	h.ClaimJob(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
