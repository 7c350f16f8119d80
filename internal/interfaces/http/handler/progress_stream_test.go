package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/localization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSubscriber delivers a fixed set of events then blocks until the
// context ends
type fakeSubscriber struct {
	events []*localization.JobEvent
	gotID  uuid.UUID
}

func (f *fakeSubscriber) SubscribeWorkflow(ctx context.Context, catalogProductID uuid.UUID, callback func(*localization.JobEvent)) error {
	f.gotID = catalogProductID
	for _, event := range f.events {
		callback(event)
	}
	<-ctx.Done()
	return nil
}

func streamEvent(t *testing.T) *localization.JobEvent {
	t.Helper()
	job, err := localization.NewLocalizationJob(
		"translation fr_CA",
		localization.JobTypeTranslation,
		uuid.New(), uuid.New(), uuid.New(),
		"en_US", "fr_CA", "tester",
		localization.JobConfig{},
	)
	require.NoError(t, err)
	return localization.NewJobCreatedEvent(job)
}

func TestProgressStreamDeliversEvents(t *testing.T) {
	sub := &fakeSubscriber{events: []*localization.JobEvent{streamEvent(t)}}
	h := NewProgressStreamHandler(sub, WithStreamHeartbeat(time.Hour))

	catalogProductID := uuid.New()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/stream", nil).WithContext(ctx)
	c.Params = gin.Params{{Key: "id", Value: catalogProductID.String()}}

	h.Stream(c)

	assert.Equal(t, catalogProductID, sub.gotID)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Contains(t, body, "event: connected")
	assert.Contains(t, body, "event: "+localization.EventTypeJobCreated)
	assert.Contains(t, body, `"target_locale":"fr_CA"`)
}

func TestProgressStreamRejectsInvalidID(t *testing.T) {
	h := NewProgressStreamHandler(&fakeSubscriber{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/stream", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.Stream(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
