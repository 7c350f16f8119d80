package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/localization"
	"go.uber.org/zap"
)

// WorkflowSubscriber delivers job events for one catalog product.
// SubscribeWorkflow blocks until the context is cancelled.
type WorkflowSubscriber interface {
	SubscribeWorkflow(ctx context.Context, catalogProductID uuid.UUID, callback func(*localization.JobEvent)) error
}

// sseMessage is one event on the wire
type sseMessage struct {
	Event string
	Data  string
	ID    string
}

// ProgressStreamHandler streams localization job events over SSE.
// Delivery is at most once; clients reconcile by polling the progress
// endpoint after reconnects.
type ProgressStreamHandler struct {
	BaseHandler
	subscriber WorkflowSubscriber
	logger     *zap.Logger
	heartbeat  time.Duration
	bufferSize int
}

// ProgressStreamOption is a functional option for configuring the
// handler
type ProgressStreamOption func(*ProgressStreamHandler)

// WithStreamLogger sets the logger for the handler
func WithStreamLogger(logger *zap.Logger) ProgressStreamOption {
	return func(h *ProgressStreamHandler) {
		h.logger = logger
	}
}

// WithStreamHeartbeat sets the heartbeat interval
func WithStreamHeartbeat(interval time.Duration) ProgressStreamOption {
	return func(h *ProgressStreamHandler) {
		h.heartbeat = interval
	}
}

// NewProgressStreamHandler creates a new ProgressStreamHandler
func NewProgressStreamHandler(subscriber WorkflowSubscriber, opts ...ProgressStreamOption) *ProgressStreamHandler {
	h := &ProgressStreamHandler{
		subscriber: subscriber,
		logger:     zap.NewNop(),
		heartbeat:  30 * time.Second,
		bufferSize: 64,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// RegisterRoutes registers the workflow stream endpoint
func (h *ProgressStreamHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/localization/products/:id/stream", h.Stream)
}

// Stream opens an SSE connection carrying job events for one catalog
// product's localization workflow.
//
// GET /api/v1/localization/products/:id/stream
func (h *ProgressStreamHandler) Stream(c *gin.Context) {
	catalogProductID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid catalog product ID")
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	events := make(chan *localization.JobEvent, h.bufferSize)
	subErr := make(chan error, 1)

	go func() {
		subErr <- h.subscriber.SubscribeWorkflow(ctx, catalogProductID, func(event *localization.JobEvent) {
			select {
			case events <- event:
			default:
				// Slow client, drop. Polling reconciles the gap.
				h.logger.Warn("Dropping workflow event for slow SSE client",
					zap.String("catalog_product_id", catalogProductID.String()),
					zap.String("event_type", event.EventType()))
			}
		})
	}()

	clientID := uuid.New().String()
	h.logger.Info("SSE client connected",
		zap.String("client_id", clientID),
		zap.String("catalog_product_id", catalogProductID.String()))

	writeSSE(c.Writer, sseMessage{
		Event: "connected",
		Data:  fmt.Sprintf(`{"client_id":%q,"timestamp":%d}`, clientID, time.Now().Unix()),
	})
	c.Writer.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("SSE client disconnected", zap.String("client_id", clientID))
			return
		case err := <-subErr:
			if err != nil && ctx.Err() == nil {
				h.logger.Error("Workflow subscription ended", zap.Error(err),
					zap.String("client_id", clientID))
			}
			return
		case <-ticker.C:
			writeSSE(c.Writer, sseMessage{
				Event: "heartbeat",
				Data:  fmt.Sprintf(`{"timestamp":%d}`, time.Now().Unix()),
			})
			c.Writer.Flush()
		case event := <-events:
			data, err := json.Marshal(event)
			if err != nil {
				h.logger.Error("Failed to marshal job event", zap.Error(err))
				continue
			}
			writeSSE(c.Writer, sseMessage{
				Event: event.EventType(),
				Data:  string(data),
				ID:    event.EventID().String(),
			})
			c.Writer.Flush()
		}
	}
}

// writeSSE writes one event in SSE wire format
func writeSSE(w io.Writer, msg sseMessage) {
	if msg.Event != "" {
		fmt.Fprintf(w, "event: %s\n", msg.Event)
	}
	if msg.ID != "" {
		fmt.Fprintf(w, "id: %s\n", msg.ID)
	}
	fmt.Fprintf(w, "data: %s\n\n", msg.Data)
}
