package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/storefront/backend/internal/domain/localization"
	"go.uber.org/zap"
)

const (
	workflowChannelPrefix = "localization:workflow:"
	workerChannelPrefix   = "localization:worker:"
)

// RedisProgressNotifier implements ProgressNotifier using Redis
// Pub/Sub. Delivery is at-most-once: a message published while a
// subscriber is disconnected is gone. Clients reconcile by re-polling
// workflow progress.
type RedisProgressNotifier struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisProgressNotifier creates a new RedisProgressNotifier
func NewRedisProgressNotifier(client *redis.Client, logger *zap.Logger) *RedisProgressNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisProgressNotifier{client: client, logger: logger}
}

// NotifyWorkflow publishes the event to all subscribers watching the
// catalog product
func (n *RedisProgressNotifier) NotifyWorkflow(ctx context.Context, catalogProductID uuid.UUID, event *localization.JobEvent) error {
	return n.publish(ctx, workflowChannelPrefix+catalogProductID.String(), event)
}

// NotifyWorker publishes the event to the channel scoped to one worker
func (n *RedisProgressNotifier) NotifyWorker(ctx context.Context, workerID string, event *localization.JobEvent) error {
	return n.publish(ctx, workerChannelPrefix+workerID, event)
}

func (n *RedisProgressNotifier) publish(ctx context.Context, channel string, event *localization.JobEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal job event: %w", err)
	}

	if err := n.client.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish job event: %w", err)
	}

	n.logger.Debug("Published job event",
		zap.String("channel", channel),
		zap.String("event_type", event.EventType()),
		zap.String("job_id", event.JobID.String()),
	)
	return nil
}

// SubscribeWorkflow listens for job events on the workflow channel for
// a catalog product, invoking the callback for each event. Blocks until
// the context is cancelled; run it in a goroutine.
func (n *RedisProgressNotifier) SubscribeWorkflow(ctx context.Context, catalogProductID uuid.UUID, callback func(*localization.JobEvent)) error {
	return n.subscribe(ctx, workflowChannelPrefix+catalogProductID.String(), callback)
}

// SubscribeWorker listens for job events on a worker's channel
func (n *RedisProgressNotifier) SubscribeWorker(ctx context.Context, workerID string, callback func(*localization.JobEvent)) error {
	return n.subscribe(ctx, workerChannelPrefix+workerID, callback)
}

func (n *RedisProgressNotifier) subscribe(ctx context.Context, channel string, callback func(*localization.JobEvent)) error {
	pubsub := n.client.Subscribe(ctx, channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel: %w", err)
	}

	n.logger.Debug("Subscribed to job event channel", zap.String("channel", channel))

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				n.logger.Warn("Job event channel closed", zap.String("channel", channel))
				return nil
			}

			var event localization.JobEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				n.logger.Error("Failed to unmarshal job event",
					zap.String("channel", channel),
					zap.Error(err))
				continue
			}

			n.deliver(callback, &event)
		}
	}
}

// deliver invokes the callback with panic containment so one bad
// subscriber cannot kill the subscription loop
func (n *RedisProgressNotifier) deliver(callback func(*localization.JobEvent), event *localization.JobEvent) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("Panic in job event callback", zap.Any("panic", r))
		}
	}()
	callback(event)
}

var _ localization.ProgressNotifier = (*RedisProgressNotifier)(nil)
