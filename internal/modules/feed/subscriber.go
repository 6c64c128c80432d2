package feed

import (
	"context"
	"encoding/json"
	"log/slog"

	"chatfeed/internal/domain"
	"chatfeed/internal/hub"
	"chatfeed/internal/modules/feed/topics"
	"chatfeed/internal/pubsub"
)

// FeedSubscriber listens for finished messages on the bus and forwards
// them into the hub. It is the hub's only writer, so hub delivery order
// is exactly bus publish order.
type FeedSubscriber struct {
	subscriber pubsub.Subscriber
	hub        *hub.Hub
	logger     *slog.Logger
}

// NewFeedSubscriber creates the bus-to-hub forwarder.
func NewFeedSubscriber(sub pubsub.Subscriber, h *hub.Hub) *FeedSubscriber {
	return &FeedSubscriber{
		subscriber: sub,
		hub:        h,
		logger:     slog.Default().With("component", "feed_subscriber"),
	}
}

// Start begins forwarding. It returns once the subscription is active;
// forwarding continues in the background until ctx is canceled.
func (fs *FeedSubscriber) Start(ctx context.Context) error {
	fs.logger.Info("Starting feed forwarder", "topic", topics.MessageNew)
	return fs.subscriber.Subscribe(ctx, topics.MessageNew, fs.handleMessage)
}

func (fs *FeedSubscriber) handleMessage(ctx context.Context, msg pubsub.Message) error {
	var m domain.Message
	if err := json.Unmarshal(msg.Payload, &m); err != nil {
		fs.logger.Error("Failed to unmarshal feed message", "error", err, "payload", string(msg.Payload))
		return err
	}
	fs.hub.Publish(m)
	return nil
}
