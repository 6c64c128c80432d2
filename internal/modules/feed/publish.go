package feed

import (
	"context"
	"encoding/json"
	"fmt"

	"chatfeed/internal/domain"
	"chatfeed/internal/modules/feed/topics"
	"chatfeed/internal/pubsub"
)

// PublishMessage puts a finished message onto the feed topic. The feed
// module's forwarder is responsible for fanning it out to subscribers.
func PublishMessage(ctx context.Context, pub pubsub.Publisher, m domain.Message) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding feed message: %w", err)
	}
	return pub.Publish(ctx, pubsub.Message{
		Topic:   topics.MessageNew,
		Sender:  m.Sender,
		Payload: payload,
	})
}
