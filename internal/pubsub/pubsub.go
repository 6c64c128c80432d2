// Package pubsub is the internal message bus. Handlers, the session
// lifecycle and the assistant publish onto topics; the feed module's
// forwarder is the bus's only bridge into the fan-out hub.
package pubsub

import "context"

// Message is the structure passed between components on the bus.
type Message struct {
	// Topic identifies the channel the message belongs to (e.g.
	// "feed.message.new").
	Topic string
	// Sender identifies the display name that initiated the message,
	// when there is one.
	Sender string
	// Payload contains the raw message data (JSON).
	Payload []byte
}

// Handler processes one received message. A non-nil error nacks the
// message.
type Handler func(ctx context.Context, msg Message) error

// Publisher is the contract for sending messages onto the bus.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Subscriber is the contract for receiving messages from the bus.
// Subscribe returns once the subscription is active; processing runs in
// the background until ctx is canceled.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}
