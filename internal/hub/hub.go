// Package hub is the single multicast point for feed messages. Every
// publish is delivered to every live subscriber in publish order; a slow
// subscriber loses its oldest unread messages instead of ever blocking
// the publisher or being torn down.
package hub

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"chatfeed/internal/domain"
)

// DefaultCapacity is the per-subscriber queue depth before the oldest
// unread messages start being dropped.
const DefaultCapacity = 10

// ErrClosed is returned by Next once a subscriber has been unsubscribed.
var ErrClosed = errors.New("hub: subscriber closed")

// LagError reports that the subscriber fell behind and Missed messages
// were dropped for it. The subscriber recovers by simply calling Next
// again; it is never torn down for lagging.
type LagError struct {
	Missed int64
}

func (e *LagError) Error() string {
	return fmt.Sprintf("hub: subscriber lagged, %d messages dropped", e.Missed)
}

// Subscriber is a per-connection receive handle. It is owned exclusively
// by the session that created it and must not be shared.
type Subscriber struct {
	id     string
	ch     chan domain.Message
	missed atomic.Int64
}

// ID returns the subscriber's opaque identifier, useful for logging.
func (s *Subscriber) ID() string { return s.id }

// Next blocks until a message is available, the context is canceled, or
// the subscriber is closed. When messages were dropped since the last
// call it returns a *LagError exactly once before resuming delivery.
func (s *Subscriber) Next(ctx context.Context) (domain.Message, error) {
	if n := s.missed.Swap(0); n > 0 {
		return domain.Message{}, &LagError{Missed: n}
	}
	select {
	case <-ctx.Done():
		return domain.Message{}, ctx.Err()
	case m, ok := <-s.ch:
		if !ok {
			return domain.Message{}, ErrClosed
		}
		return m, nil
	}
}

// offer enqueues a message, discarding the oldest unread one when the
// queue is full. Only the hub calls this, with the hub lock held, so a
// concurrent close is impossible.
func (s *Subscriber) offer(m domain.Message) {
	for {
		select {
		case s.ch <- m:
			return
		default:
		}
		select {
		case <-s.ch:
			s.missed.Add(1)
		default:
		}
	}
}

// Hub maintains the set of active subscribers and broadcasts messages to
// them. Subscribe, Unsubscribe, Publish and Count are all safe to call
// concurrently from any goroutine.
type Hub struct {
	mu          sync.Mutex
	subscribers map[*Subscriber]struct{}
	capacity    int
	logger      *slog.Logger
}

// Option configures a Hub.
type Option func(*Hub)

// WithCapacity overrides the per-subscriber queue depth.
func WithCapacity(n int) Option {
	return func(h *Hub) {
		if n > 0 {
			h.capacity = n
		}
	}
}

// NewHub creates an empty hub.
func NewHub(opts ...Option) *Hub {
	h := &Hub{
		subscribers: make(map[*Subscriber]struct{}),
		capacity:    DefaultCapacity,
		logger:      slog.Default().With("service", "hub"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Subscribe registers a new subscriber and returns its receive handle.
func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{
		id: uuid.NewString(),
		ch: make(chan domain.Message, h.capacity),
	}
	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	total := len(h.subscribers)
	h.mu.Unlock()

	h.logger.Info("Subscriber registered", "subscriber_id", sub.id, "total_subscribers", total)
	return sub
}

// Unsubscribe removes a subscriber and closes its queue. Calling it more
// than once is harmless.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	_, ok := h.subscribers[sub]
	if ok {
		delete(h.subscribers, sub)
		close(sub.ch)
	}
	total := len(h.subscribers)
	h.mu.Unlock()

	if ok {
		h.logger.Info("Subscriber unregistered", "subscriber_id", sub.id, "total_subscribers", total)
	}
}

// Count returns the number of active subscribers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Publish delivers the message to every current subscriber. Publishes
// are serialized, so all subscribers observe the same total order. With
// zero subscribers the message is dropped with a log entry; that is not
// an error.
func (h *Hub) Publish(m domain.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.subscribers) == 0 {
		h.logger.Warn("No subscribers, dropping message", "sender", m.Sender)
		return
	}

	for sub := range h.subscribers {
		sub.offer(m)
	}
}
