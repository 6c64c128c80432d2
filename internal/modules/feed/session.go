package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"chatfeed/internal/content"
	"chatfeed/internal/domain"
	"chatfeed/internal/hub"
	"chatfeed/internal/pubsub"
)

// Session binds one viewer to the hub for the lifetime of a connection
// and surrounds it with presence announcements. Close runs on every exit
// path and announces the departure exactly once; this is the component's
// core correctness property.
type Session struct {
	name      string
	hub       *hub.Hub
	sub       *hub.Subscriber
	publisher pubsub.Publisher
	logger    *slog.Logger
	closeOnce sync.Once
}

// OpenSession subscribes the viewer to the hub and announces the join
// with the subscriber count including the new arrival.
func OpenSession(name string, h *hub.Hub, publisher pubsub.Publisher) *Session {
	sub := h.Subscribe()
	s := &Session{
		name:      name,
		hub:       h,
		sub:       sub,
		publisher: publisher,
		logger:    slog.Default().With("component", "session", "sender", name),
	}
	s.announce(fmt.Sprintf("%s joined. Users currently online: %d", name, h.Count()), true)
	return s
}

// Next returns the next message for this viewer. Lag is recovered from
// transparently: dropped messages are logged and consumption resumes with
// the next delivered message.
func (s *Session) Next(ctx context.Context) (domain.Message, error) {
	for {
		m, err := s.sub.Next(ctx)
		if err == nil {
			return m, nil
		}
		var lag *hub.LagError
		if errors.As(err, &lag) {
			s.logger.Warn("Subscriber lagged, resuming", "missed", lag.Missed)
			continue
		}
		return domain.Message{}, err
	}
}

// Close releases the subscriber and announces the departure with the
// post-removal count. It is safe to call from deferred cleanup on any
// exit path, including cancellation, and runs at most once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.hub.Unsubscribe(s.sub)
		s.announce(fmt.Sprintf("%s left. Users currently online: %d", s.name, s.hub.Count()), false)
	})
}

// announce publishes a system message. A background context is used on
// purpose: the departure announcement must go out even when the
// connection's own context is already canceled.
func (s *Session) announce(text string, notify bool) {
	m := domain.NewMessage(domain.SystemSender, content.Render(text), notify)
	if err := PublishMessage(context.Background(), s.publisher, m); err != nil {
		s.logger.Error("Failed to publish presence announcement", "error", err)
	}
}
