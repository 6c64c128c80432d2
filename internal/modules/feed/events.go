package feed

import "chatfeed/internal/domain"

// StreamEvent is the transport-visible form of a Message, written to
// each subscriber's websocket as JSON.
type StreamEvent struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
	Preview string `json:"preview"`
	Notify  bool   `json:"notify"`
}

// NewStreamEvent maps a delivered Message into its event form.
func NewStreamEvent(m domain.Message) StreamEvent {
	return StreamEvent{
		Sender:  m.Sender,
		Message: m.Contents,
		Preview: m.Preview(),
		Notify:  m.ShouldNotify,
	}
}
