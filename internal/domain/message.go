package domain

import "time"

// previewLimit is the longest preview sent with a notification. Messages
// beyond the limit are cut at previewCut runes and suffixed with "...".
const (
	previewLimit = 40
	previewCut   = 37
)

// SystemSender is the reserved sender name for presence announcements and
// server replies. Clients are not allowed to claim it as a display name.
const SystemSender = "System"

// Message is a single feed event as seen by every subscriber. Contents is
// rendered HTML produced by the content pipeline; a Message is never
// mutated after construction.
type Message struct {
	Sender       string    `json:"sender"`
	SentAt       time.Time `json:"sent_at"`
	Contents     string    `json:"contents"`
	ShouldNotify bool      `json:"should_notify"`
}

// NewMessage constructs a Message stamped with the current UTC time.
func NewMessage(sender, contents string, notify bool) Message {
	return Message{
		Sender:       sender,
		SentAt:       time.Now().UTC(),
		Contents:     contents,
		ShouldNotify: notify,
	}
}

// Preview returns a short excerpt of the contents for desktop
// notifications.
func (m Message) Preview() string {
	runes := []rune(m.Contents)
	if len(runes) <= previewLimit {
		return m.Contents
	}
	return string(runes[:previewCut]) + "..."
}
