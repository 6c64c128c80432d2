package events

// CommandRequest is a raw command posted by a user, published by the feed
// handler for the assistant to parse and execute.
type CommandRequest struct {
	Sender string `json:"sender"`
	Raw    string `json:"raw"`
}
