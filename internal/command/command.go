// Package command classifies raw chat text into structured commands. A
// message that does not start with the '!' sigil is a plain chat message
// and never reaches the assistant.
package command

// Sigil marks a message as a command rather than chat text.
const Sigil = "!"

// Command is the result of parsing a sigil-prefixed message. Exactly one
// of the concrete types below is returned per message, Invalid included.
type Command interface {
	isCommand()
}

// AIQuery asks a bot for a completion. Bot is empty for the default
// (first-registered) bot.
type AIQuery struct {
	Bot   string
	Query string
}

// AICreate registers a new bot persona. Lang is empty when the user did
// not pick a language.
type AICreate struct {
	Name   string
	Lang   string
	Config string
}

// RemoveBot removes the first bot whose name matches exactly.
type RemoveBot struct {
	Name string
}

// ListBots requests the current bot roster.
type ListBots struct{}

// NumUsersOnline requests the current subscriber count.
type NumUsersOnline struct{}

// Help requests the static command reference.
type Help struct{}

// Invalid carries a command that did not match the grammar. It is
// reported back to the sender as a server reply.
type Invalid struct {
	Raw string
}

func (AIQuery) isCommand()        {}
func (AICreate) isCommand()       {}
func (RemoveBot) isCommand()      {}
func (ListBots) isCommand()       {}
func (NumUsersOnline) isCommand() {}
func (Help) isCommand()           {}
func (Invalid) isCommand()        {}
