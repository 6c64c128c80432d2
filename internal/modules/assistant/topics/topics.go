// Package topics declares the bus topics owned by the assistant module.
package topics

// CommandNew carries an events.CommandRequest as JSON: a sigil-prefixed
// message a user posted, not yet parsed.
const CommandNew = "assistant.command.new"
