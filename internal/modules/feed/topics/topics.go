// Package topics declares the bus topics owned by the feed module.
package topics

// MessageNew carries a finished domain.Message as JSON. Everything that
// ends up on subscribers' screens flows through this topic: user posts,
// presence announcements, bot replies and server replies.
const MessageNew = "feed.message.new"
