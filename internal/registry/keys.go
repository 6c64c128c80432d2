package registry

import (
	"chatfeed/internal/bot"
	"chatfeed/internal/hub"
)

// Service keys for dependency lookup. Using constants prevents typos.
var (
	// KeyHub is the broadcast hub shared by the feed and assistant
	// modules.
	KeyHub Key[*hub.Hub] = "core.hub"

	// KeyBots is the bot registry driven by the assistant module.
	KeyBots Key[*bot.Registry] = "core.bots"
)
