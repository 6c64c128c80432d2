package app

import (
	"chatfeed/internal/module"
	"chatfeed/internal/modules/assistant"
	"chatfeed/internal/modules/feed"
	"chatfeed/internal/pubsub"
)

// Dependencies holds the core services that are required by the application's modules.
// This struct is passed from the main application entrypoint to wire up the modules.
type Dependencies struct {
	Publisher  pubsub.Publisher
	Subscriber pubsub.Subscriber
}

// NewModules creates and returns the list of all active modules for the application.
// This is the single source of truth for which features are enabled.
func NewModules(deps Dependencies) []module.Module {

	return []module.Module{
		// Add new application modules here.
		feed.New(feed.Dependencies{
			Publisher:  deps.Publisher,
			Subscriber: deps.Subscriber,
		}),
		assistant.New(assistant.Dependencies{
			Publisher:  deps.Publisher,
			Subscriber: deps.Subscriber,
		}),
	}
}
