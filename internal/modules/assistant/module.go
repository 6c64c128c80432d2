package assistant

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"

	"chatfeed/internal/module"
	"chatfeed/internal/pubsub"
	"chatfeed/internal/registry"
)

// AssistantModule implements the module.Module interface for the AI
// command subsystem. It registers no routes of its own; commands arrive
// over the bus from the feed module.
type AssistantModule struct {
	module.BaseModule
	publisher  pubsub.Publisher
	subscriber pubsub.Subscriber
}

// Dependencies holds all the services that the AssistantModule requires
// to operate.
type Dependencies struct {
	Publisher  pubsub.Publisher
	Subscriber pubsub.Subscriber
}

// New creates a new instance of the AssistantModule, injecting its
// dependencies.
func New(deps Dependencies) *AssistantModule {
	return &AssistantModule{
		publisher:  deps.Publisher,
		subscriber: deps.Subscriber,
	}
}

// Name returns the module name.
func (m *AssistantModule) Name() string {
	return "assistant"
}

// Boot wires the executor to the shared hub and bot registry and starts
// consuming command requests.
func (m *AssistantModule) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	slog.Info("Booting AssistantModule")

	bots := registry.MustGet(reg, registry.KeyBots)
	h := registry.MustGet(reg, registry.KeyHub)

	executor := NewExecutor(bots, h, m.publisher, m.subscriber)
	return executor.Start(ctx)
}

// Shutdown is called on application termination.
func (m *AssistantModule) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down AssistantModule")
	return nil
}
