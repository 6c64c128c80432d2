package feed

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"

	"chatfeed/internal/middleware"
	"chatfeed/internal/module"
	"chatfeed/internal/pubsub"
	"chatfeed/internal/registry"
)

// FeedModule implements the module.Module interface for the shared live
// feed: the websocket stream, the post endpoint and the bus-to-hub
// forwarder.
type FeedModule struct {
	module.BaseModule
	publisher  pubsub.Publisher
	subscriber pubsub.Subscriber
}

// Dependencies holds all the services that the FeedModule requires to
// operate.
type Dependencies struct {
	Publisher  pubsub.Publisher
	Subscriber pubsub.Subscriber
}

// New creates a new instance of the FeedModule, injecting its
// dependencies.
func New(deps Dependencies) *FeedModule {
	return &FeedModule{
		publisher:  deps.Publisher,
		subscriber: deps.Subscriber,
	}
}

// Name returns the module name.
func (m *FeedModule) Name() string {
	return "feed"
}

// Boot starts the forwarder and registers the feed routes.
func (m *FeedModule) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	slog.Info("Booting FeedModule")

	h := registry.MustGet(reg, registry.KeyHub)

	forwarder := NewFeedSubscriber(m.subscriber, h)
	if err := forwarder.Start(ctx); err != nil {
		return err
	}

	handler := NewHandler(m.publisher, h)
	rateLimiter := middleware.RateLimiter()
	g.POST("/setname", handler.SetNamePost, rateLimiter)
	g.POST("/send", handler.SendPost, rateLimiter)
	g.GET("/stream", handler.StreamGet)
	g.GET("/online", handler.OnlineGet)

	return nil
}

// Shutdown is called on application termination.
func (m *FeedModule) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down FeedModule")
	return nil
}
