package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/afero"

	"chatfeed/internal/ai"
	"chatfeed/internal/app"
	"chatfeed/internal/bot"
	"chatfeed/internal/config"
	"chatfeed/internal/hub"
	"chatfeed/internal/logging"
	"chatfeed/internal/module"
	"chatfeed/internal/pubsub"
	"chatfeed/internal/registry"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E    *echo.Echo
	Cfg  *config.Config
	Hub  *hub.Hub
	Bots *bot.Registry

	bridge  *pubsub.WatermillBridge
	modules []module.Module

	bootCancel context.CancelFunc
}

// New creates a new Server instance, wiring up the message bus, the
// broadcast hub, the bot registry and all application modules.
func New() (*Server, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	logging.New(cfg.LogFormat) // Initialize the structured logger

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Configure and use session middleware
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
	}
	e.Use(session.Middleware(store))

	bridge := pubsub.NewWatermillBridge()
	feedHub := hub.NewHub()

	botStore := bot.NewStore(afero.NewOsFs(), cfg.BotStorePath)
	completer := ai.NewClient(cfg.GroqAPIKey, cfg.AIBaseURL, cfg.AIModel)
	bots := bot.NewRegistry(botStore, completer)

	reg := registry.New(cfg)
	registry.Set(reg, registry.KeyHub, feedHub)
	registry.Set(reg, registry.KeyBots, bots)

	modules := app.NewModules(app.Dependencies{
		Publisher:  bridge,
		Subscriber: bridge,
	})

	for _, m := range modules {
		if err := m.Register(reg); err != nil {
			return nil, fmt.Errorf("registering module %q: %w", m.Name(), err)
		}
	}

	bootCtx, bootCancel := context.WithCancel(context.Background())
	root := e.Group("")
	for _, m := range modules {
		if err := m.Boot(bootCtx, root, reg); err != nil {
			bootCancel()
			return nil, fmt.Errorf("booting module %q: %w", m.Name(), err)
		}
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	slog.Info("Server wired", "modules", len(modules))

	return &Server{
		E:          e,
		Cfg:        cfg,
		Hub:        feedHub,
		Bots:       bots,
		bridge:     bridge,
		modules:    modules,
		bootCancel: bootCancel,
	}, nil
}
