package logging

import (
	"log/slog"
	"os"
)

// New initializes the structured logger and sets it as the default.
// LOG_FORMAT selects the output format: "text" for development (the
// default) or "json" for production.
func New(format string) {
	if format == "" {
		format = os.Getenv("LOG_FORMAT")
	}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: true,
		})
	}

	slog.SetDefault(slog.New(handler))
}
