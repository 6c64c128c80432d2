package feed

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/labstack/echo/v4"
)

// StreamGet upgrades the connection to a websocket and streams every
// published message to the viewer as a StreamEvent. The session is
// closed on every exit path, which is what guarantees the departure
// announcement.
func (h *Handler) StreamGet(c echo.Context) error {
	name := SenderName(c)
	if name == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "set a display name first",
		})
	}

	conn, err := websocket.Accept(c.Response(), c.Request(), &websocket.AcceptOptions{
		// The stream carries no privileged state beyond what any viewer
		// already sees, so cross-origin subscribers are allowed.
		InsecureSkipVerify: true,
	})
	if err != nil {
		slog.Error("Failed to upgrade websocket connection", "error", err)
		return c.String(http.StatusInternalServerError, "failed to upgrade to websocket")
	}
	defer conn.Close(websocket.StatusInternalError, "stream aborted")

	sess := OpenSession(name, h.hub, h.publisher)
	defer sess.Close()

	// No inbound frames are expected; CloseRead hands back a context
	// that is canceled as soon as the client goes away.
	ctx := conn.CloseRead(c.Request().Context())

	for {
		m, err := sess.Next(ctx)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				slog.Debug("Stream ended", "sender", name, "reason", err)
			}
			break
		}
		payload, err := json.Marshal(NewStreamEvent(m))
		if err != nil {
			slog.Error("Failed to encode stream event", "error", err)
			continue
		}
		if err := conn.Write(ctx, websocket.MessageText, payload); err != nil {
			slog.Debug("Stream write failed", "sender", name, "error", err)
			break
		}
	}

	conn.Close(websocket.StatusNormalClosure, "")
	return nil
}
