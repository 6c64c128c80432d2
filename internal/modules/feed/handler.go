package feed

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"chatfeed/internal/command"
	"chatfeed/internal/content"
	"chatfeed/internal/domain"
	"chatfeed/internal/hub"
	asevents "chatfeed/internal/modules/assistant/events"
	astopics "chatfeed/internal/modules/assistant/topics"
	"chatfeed/internal/pubsub"
)

// Cookie session holding the viewer's display name. Identity is a
// precondition for posting and subscribing; there is no authentication
// beyond it.
const (
	identityCookie = "chatfeed_session"
	senderNameKey  = "sender-name"
)

// Handler holds dependencies for the feed module's HTTP handlers.
type Handler struct {
	publisher pubsub.Publisher
	hub       *hub.Hub
}

// NewHandler creates a new feed handler with its dependencies.
func NewHandler(publisher pubsub.Publisher, h *hub.Hub) *Handler {
	return &Handler{publisher: publisher, hub: h}
}

// SenderName returns the display name stored in the cookie session, or
// "" when the viewer has not set one.
func SenderName(c echo.Context) string {
	sess, err := session.Get(identityCookie, c)
	if err != nil {
		return ""
	}
	name, _ := sess.Values[senderNameKey].(string)
	return name
}

// SetNamePost stores the viewer's display name in the cookie session.
// The system sender name is reserved and rejected regardless of case.
func (h *Handler) SetNamePost(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "name is required",
		})
	}
	if strings.EqualFold(name, domain.SystemSender) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "that name is reserved",
		})
	}

	sess, err := session.Get(identityCookie, c)
	if err != nil {
		slog.Error("Failed to open identity session", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "could not open session",
		})
	}
	sess.Values[senderNameKey] = name
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		slog.Error("Failed to save identity session", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "could not save session",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"name": name})
}

// SendPost accepts a raw message from the identified viewer. The
// viewer's own message is published immediately and unconditionally;
// when it starts with the command sigil, a command request is published
// for the assistant as well, and its outcome arrives later as a separate
// feed message.
func (h *Handler) SendPost(c echo.Context) error {
	name := SenderName(c)
	if name == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "set a display name first",
		})
	}

	raw := c.FormValue("contents")
	if strings.TrimSpace(raw) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "contents is required",
		})
	}

	ctx := c.Request().Context()
	m := domain.NewMessage(name, content.Render(raw), true)
	if err := PublishMessage(ctx, h.publisher, m); err != nil {
		slog.Error("Failed to publish message", "error", err, "sender", name)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "could not publish message",
		})
	}

	if command.IsCommand(raw) {
		payload, err := json.Marshal(asevents.CommandRequest{Sender: name, Raw: raw})
		if err == nil {
			err = h.publisher.Publish(ctx, pubsub.Message{
				Topic:   astopics.CommandNew,
				Sender:  name,
				Payload: payload,
			})
		}
		if err != nil {
			// The user's own message already went out; the command is
			// lost but the failure must not fail the post.
			slog.Error("Failed to publish command request", "error", err, "sender", name)
		}
	}

	return c.JSON(http.StatusAccepted, NewStreamEvent(m))
}

// OnlineGet reports the current subscriber count.
func (h *Handler) OnlineGet(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]int{"count": h.hub.Count()})
}
