package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"chatfeed/internal/bot"
	"chatfeed/internal/command"
	"chatfeed/internal/content"
	"chatfeed/internal/domain"
	"chatfeed/internal/hub"
	"chatfeed/internal/modules/assistant/events"
	"chatfeed/internal/modules/assistant/topics"
	"chatfeed/internal/modules/feed"
	"chatfeed/internal/pubsub"
)

const helpText = `Available commands:
- ` + "`!ai <text>`" + ` asks the default bot
- ` + "`!ask <bot> <text>`" + ` asks a specific bot
- ` + "`!newbot <name> [lang=<code>] <instructions>`" + ` creates a bot
- ` + "`!removebot <name>`" + ` removes a bot
- ` + "`!listbots`" + ` lists all bots
- ` + "`!online`" + ` shows how many users are connected
- ` + "`!help`" + ` shows this message`

// Executor consumes command requests from the bus, parses them and
// carries them out. Anything that touches the completion API runs in its
// own goroutine so one slow bot never delays other commands or sessions.
type Executor struct {
	bots       *bot.Registry
	hub        *hub.Hub
	publisher  pubsub.Publisher
	subscriber pubsub.Subscriber
	logger     *slog.Logger
}

// NewExecutor creates the command executor.
func NewExecutor(bots *bot.Registry, h *hub.Hub, publisher pubsub.Publisher, subscriber pubsub.Subscriber) *Executor {
	return &Executor{
		bots:       bots,
		hub:        h,
		publisher:  publisher,
		subscriber: subscriber,
		logger:     slog.Default().With("component", "assistant"),
	}
}

// Start begins consuming command requests. It returns once the
// subscription is active.
func (ex *Executor) Start(ctx context.Context) error {
	ex.logger.Info("Starting command executor", "topic", topics.CommandNew)
	return ex.subscriber.Subscribe(ctx, topics.CommandNew, ex.handleCommand)
}

func (ex *Executor) handleCommand(ctx context.Context, msg pubsub.Message) error {
	var req events.CommandRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		ex.logger.Error("Failed to unmarshal command request", "error", err)
		return err
	}

	cmd, ok := command.Parse(req.Raw)
	if !ok {
		// Plain chat text should never land on this topic.
		ex.logger.Warn("Ignoring non-command request", "raw", req.Raw)
		return nil
	}

	// Each command runs independently; the subscription loop must stay
	// free for the next request while a completion is in flight.
	go ex.execute(ctx, cmd, req.Sender)
	return nil
}

func (ex *Executor) execute(ctx context.Context, cmd command.Command, sender string) {
	switch c := cmd.(type) {
	case command.AIQuery:
		ex.runQuery(ctx, c, sender)

	case command.AICreate:
		b := bot.New(c.Name, sender, c.Config, c.Lang)
		ex.bots.Add(b)
		ex.reply(fmt.Sprintf("Bot %q created. Ask it something with `!ask %s <text>`.", b.Name, b.Name))

	case command.RemoveBot:
		if removed, ok := ex.bots.RemoveByName(c.Name); ok {
			ex.reply(fmt.Sprintf("Bot %q removed.", removed.Name))
		} else {
			ex.reply(fmt.Sprintf("Bot %q does not exist.", c.Name))
		}

	case command.ListBots:
		ex.reply(ex.roster())

	case command.NumUsersOnline:
		ex.reply(fmt.Sprintf("Users currently online: %d", ex.hub.Count()))

	case command.Help:
		ex.reply(helpText)

	case command.Invalid:
		ex.reply(fmt.Sprintf("Invalid command: %s. Send `!help` for the command list.", c.Raw))
	}
}

// runQuery drives the bot registry and the completion API. Lookup
// failures come back to the sender as a server reply; API failures are
// logged and the sender simply sees no bot response.
func (ex *Executor) runQuery(ctx context.Context, q command.AIQuery, sender string) {
	resp, err := ex.bots.GetResponse(ctx, q.Query, sender, q.Bot)
	if err != nil {
		var missing *bot.MissingBotError
		switch {
		case errors.Is(err, bot.ErrNoBots):
			ex.reply("There are no bots created currently. Make one with `!newbot`.")
		case errors.As(err, &missing):
			ex.reply(fmt.Sprintf("Bot %q does not exist.", missing.Name))
		default:
			ex.logger.Error("Failed to get AI response", "error", err, "sender", sender)
		}
		return
	}

	ex.publish(resp.BotName, resp.Text)
}

// reply publishes a server message attributed to the system sender.
func (ex *Executor) reply(text string) {
	ex.publish(domain.SystemSender, text)
}

func (ex *Executor) publish(sender, text string) {
	m := domain.NewMessage(sender, content.Render(text), false)
	if err := feed.PublishMessage(context.Background(), ex.publisher, m); err != nil {
		ex.logger.Error("Failed to publish reply", "error", err, "sender", sender)
	}
}

func (ex *Executor) roster() string {
	bots := ex.bots.List()
	if len(bots) == 0 {
		return "There are no bots created currently. Make one with `!newbot`."
	}
	var sb strings.Builder
	sb.WriteString("Bots currently registered:\n")
	for _, b := range bots {
		fmt.Fprintf(&sb, "- %s (created by %s, speaks %s)\n", b.Name, b.CreatedBy, b.Language)
	}
	return strings.TrimRight(sb.String(), "\n")
}
