package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// DefaultBotName is the single fallback persona created when no persisted
// roster can be loaded at startup.
const DefaultBotName = "Greg"

// Completer issues one chat-completion request for an ordered list of
// role-tagged turns and returns the assistant's text.
type Completer interface {
	Complete(ctx context.Context, turns []Turn) (string, error)
}

// Response is a successful completion attributed to the bot that
// produced it.
type Response struct {
	BotName string
	Text    string
}

// Registry is the concurrent owner of all bots. A single mutex
// serializes every read and mutation; it is never held across the
// completion call.
type Registry struct {
	mu        sync.Mutex
	bots      []Bot
	store     *Store
	completer Completer
	logger    *slog.Logger
}

// NewRegistry loads the persisted roster from store. When the roster is
// missing or unreadable the registry starts with the single default bot;
// the load failure is logged but not fatal.
func NewRegistry(store *Store, completer Completer) *Registry {
	logger := slog.Default().With("service", "bots")

	bots, err := store.Load()
	if err != nil {
		logger.Warn("Failed to load persisted bots, using default", "error", err)
		bots = []Bot{New(DefaultBotName, "system", "", "")}
	} else {
		logger.Info("Loaded persisted bots", "count", len(bots))
	}

	return &Registry{
		bots:      bots,
		store:     store,
		completer: completer,
		logger:    logger,
	}
}

// GetResponse resolves the target bot (the first-registered one when
// botName is empty, case-insensitive lookup otherwise), records the
// user's turn, asks the completion API with the synthesized preamble plus
// history, and records and persists the reply. On API failure the user
// turn already appended is retained and the error is returned without
// retry.
func (r *Registry) GetResponse(ctx context.Context, query, user, botName string) (Response, error) {
	r.mu.Lock()
	target := r.resolveLocked(botName)
	if target == nil {
		r.mu.Unlock()
		if botName == "" {
			return Response{}, ErrNoBots
		}
		return Response{}, &MissingBotError{Name: botName}
	}

	target.History = append(target.History, userTurn(user, query))
	turns := target.requestTurns()
	name := target.Name
	r.mu.Unlock()

	// The network call runs outside the critical section so slow
	// completions never block other registry operations.
	text, err := r.completer.Complete(ctx, turns)
	if err != nil {
		return Response{}, fmt.Errorf("completion request for bot %q: %w", name, err)
	}

	r.mu.Lock()
	// Re-resolve: the bot may have been removed or reordered while the
	// request was in flight. Its reply is simply dropped from history in
	// that case.
	if target := r.resolveLocked(name); target != nil {
		target.History = append(target.History, Turn{Role: RoleAssistant, Name: name, Content: text})
		r.persistLocked()
	}
	r.mu.Unlock()

	return Response{BotName: name, Text: text}, nil
}

// Add appends a bot and persists. Duplicate names are permitted; only the
// first match is reachable by query.
func (r *Registry) Add(b Bot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bots = append(r.bots, b)
	r.persistLocked()
	r.logger.Info("Bot added", "name", b.Name, "created_by", b.CreatedBy)
}

// RemoveByName removes the first bot whose name matches exactly
// (case-sensitive) and persists. The removed bot is returned.
func (r *Registry) RemoveByName(name string) (Bot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.bots {
		if r.bots[i].Name == name {
			removed := r.bots[i]
			r.bots = append(r.bots[:i], r.bots[i+1:]...)
			r.persistLocked()
			r.logger.Info("Bot removed", "name", name)
			return removed, true
		}
	}
	return Bot{}, false
}

// List returns a snapshot copy of the roster, safe to read while other
// goroutines mutate the registry.
func (r *Registry) List() []Bot {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Bot, len(r.bots))
	for i := range r.bots {
		out[i] = r.bots[i].clone()
	}
	return out
}

// resolveLocked returns the target bot or nil. Callers hold r.mu. An
// empty name selects the first-registered bot.
func (r *Registry) resolveLocked(name string) *Bot {
	if name == "" {
		if len(r.bots) == 0 {
			return nil
		}
		return &r.bots[0]
	}
	for i := range r.bots {
		if strings.EqualFold(r.bots[i].Name, name) {
			return &r.bots[i]
		}
	}
	return nil
}

// persistLocked writes the roster through the store. A write failure is
// logged and swallowed: the in-memory roster stays authoritative for the
// process lifetime.
func (r *Registry) persistLocked() {
	if err := r.store.Save(r.bots); err != nil {
		r.logger.Error("Failed to persist bots", "error", err)
	}
}
