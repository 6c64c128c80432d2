package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCompleter implements Completer and records the turns it was given.
type fakeCompleter struct {
	mu    sync.Mutex
	reply string
	err   error
	turns [][]Turn
}

func (f *fakeCompleter) Complete(ctx context.Context, turns []Turn) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.turns = append(f.turns, turns)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeCompleter) lastTurns() []Turn {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.turns) == 0 {
		return nil
	}
	return f.turns[len(f.turns)-1]
}

func newTestRegistry(t *testing.T, reply string) (*Registry, *Store, *fakeCompleter) {
	t.Helper()
	store := NewStore(afero.NewMemMapFs(), "data/bots.json")
	completer := &fakeCompleter{reply: reply}
	return NewRegistry(store, completer), store, completer
}

func TestNewRegistry_DefaultsWhenStoreEmpty(t *testing.T) {
	reg, _, _ := newTestRegistry(t, "hi")

	bots := reg.List()
	require.Len(t, bots, 1)
	assert.Equal(t, DefaultBotName, bots[0].Name)
	assert.Equal(t, "system", bots[0].CreatedBy)
	assert.Equal(t, DefaultConfig, bots[0].CustomConfig)
	assert.Equal(t, DefaultLanguage, bots[0].Language)
}

func TestNewRegistry_LoadsPersistedRoster(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "data/bots.json")
	require.NoError(t, store.Save([]Bot{New("pierre", "alice", "speak in verse", "French")}))

	reg := NewRegistry(store, &fakeCompleter{})
	bots := reg.List()
	require.Len(t, bots, 1)
	assert.Equal(t, "pierre", bots[0].Name)
	assert.Equal(t, "French", bots[0].Language)
}

func TestGetResponse_DefaultBot(t *testing.T) {
	reg, _, completer := newTestRegistry(t, "4")

	resp, err := reg.GetResponse(context.Background(), "what is 2+2", "alice", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultBotName, resp.BotName)
	assert.Equal(t, "4", resp.Text)

	// The request carries the preamble plus the framed user turn.
	turns := completer.lastTurns()
	require.Len(t, turns, 2)
	assert.Equal(t, RoleSystem, turns[0].Role)
	assert.Equal(t, RoleUser, turns[1].Role)
	assert.Contains(t, turns[1].Content, `"alice" says:`)
	assert.Contains(t, turns[1].Content, "what is 2+2")

	// Both turns of the exchange are now in history.
	bots := reg.List()
	require.Len(t, bots[0].History, 2)
	assert.Equal(t, RoleUser, bots[0].History[0].Role)
	assert.Equal(t, RoleAssistant, bots[0].History[1].Role)
	assert.Equal(t, "4", bots[0].History[1].Content)
}

func TestGetResponse_NamedBotCaseInsensitive(t *testing.T) {
	reg, _, _ := newTestRegistry(t, "bonjour")
	reg.Add(New("Pierre", "alice", "", "French"))

	resp, err := reg.GetResponse(context.Background(), "hello", "alice", "pierre")
	require.NoError(t, err)
	assert.Equal(t, "Pierre", resp.BotName)
}

func TestGetResponse_MissingBot(t *testing.T) {
	reg, _, _ := newTestRegistry(t, "hi")

	_, err := reg.GetResponse(context.Background(), "hello", "alice", "nobody")
	var missing *MissingBotError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "nobody", missing.Name)

	// No bot's history was touched.
	bots := reg.List()
	assert.Empty(t, bots[0].History)
}

func TestGetResponse_NoBots(t *testing.T) {
	reg, _, _ := newTestRegistry(t, "hi")
	_, ok := reg.RemoveByName(DefaultBotName)
	require.True(t, ok)

	_, err := reg.GetResponse(context.Background(), "hello", "alice", "")
	assert.ErrorIs(t, err, ErrNoBots)
}

func TestGetResponse_APIFailureKeepsUserTurn(t *testing.T) {
	reg, _, completer := newTestRegistry(t, "")
	completer.err = errors.New("upstream down")

	_, err := reg.GetResponse(context.Background(), "hello", "alice", "")
	require.Error(t, err)

	bots := reg.List()
	require.Len(t, bots[0].History, 1)
	assert.Equal(t, RoleUser, bots[0].History[0].Role)
}

func TestGetResponse_HistoryGrowsAcrossRequests(t *testing.T) {
	reg, _, completer := newTestRegistry(t, "ok")

	_, err := reg.GetResponse(context.Background(), "first", "alice", "")
	require.NoError(t, err)
	_, err = reg.GetResponse(context.Background(), "second", "bob", "")
	require.NoError(t, err)

	// The second request saw the whole first exchange.
	turns := completer.lastTurns()
	require.Len(t, turns, 4)
	assert.Contains(t, turns[1].Content, "first")
	assert.Contains(t, turns[3].Content, "second")
}

func TestAddAndRemove(t *testing.T) {
	reg, store, _ := newTestRegistry(t, "hi")
	reg.Add(New("pierre", "alice", "", ""))

	assert.Len(t, reg.List(), 2)

	// Removal is case-sensitive exact match.
	_, ok := reg.RemoveByName("PIERRE")
	assert.False(t, ok)

	removed, ok := reg.RemoveByName("pierre")
	require.True(t, ok)
	assert.Equal(t, "pierre", removed.Name)
	assert.Len(t, reg.List(), 1)

	// The removal survives a reload.
	persisted, err := store.Load()
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, DefaultBotName, persisted[0].Name)
}

func TestRegistry_ConcurrentUse(t *testing.T) {
	reg, _, _ := newTestRegistry(t, "ok")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reg.Add(New(fmt.Sprintf("bot-%d", i), "alice", "", ""))
			_, err := reg.GetResponse(context.Background(), "ping", "alice", "")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Len(t, reg.List(), 11)
}
