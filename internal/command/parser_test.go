package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_PlainText(t *testing.T) {
	for _, raw := range []string{"hello", "", "ai what is up", " !online"} {
		cmd, ok := Parse(raw)
		assert.False(t, ok, "raw=%q", raw)
		assert.Nil(t, cmd)
		assert.False(t, IsCommand(raw))
	}
}

func TestParse_AI(t *testing.T) {
	cmd, ok := Parse("!ai what is the capital of France?")
	require.True(t, ok)
	assert.Equal(t, AIQuery{Query: "what is the capital of France?"}, cmd)

	// No query at all is not a usable request.
	cmd, ok = Parse("!ai")
	require.True(t, ok)
	assert.IsType(t, Invalid{}, cmd)

	cmd, ok = Parse("!ai   ")
	require.True(t, ok)
	assert.IsType(t, Invalid{}, cmd)
}

func TestParse_Ask(t *testing.T) {
	cmd, ok := Parse("!ask greg what is 2+2")
	require.True(t, ok)
	assert.Equal(t, AIQuery{Bot: "greg", Query: "what is 2+2"}, cmd)

	cmd, ok = Parse("!ask greg")
	require.True(t, ok)
	assert.IsType(t, Invalid{}, cmd)

	cmd, ok = Parse("!ask")
	require.True(t, ok)
	assert.IsType(t, Invalid{}, cmd)
}

func TestParse_Simple(t *testing.T) {
	cmd, ok := Parse("!online")
	require.True(t, ok)
	assert.Equal(t, NumUsersOnline{}, cmd)

	cmd, ok = Parse("!help")
	require.True(t, ok)
	assert.Equal(t, Help{}, cmd)

	cmd, ok = Parse("!listbots")
	require.True(t, ok)
	assert.Equal(t, ListBots{}, cmd)
}

func TestParse_CommandWordIsCaseSensitive(t *testing.T) {
	cmd, ok := Parse("!Online")
	require.True(t, ok)
	assert.Equal(t, Invalid{Raw: "!Online"}, cmd)
}

func TestParse_RemoveBot(t *testing.T) {
	cmd, ok := Parse("!removebot greg")
	require.True(t, ok)
	assert.Equal(t, RemoveBot{Name: "greg"}, cmd)

	// Trailing words after the name are ignored.
	cmd, ok = Parse("!removebot greg please")
	require.True(t, ok)
	assert.Equal(t, RemoveBot{Name: "greg"}, cmd)

	cmd, ok = Parse("!removebot")
	require.True(t, ok)
	assert.IsType(t, Invalid{}, cmd)
}

func TestParse_NewBot(t *testing.T) {
	cmd, ok := Parse("!newbot pierre lang=French always answer in verse")
	require.True(t, ok)
	assert.Equal(t, AICreate{Name: "pierre", Lang: "French", Config: "always answer in verse"}, cmd)

	cmd, ok = Parse("!newbot pierre always answer in verse")
	require.True(t, ok)
	assert.Equal(t, AICreate{Name: "pierre", Config: "always answer in verse"}, cmd)

	// A config is required even when a language is given.
	cmd, ok = Parse("!newbot pierre lang=French")
	require.True(t, ok)
	assert.IsType(t, Invalid{}, cmd)

	cmd, ok = Parse("!newbot pierre")
	require.True(t, ok)
	assert.IsType(t, Invalid{}, cmd)

	cmd, ok = Parse("!newbot")
	require.True(t, ok)
	assert.IsType(t, Invalid{}, cmd)
}

func TestParse_UnknownCommand(t *testing.T) {
	cmd, ok := Parse("!bogus do things")
	require.True(t, ok)
	assert.Equal(t, Invalid{Raw: "!bogus do things"}, cmd)

	cmd, ok = Parse("!")
	require.True(t, ok)
	assert.IsType(t, Invalid{}, cmd)
}

func TestParse_WhitespaceHandling(t *testing.T) {
	cmd, ok := Parse("!ask   greg   what   is 2+2  ")
	require.True(t, ok)
	assert.Equal(t, AIQuery{Bot: "greg", Query: "what   is 2+2"}, cmd)
}
