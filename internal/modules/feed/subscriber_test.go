package feed

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatfeed/internal/domain"
	"chatfeed/internal/hub"
	"chatfeed/internal/pubsub"
)

func TestFeedSubscriber_ForwardsToHub(t *testing.T) {
	h := hub.NewHub()
	fs := NewFeedSubscriber(nil, h)

	sub := h.Subscribe()
	defer h.Unsubscribe(sub)

	m := domain.NewMessage("alice", "hello", true)
	payload, err := json.Marshal(m)
	require.NoError(t, err)

	err = fs.handleMessage(context.Background(), pubsub.Message{Payload: payload})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	got, err := sub.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Sender)
	assert.Equal(t, "hello", got.Contents)
	assert.True(t, got.ShouldNotify)
}

func TestFeedSubscriber_RejectsBadPayload(t *testing.T) {
	h := hub.NewHub()
	fs := NewFeedSubscriber(nil, h)

	err := fs.handleMessage(context.Background(), pubsub.Message{Payload: []byte("not json")})
	assert.Error(t, err)
}
