package application

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jnmoveis/internal/assistant/domain"
)

func TestSessionStore_OpenAndGet(t *testing.T) {
	store := NewSessionStore(0, 0)
	defer store.Close()

	s, err := store.Open("")
	require.NoError(t, err)

	got, err := store.Get(s.ID.String())
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 1, store.Len())
}

func TestSessionStore_NotFound(t *testing.T) {
	store := NewSessionStore(0, 0)
	defer store.Close()

	_, err := store.Get("xyz")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = store.Open(uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStore_SaveTruncatesOnUserBoundary(t *testing.T) {
	store := NewSessionStore(0, 4)
	defer store.Close()
	s := store.New()

	var msgs []openai.ChatCompletionMessage
	for i := 0; i < 3; i++ {
		msgs = append(msgs,
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("q%d", i)},
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, ToolCalls: []openai.ToolCall{{ID: "c"}}},
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleTool, ToolCallID: "c"},
		)
	}
	store.Save(s, msgs)

	history := s.History()
	require.Len(t, history, 3)
	assert.Equal(t, "q2", history[0].Content)
}

func TestSessionStore_Delete(t *testing.T) {
	store := NewSessionStore(0, 0)
	defer store.Close()
	s := store.New()

	require.NoError(t, store.Delete(s.ID.String()))

	_, err := store.Get(s.ID.String())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, store.Delete(s.ID.String()), domain.ErrSessionNotFound)
}
