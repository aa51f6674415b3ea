package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playdamnit/pkg/models"
)

func hitsReply(ids ...int) models.ChatMessage {
	msg := models.ChatMessage{Role: "assistant", Content: "found some games"}
	for _, id := range ids {
		msg.GameHits = append(msg.GameHits, models.SearchResult{
			ID:        id,
			Name:      "Game",
			Platforms: []models.Platform{{ID: 6, Name: "PC"}},
		})
	}
	return msg
}

func openConversation(t *testing.T) *Conversation {
	t.Helper()
	c := NewConversation("s1", "sabrina")
	require.NoError(t, c.Open())
	return c
}

func TestConversationHappyPath(t *testing.T) {
	c := openConversation(t)
	assert.Equal(t, StateChatting, c.State)

	require.NoError(t, c.AddUserMessage("I just finished Celeste"))
	require.NoError(t, c.AddAssistantMessage(hitsReply(42, 43)))
	assert.Equal(t, StateSearch, c.State)
	assert.Len(t, c.Hits(), 2)

	game, err := c.Select(42)
	require.NoError(t, err)
	assert.Equal(t, StateAddForm, c.State)
	assert.Equal(t, 42, game.ID)

	req, err := c.Submit(models.StatusFinished, 9.5)
	require.NoError(t, err)
	assert.Equal(t, StateAddForm, c.State, "form stays open until the write lands")
	assert.Equal(t, 42, req.GameID)
	assert.Equal(t, models.StatusFinished, req.Status)
	assert.Equal(t, 6, req.PlatformID)

	require.NoError(t, c.FinishForm())
	assert.Equal(t, StateChatting, c.State)
	assert.Nil(t, c.Selected())
	assert.Empty(t, c.Hits())
}

func TestConversationRepliesWithoutHitsStayChatting(t *testing.T) {
	c := openConversation(t)
	require.NoError(t, c.AddUserMessage("hello"))
	require.NoError(t, c.AddAssistantMessage(models.ChatMessage{Content: "hi, what did you play?"}))
	assert.Equal(t, StateChatting, c.State)
}

func TestConversationNewMessageAbandonsCandidates(t *testing.T) {
	c := openConversation(t)
	require.NoError(t, c.AddUserMessage("finished celeste"))
	require.NoError(t, c.AddAssistantMessage(hitsReply(42)))
	require.Equal(t, StateSearch, c.State)

	require.NoError(t, c.AddUserMessage("actually it was hades"))
	assert.Equal(t, StateChatting, c.State)
	assert.Empty(t, c.Hits())
}

func TestConversationCancelReturnsToSearch(t *testing.T) {
	c := openConversation(t)
	require.NoError(t, c.AddUserMessage("finished celeste"))
	require.NoError(t, c.AddAssistantMessage(hitsReply(42)))
	_, err := c.Select(42)
	require.NoError(t, err)

	require.NoError(t, c.CancelForm())
	assert.Equal(t, StateSearch, c.State)
	assert.Len(t, c.Hits(), 1)
}

func TestConversationGuardsInvalidTransitions(t *testing.T) {
	c := NewConversation("s1", "sabrina")

	assert.Error(t, c.AddUserMessage("hello"), "closed conversation takes no messages")

	require.NoError(t, c.Open())
	assert.Error(t, c.Open(), "double open")

	_, err := c.Select(1)
	assert.Error(t, err, "select with no candidates")

	assert.Error(t, c.CancelForm(), "cancel with no form")

	_, err = c.Submit(models.StatusFinished, 5)
	assert.Error(t, err, "submit with no form")

	assert.Error(t, c.FinishForm(), "finish with no form")

	assert.Error(t, c.AddUserMessage("   "), "blank message")
}

func TestConversationSubmitValidation(t *testing.T) {
	c := openConversation(t)
	require.NoError(t, c.AddUserMessage("finished celeste"))
	require.NoError(t, c.AddAssistantMessage(hitsReply(42)))
	_, err := c.Select(42)
	require.NoError(t, err)

	_, err = c.Submit("paused", 5)
	assert.Error(t, err, "unknown status")
	assert.Equal(t, StateAddForm, c.State, "failed submit keeps the form open")

	_, err = c.Submit(models.StatusFinished, 11)
	assert.Error(t, err, "rating out of range")

	_, err = c.Submit(models.StatusFinished, 10)
	assert.NoError(t, err)
	assert.Equal(t, StateAddForm, c.State)
}

func TestConversationSelectUnknownCandidate(t *testing.T) {
	c := openConversation(t)
	require.NoError(t, c.AddUserMessage("finished celeste"))
	require.NoError(t, c.AddAssistantMessage(hitsReply(42)))

	_, err := c.Select(99)
	assert.Error(t, err)
	assert.Equal(t, StateSearch, c.State, "bad pick keeps the candidates")
}

func TestConversationCloseFromAnyState(t *testing.T) {
	c := openConversation(t)
	require.NoError(t, c.AddUserMessage("finished celeste"))
	require.NoError(t, c.AddAssistantMessage(hitsReply(42)))
	_, err := c.Select(42)
	require.NoError(t, err)

	c.Close()
	assert.Equal(t, StateClosed, c.State)
	assert.Nil(t, c.Selected())
	assert.NotEmpty(t, c.Messages, "transcript survives close")
}
