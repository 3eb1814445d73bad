package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/scorekeeper/internal/metrics"
	"github.com/mauv0809/scorekeeper/internal/records"
	"github.com/mauv0809/scorekeeper/internal/standings"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.SlackNotifSent())
}

func TestSendMessage_NotConfigured(t *testing.T) {
	metrics := metrics.NewMock()
	notifier := NewNotifier("", "", metrics)

	err := notifier.SendMatchResult(records.Match{WinnerName: "Ana", LoserName: "Leo"}, false)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	_, _, err := notifier.sendMessage(slackapi.NewBlockMessage(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

func TestFormatMatchResult(t *testing.T) {
	client := &Notifier{channelID: "C123"}

	t.Run("regular match", func(t *testing.T) {
		msg := client.formatMatchResult(records.Match{WinnerName: "Ana", LoserName: "Leo", Date: "2024-01-02", Duration: "5"})
		require.Len(t, msg.Blocks.BlockSet, 3)

		header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
		require.True(t, ok)
		assert.Contains(t, header.Text.Text, "Match recorded")

		section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "🏆 Ana beat Leo", section.Text.Text)

		ctxBlock, ok := msg.Blocks.BlockSet[2].(*slackapi.ContextBlock)
		require.True(t, ok)
		require.Len(t, ctxBlock.ContextElements.Elements, 1)
		text, ok := ctxBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
		require.True(t, ok)
		assert.Equal(t, "Date: 2024-01-02 | Duration: 5", text.Text)
	})

	t.Run("self match", func(t *testing.T) {
		msg := client.formatMatchResult(records.Match{WinnerName: "Ana", LoserName: "Ana"})
		section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, section.Text.Text, "against themselves")
	})
}

func TestFormatStandings(t *testing.T) {
	client := &Notifier{channelID: "C123"}

	t.Run("empty", func(t *testing.T) {
		msg := client.formatStandings(nil)
		require.Len(t, msg.Blocks.BlockSet, 2)
		section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "No players registered yet.", section.Text.Text)
	})

	t.Run("ranked by wins", func(t *testing.T) {
		rows := []standings.PlayerStanding{
			{ID: 1, Name: "Leo", MatchesPlayed: 3, MatchesWon: 1, MatchesLost: 2, TotalDuration: 15},
			{ID: 2, Name: "Ana", MatchesPlayed: 3, MatchesWon: 2, MatchesLost: 1, TotalDuration: 12.5},
			{ID: 3, Name: "Mia"},
		}
		msg := client.formatStandings(rows)
		require.Len(t, msg.Blocks.BlockSet, 4)

		first, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "1. 🥇 Ana\n> Won 2/3 (67%) | Lost: 1 | Time played: 12.5", first.Text.Text)

		last, ok := msg.Blocks.BlockSet[3].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, last.Text.Text, "3. 🥉 Mia")

		// The caller's slice keeps its order.
		assert.Equal(t, "Leo", rows[0].Name)
	})
}

func TestSendStandings_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}
	notifier := NewNotifierWithAPI(api, "C123", metrics.NewMock())

	err := notifier.SendStandings([]standings.PlayerStanding{{ID: 1, Name: "Ana"}}, false)
	require.NoError(t, err)
	assert.True(t, postMessageCalled)
}
