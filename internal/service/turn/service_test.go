package turn

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/require"

	"github.com/gabble-labs/gabble/backend/internal/analysis/emotion"
	"github.com/gabble-labs/gabble/backend/internal/analysis/language"
	"github.com/gabble-labs/gabble/backend/internal/clients/perplexity"
	"github.com/gabble-labs/gabble/backend/internal/model/chat"
	"github.com/gabble-labs/gabble/backend/internal/model/personality"
)

type stubChatModel struct {
	received []*schema.Message
	reply    *schema.Message
	err      error
}

func (m *stubChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	m.received = input
	if m.err != nil {
		return nil, m.err
	}
	return m.reply, nil
}

func (m *stubChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

func (m *stubChatModel) BindTools(_ []*schema.ToolInfo) error {
	return nil
}

func newTestService(stub *stubChatModel) *Service {
	svc := NewService(stub, personality.NewMemoryStore(personality.Seed()))
	svc.now = func() time.Time {
		return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) // morning
	}
	return svc
}

func user(content string) chat.ChatMessage {
	return chat.ChatMessage{Role: chat.RoleUser, Content: content}
}

func assistant(content string) chat.ChatMessage {
	return chat.ChatMessage{Role: chat.RoleAssistant, Content: content}
}

func TestProcessTurnReturnsReply(t *testing.T) {
	stub := &stubChatModel{reply: schema.AssistantMessage("Hello Sam! How can I help?", nil)}
	svc := newTestService(stub)

	result, err := svc.ProcessTurn(context.Background(), Request{
		Messages: []chat.ChatMessage{user("Hi, I'm Sam and I need advice")},
	})
	require.NoError(t, err)
	require.Equal(t, "Hello Sam! How can I help?", result.Response)
	require.Equal(t, emotion.Confused, result.Emotion)
	require.Equal(t, "Sam", result.Memory.UserName)
}

func TestProcessTurnMessageLayout(t *testing.T) {
	stub := &stubChatModel{reply: schema.AssistantMessage("sure", nil)}
	svc := newTestService(stub)

	_, err := svc.ProcessTurn(context.Background(), Request{
		Messages: []chat.ChatMessage{
			user("hello"), assistant("hi, good to see you"), user("tell me more"),
		},
	})
	require.NoError(t, err)

	require.Len(t, stub.received, 4)
	require.Equal(t, schema.System, stub.received[0].Role)
	require.Equal(t, schema.User, stub.received[1].Role)
	require.Equal(t, schema.Assistant, stub.received[2].Role)
	require.Equal(t, schema.User, stub.received[3].Role)
	require.Equal(t, "tell me more", stub.received[3].Content)
}

func TestProcessTurnRejectsEmptyHistory(t *testing.T) {
	stub := &stubChatModel{reply: schema.AssistantMessage("never", nil)}
	svc := newTestService(stub)

	_, err := svc.ProcessTurn(context.Background(), Request{})
	require.ErrorIs(t, err, ErrInvalidHistory)
	require.Nil(t, stub.received, "no inference call may happen for invalid history")

	_, err = svc.ProcessTurn(context.Background(), Request{
		Messages: []chat.ChatMessage{assistant("welcome"), assistant("hello?")},
	})
	require.ErrorIs(t, err, ErrInvalidHistory)
	require.Nil(t, stub.received)
}

func TestProcessTurnSubstitutesApologyForEmptyReply(t *testing.T) {
	stub := &stubChatModel{reply: schema.AssistantMessage("   ", nil)}
	svc := newTestService(stub)

	result, err := svc.ProcessTurn(context.Background(), Request{
		Messages: []chat.ChatMessage{user("hello out in space")},
	})
	require.NoError(t, err)
	require.Equal(t, apologyFallback, result.Response)
}

func TestProcessTurnPropagatesRateLimit(t *testing.T) {
	stub := &stubChatModel{err: perplexity.ErrRateLimited}
	svc := newTestService(stub)

	_, err := svc.ProcessTurn(context.Background(), Request{
		Messages: []chat.ChatMessage{user("hello friend")},
	})
	require.ErrorIs(t, err, ErrRateLimited)
}

func TestProcessTurnWrapsGenericInferenceFailure(t *testing.T) {
	stub := &stubChatModel{err: errors.New("connection reset")}
	svc := newTestService(stub)

	_, err := svc.ProcessTurn(context.Background(), Request{
		Messages: []chat.ChatMessage{user("hello friend")},
	})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrRateLimited)
	require.NotErrorIs(t, err, ErrInvalidHistory)
}

func TestProcessTurnWithoutModelIsMisconfigured(t *testing.T) {
	svc := NewService(nil, personality.NewMemoryStore(personality.Seed()))

	_, err := svc.ProcessTurn(context.Background(), Request{
		Messages: []chat.ChatMessage{user("hello friend")},
	})
	require.ErrorIs(t, err, ErrMisconfigured)
}

func TestProcessTurnLanguageOverride(t *testing.T) {
	stub := &stubChatModel{reply: schema.AssistantMessage("ठीक है", nil)}
	svc := newTestService(stub)

	result, err := svc.ProcessTurn(context.Background(), Request{
		Messages: []chat.ChatMessage{user("मुझे मदद चाहिए")},
		Language: "fr-FR",
	})
	require.NoError(t, err)
	require.Equal(t, language.Tag("hi-IN"), result.Language)
	require.Contains(t, stub.received[0].Content, language.Directive("hi-IN"))
}

func TestProcessTurnLanguagePreferenceFallback(t *testing.T) {
	stub := &stubChatModel{reply: schema.AssistantMessage("bien sûr", nil)}
	svc := newTestService(stub)

	result, err := svc.ProcessTurn(context.Background(), Request{
		Messages: []chat.ChatMessage{user("Hello, how is everything going?")},
		Language: "fr-FR",
	})
	require.NoError(t, err)
	require.Equal(t, language.Tag("fr-FR"), result.Language)
	require.Contains(t, stub.received[0].Content, "Respond in French.")
}

func TestProcessTurnUnknownPersonalityFallsBack(t *testing.T) {
	stub := &stubChatModel{reply: schema.AssistantMessage("ok", nil)}
	svc := newTestService(stub)

	_, err := svc.ProcessTurn(context.Background(), Request{
		Messages:    []chat.ChatMessage{user("hello friend")},
		Personality: "swashbuckling",
	})
	require.NoError(t, err)
	require.Contains(t, stub.received[0].Content, "warm and caring AI companion")
}
