// Package turn processes one conversational turn: it repairs the supplied
// history, classifies the latest utterance, derives memory facts, assembles
// the system instruction and delegates to the configured chat model. The
// service holds no per-conversation state; every call carries the full
// history.
package turn

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/gabble-labs/gabble/backend/internal/analysis/emotion"
	"github.com/gabble-labs/gabble/backend/internal/analysis/history"
	"github.com/gabble-labs/gabble/backend/internal/analysis/language"
	"github.com/gabble-labs/gabble/backend/internal/analysis/memory"
	"github.com/gabble-labs/gabble/backend/internal/clients/perplexity"
	"github.com/gabble-labs/gabble/backend/internal/model/chat"
	"github.com/gabble-labs/gabble/backend/internal/model/personality"
)

// Errors surfaced by ProcessTurn. The credential and rate-limit sentinels
// originate in the provider client and are re-exported so handlers only
// depend on this package.
var (
	ErrInvalidHistory = errors.New("conversation has no user message to answer")
	ErrMisconfigured  = perplexity.ErrMissingAPIKey
	ErrRateLimited    = perplexity.ErrRateLimited
)

// apologyFallback replaces an upstream success that carried no text; an
// empty reply is never propagated to the caller.
const apologyFallback = "I apologize, I could not generate a response."

// Request is one turn as received from the client.
type Request struct {
	Messages    []chat.ChatMessage
	Personality string
	Language    string
}

// Result carries the reply plus the per-turn classifications, which the
// handlers log and the voice relay forwards for orb animation.
type Result struct {
	Response string
	Emotion  emotion.Label
	Language language.Tag
	Memory   memory.Facts
}

// Service runs the turn pipeline against a chat model.
type Service struct {
	chatModel model.ChatModel
	profiles  personality.Store
	now       func() time.Time
}

// NewService creates the turn service. chatModel may be nil when the
// provider could not be constructed; every turn then fails as
// misconfigured instead of the server refusing to boot.
func NewService(chatModel model.ChatModel, profiles personality.Store) *Service {
	return &Service{
		chatModel: chatModel,
		profiles:  profiles,
		now:       time.Now,
	}
}

// ProcessTurn executes the pipeline and returns the assistant's reply.
func (s *Service) ProcessTurn(ctx context.Context, req Request) (*Result, error) {
	normalized := history.Normalize(req.Messages)
	if len(normalized) == 0 {
		return nil, ErrInvalidHistory
	}

	// Normalize guarantees the last message is from the user.
	latest := normalized[len(normalized)-1].Content

	mood := emotion.Detect(latest)
	tag := language.Resolve(latest, req.Language)
	facts := memory.Extract(normalized)
	profile := personality.Resolve(s.profiles, req.Personality)

	if s.chatModel == nil {
		return nil, ErrMisconfigured
	}

	messages := make([]*schema.Message, 0, len(normalized)+1)
	messages = append(messages, schema.SystemMessage(s.buildSystemPrompt(profile, mood, tag, facts, len(normalized))))
	for _, msg := range normalized {
		switch msg.Role {
		case chat.RoleUser:
			messages = append(messages, schema.UserMessage(msg.Content))
		case chat.RoleAssistant:
			messages = append(messages, schema.AssistantMessage(msg.Content, nil))
		}
	}

	response, err := s.chatModel.Generate(ctx, messages)
	if err != nil {
		if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrMisconfigured) {
			return nil, err
		}
		return nil, fmt.Errorf("inference request failed: %w", err)
	}

	content := strings.TrimSpace(response.Content)
	if content == "" {
		content = apologyFallback
	}

	log.Printf("[turn] processed messages=%d personality=%s emotion=%s language=%s", len(normalized), profile.ID, mood, tag)

	return &Result{
		Response: content,
		Emotion:  mood,
		Language: tag,
		Memory:   facts,
	}, nil
}
