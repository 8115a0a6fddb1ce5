package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"mckart-backend/apperr"
	"mckart-backend/model"
)

const (
	// maxHistoryTurns bounds the transcript a client may replay per
	// request, capping payload size and provider latency.
	maxHistoryTurns = 20

	converseTimeout = 30 * time.Second
)

// FallbackReply is the canned text the chat UI shows when the
// assistant cannot be reached, so the surface never hangs silently.
const FallbackReply = "Sorry, I'm having trouble connecting right now. Please try again in a moment."

// Provider is the external language model behind the gateway. One call
// per turn, no retries; history is everything the provider gets, there
// is no server-side session.
type Provider interface {
	Converse(ctx context.Context, message string, history []model.Turn) (string, error)
}

type AssistantUsecase struct {
	provider Provider
	log      *zap.Logger
}

// NewAssistantUsecase accepts a nil provider; in that state every turn
// fails with a configuration error instead of panicking, which is how
// a missing API key surfaces.
func NewAssistantUsecase(provider Provider, log *zap.Logger) *AssistantUsecase {
	return &AssistantUsecase{provider: provider, log: log}
}

// Converse runs one stateless turn against the provider.
func (u *AssistantUsecase) Converse(ctx context.Context, message string, history []model.Turn) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", apperr.Validation("message is required")
	}
	if u.provider == nil {
		// Detected before any outbound call. The client never learns
		// which credential is missing.
		return "", apperr.Configuration("assistant is not configured", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, converseTimeout)
	defer cancel()

	reply, err := u.provider.Converse(ctx, message, NormalizeHistory(history))
	if err != nil {
		u.log.Warn("assistant provider call failed", zap.Error(err))
		return "", apperr.Upstream("failed to get response from AI", err)
	}
	if strings.TrimSpace(reply) == "" {
		u.log.Warn("assistant provider returned empty reply")
		return "", apperr.Upstream("failed to get response from AI", nil)
	}
	return reply, nil
}

// NormalizeHistory prepares a client transcript for replay: empty
// turns (unconfirmed local echoes) are dropped, the transcript is cut
// to the last maxHistoryTurns entries, and leading assistant turns are
// removed so the provider always sees a history starting with a user
// turn.
func NormalizeHistory(history []model.Turn) []model.Turn {
	cleaned := make([]model.Turn, 0, len(history))
	for _, t := range history {
		if strings.TrimSpace(t.Text) == "" {
			continue
		}
		cleaned = append(cleaned, t)
	}
	if len(cleaned) > maxHistoryTurns {
		cleaned = cleaned[len(cleaned)-maxHistoryTurns:]
	}
	for len(cleaned) > 0 && cleaned[0].Sender != model.TurnUser {
		cleaned = cleaned[1:]
	}
	return cleaned
}
