package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/client"
	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/domain"
	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/i18n"
)

// Conversational is the remote dialogue endpoint.
type Conversational interface {
	Chat(ctx context.Context, payload client.ChatRequest) (*client.ChatResponse, error)
}

// Exchange resolves every send to exactly one reply string. Failures
// never cross this boundary: a distressed user gets a calm supportive
// line, not a technical error. One best-effort attempt, no retries —
// a retry spinner is worse for the user than a canned response.
type Exchange struct {
	backend       Conversational
	logger        *zap.Logger
	historyWindow int
}

// NewExchange creates the message exchange client. A non-positive
// history window falls back to 5 messages of context.
func NewExchange(backend Conversational, historyWindow int, logger *zap.Logger) *Exchange {
	if historyWindow <= 0 {
		historyWindow = 5
	}
	return &Exchange{backend: backend, logger: logger, historyWindow: historyWindow}
}

// Send delivers one trimmed, non-empty user message and returns the
// assistant reply.
func (e *Exchange) Send(ctx context.Context, message, sessionID string, lang i18n.Language, history []domain.ChatMessage) string {
	if len(history) > e.historyWindow {
		history = history[len(history)-e.historyWindow:]
	}

	resp, err := e.backend.Chat(ctx, client.ChatRequest{
		Message:             message,
		SessionID:           sessionID,
		Language:            string(lang),
		ConversationHistory: history,
	})
	if err != nil {
		e.logger.Warn("chat backend unavailable", zap.Error(err))
		return i18n.Fallback(lang)
	}

	if resp.Text == "" {
		return i18n.Reassurance(lang)
	}
	return resp.Text
}
