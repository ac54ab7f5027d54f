package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/client"
	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/domain"
	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/i18n"
)

type fakeConversational struct {
	resp *client.ChatResponse
	err  error
	last client.ChatRequest
}

func (f *fakeConversational) Chat(_ context.Context, payload client.ChatRequest) (*client.ChatResponse, error) {
	f.last = payload
	return f.resp, f.err
}

func TestSendReturnsBackendText(t *testing.T) {
	backend := &fakeConversational{resp: &client.ChatResponse{Text: "You are safe here."}}
	ex := NewExchange(backend, 5, zap.NewNop())

	got := ex.Send(context.Background(), "hello", "c1-1", i18n.English, nil)
	assert.Equal(t, "You are safe here.", got)
	assert.Equal(t, "hello", backend.last.Message)
	assert.Equal(t, "c1-1", backend.last.SessionID)
	assert.Equal(t, "en", backend.last.Language)
}

func TestSendMissingTextFieldFallsBackToReassurance(t *testing.T) {
	backend := &fakeConversational{resp: &client.ChatResponse{}}
	ex := NewExchange(backend, 5, zap.NewNop())

	got := ex.Send(context.Background(), "hello", "c1-1", i18n.English, nil)
	assert.Equal(t, i18n.Reassurance(i18n.English), got)
}

func TestSendNetworkFailureReturnsSupportiveFallback(t *testing.T) {
	backend := &fakeConversational{err: errors.New("connection refused")}
	ex := NewExchange(backend, 5, zap.NewNop())

	for i := 0; i < 20; i++ {
		got := ex.Send(context.Background(), "hello", "c1-1", i18n.Kiswahili, nil)
		assert.Contains(t, i18n.Fallbacks(i18n.Kiswahili), got,
			"failure must resolve to a predefined supportive reply")
	}
}

func TestSendTrimsHistoryWindow(t *testing.T) {
	backend := &fakeConversational{resp: &client.ChatResponse{Text: "ok"}}
	ex := NewExchange(backend, 5, zap.NewNop())

	history := make([]domain.ChatMessage, 8)
	for i := range history {
		history[i] = domain.ChatMessage{Sender: domain.SenderUser, Text: "m"}
	}

	ex.Send(context.Background(), "hello", "c1-1", i18n.English, history)
	assert.Len(t, backend.last.ConversationHistory, 5)
}
