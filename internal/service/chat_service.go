package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/domain"
)

// ChatService runs the send-message flow: append the user message,
// exchange it with the backend, append the reply, persist. The UI
// disables the compose box while a send is in flight, so within one
// session messages arrive in send order.
type ChatService struct {
	manager  *SessionManager
	exchange *Exchange
}

// NewChatService creates a new chat service
func NewChatService(manager *SessionManager, exchange *Exchange) *ChatService {
	return &ChatService{manager: manager, exchange: exchange}
}

// Send handles one user message. Empty and whitespace-only input is
// rejected before any message exists or any network call happens.
// When the request carries no client id a new one is minted and
// returned for the caller to reuse.
func (s *ChatService) Send(ctx context.Context, req *domain.SendRequest) (*domain.SendResponse, error) {
	text := strings.TrimSpace(req.Message)
	if text == "" {
		return nil, domain.ErrInvalidRequest
	}

	clientID := req.ClientID
	if clientID == "" {
		clientID = uuid.New().String()
	}

	var session domain.ChatSession
	var err error
	if req.SessionID == 0 {
		session, err = s.manager.ActiveSession(ctx, clientID)
	} else {
		session, err = s.manager.Session(ctx, clientID, req.SessionID)
	}
	if err != nil {
		return nil, err
	}

	lang, err := s.manager.Language(ctx, clientID)
	if err != nil {
		return nil, err
	}

	userMsg := domain.ChatMessage{
		Sender:    domain.SenderUser,
		Text:      text,
		Timestamp: time.Now(),
	}
	withUser := append(append([]domain.ChatMessage(nil), session.Messages...), userMsg)
	if err := s.manager.ReplaceMessages(ctx, clientID, session.ID, withUser); err != nil {
		return nil, err
	}

	reply := s.exchange.Send(ctx, text, sessionKey(clientID, session.ID), lang, withUser)

	botMsg := domain.ChatMessage{
		Sender:    domain.SenderAssistant,
		Text:      reply,
		Timestamp: time.Now(),
	}
	withReply := append(withUser, botMsg)
	if err := s.manager.ReplaceMessages(ctx, clientID, session.ID, withReply); err != nil {
		return nil, err
	}

	updated, err := s.manager.Session(ctx, clientID, session.ID)
	if err != nil {
		return nil, err
	}

	return &domain.SendResponse{
		ClientID: clientID,
		Reply:    reply,
		Session:  updated,
	}, nil
}

// sessionKey scopes the backend's session id per client and per chat.
func sessionKey(clientID string, sessionID int) string {
	return fmt.Sprintf("%s-%d", clientID, sessionID)
}
