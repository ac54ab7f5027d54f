package domain

import "time"

// Message senders.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// ChatMessage is a single entry in a session transcript. Text is
// non-empty (input is trimmed and rejected before a message exists)
// and Timestamp is immutable once set.
type ChatMessage struct {
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatSession is one conversation held by an anonymous client. Exactly
// one session in a client's collection is Active whenever the
// collection is non-empty.
type ChatSession struct {
	ID        int           `json:"id"`
	Title     string        `json:"title"`
	Preview   string        `json:"preview"`
	Timestamp time.Time     `json:"timestamp"`
	Saved     bool          `json:"saved"`
	Active    bool          `json:"active"`
	Messages  []ChatMessage `json:"messages"`
}

// SendRequest is the request to send a chat message.
type SendRequest struct {
	ClientID  string `json:"client_id"`
	SessionID int    `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

// SendResponse carries the assistant reply and the updated session.
type SendResponse struct {
	ClientID string      `json:"client_id"`
	Reply    string      `json:"reply"`
	Session  ChatSession `json:"session"`
}

// SessionListResponse is the session collection snapshot returned to
// the presentation layer.
type SessionListResponse struct {
	ClientID string        `json:"client_id"`
	Language string        `json:"language"`
	Sessions []ChatSession `json:"sessions"`
}
