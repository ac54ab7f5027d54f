package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/domain"
	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/i18n"
)

// previewLimit is the display length of a session preview.
const previewLimit = 50

// SessionStore is the durable backing for chat state. Implementations
// absorb their own deserialization failures (returning an empty
// collection) and treat saving an empty collection as a no-op.
type SessionStore interface {
	Load(ctx context.Context, clientID string) ([]domain.ChatSession, error)
	Save(ctx context.Context, clientID string, sessions []domain.ChatSession) error
	Clear(ctx context.Context, clientID string) error
	LoadLanguage(ctx context.Context, clientID string) (i18n.Language, error)
	SaveLanguage(ctx context.Context, clientID string, lang i18n.Language) error
}

type clientState struct {
	sessions []domain.ChatSession
	language i18n.Language
}

// SessionManager owns every client's session collection. It is the
// only writer of the active, saved, preview and messages fields; the
// presentation layer gets copies and calls back through operations.
//
// Invariant: once a client is initialized, its collection is never
// empty and exactly one session is active.
type SessionManager struct {
	mu      sync.RWMutex
	store   SessionStore
	logger  *zap.Logger
	clients map[string]*clientState
}

// NewSessionManager creates a new session manager
func NewSessionManager(store SessionStore, logger *zap.Logger) *SessionManager {
	return &SessionManager{
		store:   store,
		logger:  logger,
		clients: make(map[string]*clientState),
	}
}

// state returns the working copy for a client, loading it from the
// store on first touch. Callers must hold mu.
func (m *SessionManager) state(ctx context.Context, clientID string) (*clientState, error) {
	if st, ok := m.clients[clientID]; ok {
		return st, nil
	}

	sessions, err := m.store.Load(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("load chat state: %w", err)
	}
	lang, err := m.store.LoadLanguage(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("load language: %w", err)
	}

	st := &clientState{sessions: sessions, language: lang}

	if len(st.sessions) == 0 {
		st.sessions = []domain.ChatSession{m.freshSession(1, lang)}
	} else {
		normalizeActive(st.sessions)
	}

	m.clients[clientID] = st
	if err := m.store.Save(ctx, clientID, st.sessions); err != nil {
		m.logger.Warn("persist chat state failed", zap.String("client_id", clientID), zap.Error(err))
	}
	return st, nil
}

// normalizeActive repairs persisted data so exactly one session is
// active: the first marked one wins, or the first session if none is.
func normalizeActive(sessions []domain.ChatSession) {
	activeSeen := false
	for i := range sessions {
		if sessions[i].Active {
			if activeSeen {
				sessions[i].Active = false
			}
			activeSeen = true
		}
	}
	if !activeSeen {
		sessions[0].Active = true
	}
}

func (m *SessionManager) freshSession(id int, lang i18n.Language) domain.ChatSession {
	now := time.Now()
	return domain.ChatSession{
		ID:        id,
		Title:     fmt.Sprintf(i18n.SessionTitleFormat(lang), id),
		Preview:   i18n.NewChatPreview(lang),
		Timestamp: now,
		Saved:     false,
		Active:    true,
		Messages: []domain.ChatMessage{{
			Sender:    domain.SenderAssistant,
			Text:      i18n.Greeting(lang),
			Timestamp: now,
		}},
	}
}

func nextID(sessions []domain.ChatSession) int {
	max := 0
	for i := range sessions {
		if sessions[i].ID > max {
			max = sessions[i].ID
		}
	}
	return max + 1
}

func (m *SessionManager) persist(ctx context.Context, clientID string, st *clientState) {
	if err := m.store.Save(ctx, clientID, st.sessions); err != nil {
		m.logger.Warn("persist chat state failed", zap.String("client_id", clientID), zap.Error(err))
	}
}

// Initialize loads (or creates) the client's collection and returns a
// snapshot. After it returns there is always an active session.
func (m *SessionManager) Initialize(ctx context.Context, clientID string) ([]domain.ChatSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, err := m.state(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return copySessions(st.sessions), nil
}

// CreateSession starts a new chat: next available id, one greeting
// message in the active language, inserted at the front and made the
// sole active session.
func (m *SessionManager) CreateSession(ctx context.Context, clientID string) (domain.ChatSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, err := m.state(ctx, clientID)
	if err != nil {
		return domain.ChatSession{}, err
	}

	session := m.freshSession(nextID(st.sessions), st.language)
	for i := range st.sessions {
		st.sessions[i].Active = false
	}
	st.sessions = append([]domain.ChatSession{session}, st.sessions...)

	m.persist(ctx, clientID, st)
	return copySession(session), nil
}

// ToggleSaved flips the saved flag on the matching session. Unknown
// ids are a no-op.
func (m *SessionManager) ToggleSaved(ctx context.Context, clientID string, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, err := m.state(ctx, clientID)
	if err != nil {
		return err
	}

	for i := range st.sessions {
		if st.sessions[i].ID == id {
			st.sessions[i].Saved = !st.sessions[i].Saved
			m.persist(ctx, clientID, st)
			return nil
		}
	}
	return nil
}

// DeleteSession removes the matching session. Deleting the active
// session promotes the first remaining one; deleting the last session
// recreates a fresh greeting session so the collection never empties.
func (m *SessionManager) DeleteSession(ctx context.Context, clientID string, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, err := m.state(ctx, clientID)
	if err != nil {
		return err
	}

	removedActive := false
	kept := st.sessions[:0]
	found := false
	for _, s := range st.sessions {
		if s.ID == id {
			found = true
			removedActive = s.Active
			continue
		}
		kept = append(kept, s)
	}
	if !found {
		return domain.ErrSessionNotFound
	}
	st.sessions = kept

	switch {
	case len(st.sessions) == 0:
		st.sessions = []domain.ChatSession{m.freshSession(1, st.language)}
	case removedActive:
		st.sessions[0].Active = true
	}

	m.persist(ctx, clientID, st)
	return nil
}

// SetActive makes the matching session the sole active one. Unknown
// ids leave the prior active session unchanged.
func (m *SessionManager) SetActive(ctx context.Context, clientID string, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, err := m.state(ctx, clientID)
	if err != nil {
		return err
	}

	found := false
	for i := range st.sessions {
		if st.sessions[i].ID == id {
			found = true
			break
		}
	}
	if !found {
		// Unknown id leaves the prior active session untouched.
		return nil
	}

	for i := range st.sessions {
		st.sessions[i].Active = st.sessions[i].ID == id
	}

	m.persist(ctx, clientID, st)
	return nil
}

// ReplaceMessages swaps in the complete new message sequence for a
// session. This is a full replace, not an append: callers always pass
// the prior sequence plus their new entries. An empty sequence is a
// no-op. Preview and timestamp are rederived here and nowhere else.
func (m *SessionManager) ReplaceMessages(ctx context.Context, clientID string, id int, messages []domain.ChatMessage) error {
	if len(messages) == 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	st, err := m.state(ctx, clientID)
	if err != nil {
		return err
	}

	for i := range st.sessions {
		if st.sessions[i].ID != id {
			continue
		}
		st.sessions[i].Messages = append([]domain.ChatMessage(nil), messages...)
		st.sessions[i].Preview = preview(messages, st.language)
		st.sessions[i].Timestamp = time.Now()
		m.persist(ctx, clientID, st)
		return nil
	}
	return domain.ErrSessionNotFound
}

// preview derives the sidebar preview from the last message.
func preview(messages []domain.ChatMessage, lang i18n.Language) string {
	if len(messages) == 0 {
		return i18n.EmptyPreview(lang)
	}
	return truncatePreview(messages[len(messages)-1].Text)
}

func truncatePreview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLimit {
		return text
	}
	return string(runes[:previewLimit]) + "..."
}

// Sessions returns a snapshot of the client's collection.
func (m *SessionManager) Sessions(ctx context.Context, clientID string) ([]domain.ChatSession, error) {
	return m.Initialize(ctx, clientID)
}

// ActiveSession returns a copy of the client's active session.
func (m *SessionManager) ActiveSession(ctx context.Context, clientID string) (domain.ChatSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, err := m.state(ctx, clientID)
	if err != nil {
		return domain.ChatSession{}, err
	}
	for i := range st.sessions {
		if st.sessions[i].Active {
			return copySession(st.sessions[i]), nil
		}
	}
	// state() guarantees an active session; unreachable in practice.
	return domain.ChatSession{}, domain.ErrSessionNotFound
}

// Session returns a copy of the session matching id.
func (m *SessionManager) Session(ctx context.Context, clientID string, id int) (domain.ChatSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, err := m.state(ctx, clientID)
	if err != nil {
		return domain.ChatSession{}, err
	}
	for i := range st.sessions {
		if st.sessions[i].ID == id {
			return copySession(st.sessions[i]), nil
		}
	}
	return domain.ChatSession{}, domain.ErrSessionNotFound
}

// Language returns the client's display language.
func (m *SessionManager) Language(ctx context.Context, clientID string) (i18n.Language, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, err := m.state(ctx, clientID)
	if err != nil {
		return i18n.English, err
	}
	return st.language, nil
}

// SetLanguage switches the display language for future sessions and
// localized replies. Existing transcripts are not rewritten.
func (m *SessionManager) SetLanguage(ctx context.Context, clientID string, lang i18n.Language) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, err := m.state(ctx, clientID)
	if err != nil {
		return err
	}

	st.language = i18n.Normalize(string(lang))
	if err := m.store.SaveLanguage(ctx, clientID, st.language); err != nil {
		m.logger.Warn("persist language failed", zap.String("client_id", clientID), zap.Error(err))
	}
	return nil
}

// Reset drops all state for a client, in memory and in the store.
// Backs the quick-exit safety action.
func (m *SessionManager) Reset(ctx context.Context, clientID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.clients, clientID)
	return m.store.Clear(ctx, clientID)
}

func copySession(s domain.ChatSession) domain.ChatSession {
	out := s
	out.Messages = append([]domain.ChatMessage(nil), s.Messages...)
	return out
}

func copySessions(sessions []domain.ChatSession) []domain.ChatSession {
	out := make([]domain.ChatSession, len(sessions))
	for i, s := range sessions {
		out[i] = copySession(s)
	}
	return out
}
