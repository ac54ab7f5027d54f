package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/domain"
	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/i18n"
)

// StateRepository persists each client's chat session collection as a
// single serialized blob, mirroring the one-key-per-browser model the
// web app uses. Concurrent writers for the same client id are
// last-write-wins; cross-process coordination is a known limitation,
// not something this layer tries to fix.
type StateRepository struct {
	db          *DB
	defaultLang i18n.Language
	logger      *zap.Logger
}

// NewStateRepository creates a new state repository
func NewStateRepository(db *DB, defaultLang i18n.Language, logger *zap.Logger) *StateRepository {
	return &StateRepository{db: db, defaultLang: i18n.Normalize(string(defaultLang)), logger: logger}
}

// Load returns the persisted session collection for a client. Any
// deserialization failure is treated as "no prior state": the caller
// falls back to creating a fresh session, never sees an error page.
func (r *StateRepository) Load(ctx context.Context, clientID string) ([]domain.ChatSession, error) {
	var blob string
	err := r.db.QueryRowContext(ctx, `
		SELECT sessions FROM chat_state WHERE client_id = ?
	`, clientID).Scan(&blob)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sessions []domain.ChatSession
	if err := json.Unmarshal([]byte(blob), &sessions); err != nil {
		r.logger.Warn("discarding malformed chat state",
			zap.String("client_id", clientID),
			zap.Error(err))
		return nil, nil
	}

	return sessions, nil
}

// Save overwrites the stored collection. Saving an empty collection is
// a no-op so transient empty states cannot erase prior history.
func (r *StateRepository) Save(ctx context.Context, clientID string, sessions []domain.ChatSession) error {
	if len(sessions) == 0 {
		return nil
	}

	blob, err := json.Marshal(sessions)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO chat_state (client_id, sessions, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(client_id) DO UPDATE SET
			sessions = excluded.sessions,
			updated_at = excluded.updated_at
	`, clientID, string(blob), time.Now())

	return err
}

// Clear removes all persisted state for a client. Backs the quick-exit
// action, so it also drops the language preference.
func (r *StateRepository) Clear(ctx context.Context, clientID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM chat_state WHERE client_id = ?`, clientID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM client_prefs WHERE client_id = ?`, clientID)
	return err
}

// LoadLanguage returns the client's display language, falling back to
// the configured default when nothing is stored.
func (r *StateRepository) LoadLanguage(ctx context.Context, clientID string) (i18n.Language, error) {
	var code string
	err := r.db.QueryRowContext(ctx, `
		SELECT language FROM client_prefs WHERE client_id = ?
	`, clientID).Scan(&code)

	if err == sql.ErrNoRows {
		return r.defaultLang, nil
	}
	if err != nil {
		return r.defaultLang, err
	}

	return i18n.Normalize(code), nil
}

// SaveLanguage stores the client's display language.
func (r *StateRepository) SaveLanguage(ctx context.Context, clientID string, lang i18n.Language) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO client_prefs (client_id, language, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(client_id) DO UPDATE SET
			language = excluded.language,
			updated_at = excluded.updated_at
	`, clientID, string(i18n.Normalize(string(lang))), time.Now())

	return err
}
