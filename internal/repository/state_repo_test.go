package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/domain"
	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/i18n"
)

func newTestRepo(t *testing.T) *StateRepository {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "vee.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStateRepository(db, i18n.English, zap.NewNop())
}

func sampleSessions() []domain.ChatSession {
	now := time.Now()
	return []domain.ChatSession{
		{
			ID:        2,
			Title:     "Chat 2",
			Preview:   "hello there",
			Timestamp: now,
			Saved:     true,
			Active:    true,
			Messages: []domain.ChatMessage{
				{Sender: domain.SenderAssistant, Text: "greeting", Timestamp: now},
				{Sender: domain.SenderUser, Text: "hello there", Timestamp: now},
			},
		},
		{
			ID:        1,
			Title:     "Chat 1",
			Preview:   "older chat",
			Timestamp: now.Add(-time.Hour),
			Saved:     false,
			Active:    false,
			Messages: []domain.ChatMessage{
				{Sender: domain.SenderAssistant, Text: "greeting", Timestamp: now.Add(-time.Hour)},
			},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	saved := sampleSessions()
	require.NoError(t, repo.Save(ctx, "c1", saved))

	loaded, err := repo.Load(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	for i := range saved {
		assert.Equal(t, saved[i].ID, loaded[i].ID)
		assert.Equal(t, saved[i].Title, loaded[i].Title)
		assert.Equal(t, saved[i].Saved, loaded[i].Saved)
		assert.Equal(t, saved[i].Active, loaded[i].Active)
		assert.WithinDuration(t, saved[i].Timestamp, loaded[i].Timestamp, time.Second)
		require.Len(t, loaded[i].Messages, len(saved[i].Messages))
		for j := range saved[i].Messages {
			assert.Equal(t, saved[i].Messages[j].Text, loaded[i].Messages[j].Text)
			assert.Equal(t, saved[i].Messages[j].Sender, loaded[i].Messages[j].Sender)
			assert.WithinDuration(t, saved[i].Messages[j].Timestamp, loaded[i].Messages[j].Timestamp, time.Second)
		}
	}
}

func TestLoadMissingClient(t *testing.T) {
	repo := newTestRepo(t)

	loaded, err := repo.Load(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSaveEmptyCollectionIsNoop(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "c1", sampleSessions()))
	require.NoError(t, repo.Save(ctx, "c1", nil))

	loaded, err := repo.Load(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, loaded, 2, "empty save must not erase prior history")
}

func TestMalformedStateTreatedAsFresh(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO chat_state (client_id, sessions) VALUES (?, ?)`,
		"c1", "{not valid json")
	require.NoError(t, err)

	loaded, err := repo.Load(ctx, "c1")
	require.NoError(t, err, "malformed state is never surfaced as an error")
	assert.Nil(t, loaded)
}

func TestClearRemovesEverything(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "c1", sampleSessions()))
	require.NoError(t, repo.SaveLanguage(ctx, "c1", i18n.Kiswahili))

	require.NoError(t, repo.Clear(ctx, "c1"))

	loaded, err := repo.Load(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, loaded)

	lang, err := repo.LoadLanguage(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, i18n.English, lang)
}

func TestLanguageRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	lang, err := repo.LoadLanguage(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, i18n.English, lang, "default language is English")

	require.NoError(t, repo.SaveLanguage(ctx, "c1", i18n.Kiswahili))
	lang, err = repo.LoadLanguage(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, i18n.Kiswahili, lang)

	// unknown codes normalize rather than persist garbage
	require.NoError(t, repo.SaveLanguage(ctx, "c1", i18n.Language("fr")))
	lang, err = repo.LoadLanguage(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, i18n.English, lang)
}

func TestConfiguredDefaultLanguage(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "vee.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	repo := NewStateRepository(db, i18n.Kiswahili, zap.NewNop())

	lang, err := repo.LoadLanguage(context.Background(), "new-client")
	require.NoError(t, err)
	assert.Equal(t, i18n.Kiswahili, lang)
}

func TestSaveOverwritesPriorState(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "c1", sampleSessions()))

	updated := sampleSessions()[:1]
	updated[0].Preview = "changed"
	require.NoError(t, repo.Save(ctx, "c1", updated))

	loaded, err := repo.Load(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "changed", loaded[0].Preview)
}
