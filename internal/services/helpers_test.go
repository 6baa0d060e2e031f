package services_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/martin1reich-code/voicelab/internal/database"
	"github.com/martin1reich-code/voicelab/internal/models"
	"github.com/martin1reich-code/voicelab/internal/services"
	"github.com/martin1reich-code/voicelab/internal/storage"
	"github.com/martin1reich-code/voicelab/internal/synth"
)

type testEnv struct {
	db       *database.DB
	audio    *storage.Store
	engine   *synth.DummyEngine
	records  *services.RecordService
	settings *services.SettingsService
	tts      *services.TTSService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()

	db, err := database.New(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	audio, err := storage.New(filepath.Join(dir, "audio"))
	require.NoError(t, err)

	engine := synth.NewDummyEngine()
	records := services.NewRecordService(db, audio)

	return &testEnv{
		db:       db,
		audio:    audio,
		engine:   engine,
		records:  records,
		settings: services.NewSettingsService(db),
		tts:      services.NewTTSService(engine, audio, records),
	}
}

// audioFileCount counts the MP3 files currently in the audio directory.
func (e *testEnv) audioFileCount(t *testing.T) int {
	t.Helper()

	entries, err := os.ReadDir(e.audio.Dir())
	require.NoError(t, err)
	return len(entries)
}

// recordCount counts the rows in tts_records.
func (e *testEnv) recordCount(t *testing.T) int {
	t.Helper()

	var count int
	require.NoError(t, e.db.Get(&count, `SELECT COUNT(*) FROM tts_records`))
	return count
}

// seedRecord inserts a record with the given fields, backdating created_at by
// age so sort order is deterministic.
func (e *testEnv) seedRecord(t *testing.T, title, language string, folder *string, favorite bool, rating int, age time.Duration) *models.TtsRecord {
	t.Helper()

	record := &models.TtsRecord{
		Title:         title,
		OriginalText:  title,
		Language:      language,
		VoiceID:       "cs-CZ-Wavenet-A",
		Mode:          models.ModeBasic,
		Speed:         1.0,
		AudioFilePath: filepath.Join(e.audio.Dir(), title+".mp3"),
		Folder:        folder,
		Rating:        rating,
		IsFavorite:    favorite,
		CreatedAt:     time.Now().UTC().Add(-age),
	}
	require.NoError(t, e.records.Create(record))
	return record
}

func strPtr(s string) *string { return &s }
