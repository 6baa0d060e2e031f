package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/martin1reich-code/voicelab/internal/database"
	"github.com/martin1reich-code/voicelab/internal/models"
)

// settingsRowID is the fixed id of the singleton settings row.
const settingsRowID = 1

// SettingsService owns the user_settings singleton: provider API keys and
// default synthesis preferences.
type SettingsService struct {
	db *database.DB
}

func NewSettingsService(db *database.DB) *SettingsService {
	return &SettingsService{db: db}
}

// Get returns the settings row, creating it with column defaults on first
// read.
func (s *SettingsService) Get() (*models.UserSettings, error) {
	var settings models.UserSettings
	query := `SELECT * FROM user_settings WHERE id = ?`

	err := s.db.Get(&settings, query, settingsRowID)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err := s.db.Exec(`INSERT INTO user_settings (id, updated_at) VALUES (?, ?)`,
			settingsRowID, time.Now().UTC()); err != nil {
			return nil, fmt.Errorf("failed to create default settings: %w", err)
		}
		if err := s.db.Get(&settings, query, settingsRowID); err != nil {
			return nil, fmt.Errorf("failed to get settings: %w", err)
		}
		return &settings, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	return &settings, nil
}

// Update applies the non-nil fields of input to the settings row, creating
// the row first if it does not exist yet.
func (s *SettingsService) Update(input models.UserSettingsInput) (*models.UserSettings, error) {
	if _, err := s.Get(); err != nil {
		return nil, err
	}

	set := make([]string, 0, 9)
	args := make([]any, 0, 10)

	appendField := func(column string, value any) {
		set = append(set, column+" = ?")
		args = append(args, value)
	}

	if input.GoogleAPIKey != nil {
		appendField("google_api_key", *input.GoogleAPIKey)
	}
	if input.MicrosoftAPIKey != nil {
		appendField("microsoft_api_key", *input.MicrosoftAPIKey)
	}
	if input.GeminiAPIKey != nil {
		appendField("gemini_api_key", *input.GeminiAPIKey)
	}
	if input.DefaultLanguage != nil {
		appendField("default_language", *input.DefaultLanguage)
	}
	if input.DefaultVoiceID != nil {
		appendField("default_voice_id", *input.DefaultVoiceID)
	}
	if input.DefaultSpeed != nil {
		appendField("default_speed", *input.DefaultSpeed)
	}
	if input.DefaultPitch != nil {
		appendField("default_pitch", *input.DefaultPitch)
	}
	if input.DefaultMode != nil {
		appendField("default_mode", *input.DefaultMode)
	}
	if input.TtsProvider != nil {
		appendField("tts_provider", *input.TtsProvider)
	}

	if len(set) > 0 {
		appendField("updated_at", time.Now().UTC())
		query := fmt.Sprintf(`UPDATE user_settings SET %s WHERE id = ?`, strings.Join(set, ", "))
		if _, err := s.db.Exec(query, append(args, settingsRowID)...); err != nil {
			return nil, fmt.Errorf("failed to update settings: %w", err)
		}
	}

	return s.Get()
}

// UpdateAPIKeys updates only the stored provider keys.
func (s *SettingsService) UpdateAPIKeys(keys models.APIKeysInput) (*models.UserSettings, error) {
	return s.Update(models.UserSettingsInput{
		GoogleAPIKey:    keys.GoogleAPIKey,
		MicrosoftAPIKey: keys.MicrosoftAPIKey,
		GeminiAPIKey:    keys.GeminiAPIKey,
	})
}

// UpdatePreferences updates only the default synthesis preferences.
func (s *SettingsService) UpdatePreferences(prefs models.PreferencesInput) (*models.UserSettings, error) {
	return s.Update(models.UserSettingsInput{
		DefaultLanguage: prefs.DefaultLanguage,
		DefaultVoiceID:  prefs.DefaultVoiceID,
		DefaultSpeed:    prefs.DefaultSpeed,
		DefaultPitch:    prefs.DefaultPitch,
		DefaultMode:     prefs.DefaultMode,
	})
}
