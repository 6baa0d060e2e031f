package models

import "time"

// UserSettings is the singleton settings row (always id 1): provider API keys
// plus the default synthesis preferences preselected in the client.
type UserSettings struct {
	ID              int       `json:"id" db:"id"`
	GoogleAPIKey    *string   `json:"googleApiKey" db:"google_api_key"`
	MicrosoftAPIKey *string   `json:"microsoftApiKey" db:"microsoft_api_key"`
	GeminiAPIKey    *string   `json:"geminiApiKey" db:"gemini_api_key"`
	DefaultLanguage string    `json:"defaultLanguage" db:"default_language"`
	DefaultVoiceID  string    `json:"defaultVoiceId" db:"default_voice_id"`
	DefaultSpeed    float64   `json:"defaultSpeed" db:"default_speed"`
	DefaultPitch    float64   `json:"defaultPitch" db:"default_pitch"`
	DefaultMode     string    `json:"defaultMode" db:"default_mode"`
	TtsProvider     string    `json:"ttsProvider" db:"tts_provider"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// UserSettingsInput is a partial update of the settings row. Nil fields keep
// their current value.
type UserSettingsInput struct {
	GoogleAPIKey    *string  `json:"googleApiKey"`
	MicrosoftAPIKey *string  `json:"microsoftApiKey"`
	GeminiAPIKey    *string  `json:"geminiApiKey"`
	DefaultLanguage *string  `json:"defaultLanguage"`
	DefaultVoiceID  *string  `json:"defaultVoiceId"`
	DefaultSpeed    *float64 `json:"defaultSpeed"`
	DefaultPitch    *float64 `json:"defaultPitch"`
	DefaultMode     *string  `json:"defaultMode"`
	TtsProvider     *string  `json:"ttsProvider"`
}

// APIKeysInput updates only the stored provider keys.
type APIKeysInput struct {
	GoogleAPIKey    *string `json:"googleApiKey"`
	MicrosoftAPIKey *string `json:"microsoftApiKey"`
	GeminiAPIKey    *string `json:"geminiApiKey"`
}

// PreferencesInput updates only the default synthesis preferences.
type PreferencesInput struct {
	DefaultLanguage *string  `json:"defaultLanguage"`
	DefaultVoiceID  *string  `json:"defaultVoiceId"`
	DefaultSpeed    *float64 `json:"defaultSpeed"`
	DefaultPitch    *float64 `json:"defaultPitch"`
	DefaultMode     *string  `json:"defaultMode"`
}

// Voice describes one selectable vendor voice. Voices are never persisted.
type Voice struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Gender      string `json:"gender"`
	Language    string `json:"language"`
}
