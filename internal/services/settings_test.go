package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martin1reich-code/voicelab/internal/models"
)

func TestSettings_LazyDefaultCreation(t *testing.T) {
	env := newTestEnv(t)

	settings, err := env.settings.Get()
	require.NoError(t, err)

	assert.Equal(t, 1, settings.ID)
	assert.Equal(t, "cs-CZ", settings.DefaultLanguage)
	assert.Equal(t, "cs-CZ-Wavenet-A", settings.DefaultVoiceID)
	assert.Equal(t, 1.0, settings.DefaultSpeed)
	assert.Equal(t, 0.0, settings.DefaultPitch)
	assert.Equal(t, models.ModeBasic, settings.DefaultMode)
	assert.Equal(t, "google", settings.TtsProvider)
	assert.Nil(t, settings.GoogleAPIKey)

	// A second read returns the same singleton row, not another insert.
	again, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, settings.ID, again.ID)
}

func TestSettings_PartialUpdate(t *testing.T) {
	env := newTestEnv(t)

	speed := 1.5
	updated, err := env.settings.Update(models.UserSettingsInput{
		DefaultSpeed:    &speed,
		DefaultLanguage: strPtr("en-US"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1.5, updated.DefaultSpeed)
	assert.Equal(t, "en-US", updated.DefaultLanguage)
	assert.Equal(t, "cs-CZ-Wavenet-A", updated.DefaultVoiceID, "untouched field keeps its default")
}

func TestSettings_UpdateAPIKeysLeavesPreferences(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.settings.UpdatePreferences(models.PreferencesInput{
		DefaultLanguage: strPtr("en-GB"),
	})
	require.NoError(t, err)

	updated, err := env.settings.UpdateAPIKeys(models.APIKeysInput{
		GoogleAPIKey: strPtr("key-123"),
	})
	require.NoError(t, err)

	require.NotNil(t, updated.GoogleAPIKey)
	assert.Equal(t, "key-123", *updated.GoogleAPIKey)
	assert.Equal(t, "en-GB", updated.DefaultLanguage)
	assert.Nil(t, updated.MicrosoftAPIKey)
}
