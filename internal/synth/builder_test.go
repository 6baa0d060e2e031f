package synth_test

import (
	"strings"
	"testing"

	tts "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martin1reich-code/voicelab/internal/models"
	"github.com/martin1reich-code/voicelab/internal/synth"
)

func TestBuildRequest_BasicModeNeverWraps(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"plain text", "Hello world"},
		{"text with angle brackets", "a < b > c"},
		{"whitespace preserved", "  padded  "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := synth.BuildRequest(tc.text, "en-US", "en-US-Wavenet-A", 1.0, 0, models.ModeBasic)

			assert.Equal(t, tc.text, req.GetInput().GetText())
			assert.Empty(t, req.GetInput().GetSsml())
		})
	}
}

func TestBuildRequest_SSMLModesWrapOnce(t *testing.T) {
	tests := []struct {
		name     string
		mode     string
		text     string
		expected string
	}{
		{"manual ssml gets wrapped", models.ModeManualSSML, "Hello <break time=\"1s\"/> world", "<speak>Hello <break time=\"1s\"/> world</speak>"},
		{"auto ssml gets wrapped", models.ModeAutoSSML, "Hello", "<speak>Hello</speak>"},
		{"already wrapped is kept", models.ModeManualSSML, "<speak>Hello</speak>", "<speak>Hello</speak>"},
		{"wrapped with attributes is kept", models.ModeManualSSML, `<speak version="1.0">Hi</speak>`, `<speak version="1.0">Hi</speak>`},
		{"surrounding whitespace trimmed", models.ModeManualSSML, "  Hello  ", "<speak>Hello</speak>"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := synth.BuildRequest(tc.text, "cs-CZ", "cs-CZ-Wavenet-A", 1.0, 0, tc.mode)

			ssml := req.GetInput().GetSsml()
			assert.Equal(t, tc.expected, ssml)
			assert.Equal(t, 1, strings.Count(ssml, "<speak"), "exactly one root wrapper")
			assert.Empty(t, req.GetInput().GetText())
		})
	}
}

func TestBuildRequest_VoiceAndAudioConfig(t *testing.T) {
	req := synth.BuildRequest("text", "cs-CZ", "cs-CZ-Wavenet-B", 1.5, -4.2, models.ModeBasic)

	require.NotNil(t, req.Voice)
	assert.Equal(t, "cs-CZ", req.Voice.LanguageCode)
	assert.Equal(t, "cs-CZ-Wavenet-B", req.Voice.Name)

	require.NotNil(t, req.AudioConfig)
	assert.Equal(t, tts.AudioEncoding_MP3, req.AudioConfig.AudioEncoding)
	assert.Equal(t, 1.5, req.AudioConfig.SpeakingRate)
	assert.Equal(t, -4.2, req.AudioConfig.Pitch)
}

func TestBuildRequest_SpeedAndPitchPassThroughUnvalidated(t *testing.T) {
	// Range checks are the caller's concern; the builder forwards verbatim.
	req := synth.BuildRequest("text", "en-US", "en-US-Wavenet-A", 99, -99, models.ModeBasic)

	assert.Equal(t, float64(99), req.AudioConfig.SpeakingRate)
	assert.Equal(t, float64(-99), req.AudioConfig.Pitch)
}
