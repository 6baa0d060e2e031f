package services_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martin1reich-code/voicelab/internal/models"
	"github.com/martin1reich-code/voicelab/internal/services"
)

func basicInput(text string) services.SynthesizeInput {
	return services.SynthesizeInput{
		Text:     text,
		Language: "cs-CZ",
		VoiceID:  "cs-CZ-Wavenet-A",
		Speed:    1.0,
		Pitch:    0,
		Mode:     models.ModeBasic,
	}
}

func TestSynthesize_WritesFileThenRecord(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.tts.Synthesize(context.Background(), basicInput("Hello world"))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(result.FileName, ".mp3"))
	assert.Equal(t, 1, result.PartsCount)

	data, err := os.ReadFile(result.Record.AudioFilePath)
	require.NoError(t, err)
	assert.Equal(t, []byte("MP3|Hello world|"), data)

	stored, err := env.records.Get(result.Record.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello world...", stored.Title)
	assert.Equal(t, "Hello world", stored.OriginalText)
	assert.Nil(t, stored.SsmlText)
	assert.Equal(t, float64(0), stored.Duration)
	assert.Equal(t, "google", stored.Provider)
}

func TestSynthesize_SSMLModeKeepsMarkup(t *testing.T) {
	env := newTestEnv(t)

	input := basicInput("Hello <break time=\"1s\"/> world")
	input.Mode = models.ModeManualSSML

	result, err := env.tts.Synthesize(context.Background(), input)
	require.NoError(t, err)

	stored, err := env.records.Get(result.Record.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.SsmlText)
	assert.Equal(t, input.Text, *stored.SsmlText)
	assert.Equal(t, "Hello  world...", stored.Title, "tags stripped from title")
}

func TestSynthesize_EmptyTextRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.tts.Synthesize(context.Background(), basicInput("   "))
	require.Error(t, err)
	assert.True(t, services.IsValidation(err))
	assert.Equal(t, 0, env.audioFileCount(t))
	assert.Equal(t, 0, env.recordCount(t))
}

func TestSynthesizeMerged_ByteExactConcatenation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Individually synthesized sizes, for the byte-exact comparison.
	var sum int
	for _, part := range []string{"a", "b", "c"} {
		chunk := []byte("MP3|" + part + "|")
		sum += len(chunk)
	}

	result, err := env.tts.SynthesizeMerged(ctx, []string{"a", "b", "c"}, basicInput(""))
	require.NoError(t, err)

	assert.Equal(t, 3, result.PartsCount)

	data, err := os.ReadFile(result.Record.AudioFilePath)
	require.NoError(t, err)
	assert.Equal(t, []byte("MP3|a|MP3|b|MP3|c|"), data)
	assert.Len(t, data, sum)

	assert.Equal(t, 1, env.recordCount(t), "exactly one row for all parts")
	assert.Equal(t, 1, env.audioFileCount(t), "exactly one merged file")

	stored, err := env.records.Get(result.Record.ID)
	require.NoError(t, err)
	assert.Equal(t, "a\n\nb\n\nc", stored.OriginalText)
}

func TestSynthesizeMerged_TrimsAndDropsEmptyParts(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.tts.SynthesizeMerged(context.Background(), []string{" a ", "", "b"}, basicInput(""))
	require.NoError(t, err)

	assert.Equal(t, 2, result.PartsCount)

	data, err := os.ReadFile(result.Record.AudioFilePath)
	require.NoError(t, err)
	assert.Equal(t, []byte("MP3|a|MP3|b|"), data)
}

func TestSynthesizeMerged_AllPartsEmptyRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.tts.SynthesizeMerged(context.Background(), []string{"", "  ", ""}, basicInput(""))
	require.Error(t, err)
	assert.True(t, services.IsValidation(err))
	assert.Equal(t, 0, env.audioFileCount(t))
	assert.Equal(t, 0, env.recordCount(t))
}

func TestSynthesizeMerged_NoPartsRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.tts.SynthesizeMerged(context.Background(), nil, basicInput(""))
	require.Error(t, err)
	assert.True(t, services.IsValidation(err))
}

func TestSynthesizeMerged_FailingPartLeavesNoArtifacts(t *testing.T) {
	env := newTestEnv(t)
	env.engine.FailSubstring = "FAIL"

	_, err := env.tts.SynthesizeMerged(context.Background(), []string{"a", "FAIL", "c"}, basicInput(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2/3")
	assert.False(t, services.IsValidation(err))

	assert.Equal(t, 0, env.audioFileCount(t), "no partial file")
	assert.Equal(t, 0, env.recordCount(t), "no partial row")
}

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"short text", "Hello", "Hello..."},
		{"tags stripped", "<speak>Hi <break/> there</speak>", "Hi  there..."},
		{"long text truncated", strings.Repeat("x", 150), strings.Repeat("x", 100) + "..."},
		{"whitespace trimmed", "  padded  ", "padded..."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, services.DeriveTitle(tc.text))
		})
	}
}
