package synth

import (
	"context"
	"fmt"
	"strings"

	tts "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"

	"github.com/martin1reich-code/voicelab/internal/models"
)

// DummyEngine is a Synthesizer that fabricates deterministic audio bytes from
// the request text. Used when no vendor credentials are configured and in
// tests.
type DummyEngine struct {
	// FailSubstring makes Synthesize fail for any input containing it.
	FailSubstring string
	// Voices is returned from ListVoices as-is.
	Voices []models.Voice
}

func NewDummyEngine() *DummyEngine {
	return &DummyEngine{}
}

func (d *DummyEngine) Synthesize(_ context.Context, req *tts.SynthesizeSpeechRequest) ([]byte, error) {
	text := req.GetInput().GetText()
	if text == "" {
		text = req.GetInput().GetSsml()
	}
	if d.FailSubstring != "" && strings.Contains(text, d.FailSubstring) {
		return nil, fmt.Errorf("synthesis rejected for %q", d.FailSubstring)
	}
	return []byte("MP3|" + text + "|"), nil
}

func (d *DummyEngine) ListVoices(_ context.Context, language string) ([]models.Voice, error) {
	if d.Voices != nil {
		return d.Voices, nil
	}
	return []models.Voice{
		{ID: "cs-CZ-Wavenet-A", DisplayName: "cs-CZ-Wavenet-A", Gender: "FEMALE", Language: "cs-CZ"},
	}, nil
}

func (d *DummyEngine) Name() string {
	return "dummy"
}

func (d *DummyEngine) Close() error {
	return nil
}
