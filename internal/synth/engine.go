package synth

import (
	"context"

	tts "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"

	"github.com/martin1reich-code/voicelab/internal/models"
)

// Synthesizer is the vendor-facing synthesis engine. Implementations return
// encoded MP3 bytes for a built request.
type Synthesizer interface {
	Synthesize(ctx context.Context, req *tts.SynthesizeSpeechRequest) ([]byte, error)
	ListVoices(ctx context.Context, language string) ([]models.Voice, error)
	Name() string
	Close() error
}
