package synth

import (
	"context"
	"fmt"
	"os"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	tts "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"github.com/martin1reich-code/voicelab/internal/models"
)

// GoogleEngine is a Synthesizer backed by the Google Cloud Text-to-Speech API.
type GoogleEngine struct {
	client *texttospeech.Client
}

// NewGoogleEngine creates the cloud client. An explicit credentials file path
// takes precedence; otherwise the client falls back to application default
// credentials (GOOGLE_APPLICATION_CREDENTIALS or the metadata server).
func NewGoogleEngine(ctx context.Context, credentialsFile string) (*GoogleEngine, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	} else if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
		logrus.Warn("no Google credentials configured, relying on ambient credentials")
	}

	client, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google TTS client: %w", err)
	}

	return &GoogleEngine{client: client}, nil
}

// Synthesize sends a built request to the vendor and returns the encoded audio.
func (g *GoogleEngine) Synthesize(ctx context.Context, req *tts.SynthesizeSpeechRequest) ([]byte, error) {
	resp, err := g.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize speech: %w", err)
	}

	if len(resp.AudioContent) == 0 {
		return nil, fmt.Errorf("empty audio content received from Google TTS")
	}

	logrus.WithField("bytes", len(resp.AudioContent)).Debug("generated MP3 audio")
	return resp.AudioContent, nil
}

// ListVoices returns the vendor voices for a language, or all voices when
// language is empty.
func (g *GoogleEngine) ListVoices(ctx context.Context, language string) ([]models.Voice, error) {
	resp, err := g.client.ListVoices(ctx, &tts.ListVoicesRequest{
		LanguageCode: language,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list voices: %w", err)
	}

	voices := make([]models.Voice, 0, len(resp.Voices))
	for _, v := range resp.Voices {
		lang := language
		if len(v.LanguageCodes) > 0 {
			lang = v.LanguageCodes[0]
		}
		voices = append(voices, models.Voice{
			ID:          v.Name,
			DisplayName: v.Name,
			Gender:      v.SsmlGender.String(),
			Language:    lang,
		})
	}

	return voices, nil
}

func (g *GoogleEngine) Name() string {
	return "Google Cloud Text-to-Speech"
}

func (g *GoogleEngine) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
