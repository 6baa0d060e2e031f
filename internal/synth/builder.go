package synth

import (
	"fmt"
	"strings"

	tts "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"

	"github.com/martin1reich-code/voicelab/internal/models"
)

// BuildRequest turns the raw synthesis parameters into a vendor request.
// In SSML modes the text is treated as markup and wrapped in a <speak> root
// unless the caller already supplied one. Speed and pitch pass through
// unvalidated; output is always MP3. Pure, no side effects.
func BuildRequest(text, language, voiceID string, speed, pitch float64, mode string) *tts.SynthesizeSpeechRequest {
	var input *tts.SynthesisInput
	if models.IsSSMLMode(mode) {
		trimmed := strings.TrimSpace(text)
		ssml := trimmed
		if !strings.Contains(trimmed, "<speak") {
			ssml = fmt.Sprintf("<speak>%s</speak>", trimmed)
		}
		input = &tts.SynthesisInput{
			InputSource: &tts.SynthesisInput_Ssml{Ssml: ssml},
		}
	} else {
		input = &tts.SynthesisInput{
			InputSource: &tts.SynthesisInput_Text{Text: text},
		}
	}

	return &tts.SynthesizeSpeechRequest{
		Input: input,
		Voice: &tts.VoiceSelectionParams{
			LanguageCode: language,
			Name:         voiceID,
		},
		AudioConfig: &tts.AudioConfig{
			AudioEncoding: tts.AudioEncoding_MP3,
			SpeakingRate:  speed,
			Pitch:         pitch,
		},
	}
}
