package services

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/martin1reich-code/voicelab/internal/models"
	"github.com/martin1reich-code/voicelab/internal/storage"
	"github.com/martin1reich-code/voicelab/internal/synth"
)

// TTSService drives synthesis end to end: build the vendor request, call the
// engine, write the audio file and insert the record. The file is always
// written before the row.
type TTSService struct {
	engine  synth.Synthesizer
	audio   *storage.Store
	records *RecordService
}

func NewTTSService(engine synth.Synthesizer, audio *storage.Store, records *RecordService) *TTSService {
	return &TTSService{engine: engine, audio: audio, records: records}
}

// SynthesizeInput carries the parameters of one synthesis request.
type SynthesizeInput struct {
	Text     string
	Language string
	VoiceID  string
	Speed    float64
	Pitch    float64
	Mode     string
	Folder   *string
}

// SynthesizeResult is a created record plus the bare audio file name the
// client fetches it under.
type SynthesizeResult struct {
	Record     *models.TtsRecord
	FileName   string
	PartsCount int
}

// Synthesize generates audio for a single text and persists one record.
func (s *TTSService) Synthesize(ctx context.Context, input SynthesizeInput) (*SynthesizeResult, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, Validationf("text is required")
	}

	logrus.WithFields(logrus.Fields{
		"voice": input.VoiceID,
		"mode":  input.Mode,
	}).Info("synthesize request")

	req := synth.BuildRequest(input.Text, input.Language, input.VoiceID, input.Speed, input.Pitch, input.Mode)
	audio, err := s.engine.Synthesize(ctx, req)
	if err != nil {
		return nil, err
	}

	return s.persist(input, input.Text, audio, 1)
}

// SynthesizeMerged generates audio for each text part in order, concatenates
// the encoded bytes and persists a single record covering all parts. Either
// every part succeeds and exactly one file and one row are produced, or the
// whole operation fails with no artifact.
func (s *TTSService) SynthesizeMerged(ctx context.Context, texts []string, input SynthesizeInput) (*SynthesizeResult, error) {
	if len(texts) == 0 {
		return nil, Validationf("texts is required and must contain at least one part")
	}

	parts := make([]string, 0, len(texts))
	for _, part := range texts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) == 0 {
		return nil, Validationf("all text parts are empty")
	}

	logrus.WithFields(logrus.Fields{
		"voice": input.VoiceID,
		"parts": len(parts),
	}).Info("merged synthesize request")

	// Sequential on purpose: output bytes are concatenated in list order.
	var merged bytes.Buffer
	for i, part := range parts {
		req := synth.BuildRequest(part, input.Language, input.VoiceID, input.Speed, input.Pitch, input.Mode)
		chunk, err := s.engine.Synthesize(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("failed to synthesize part %d/%d: %w", i+1, len(parts), err)
		}
		if len(chunk) == 0 {
			return nil, fmt.Errorf("no audio content for part %d/%d", i+1, len(parts))
		}
		merged.Write(chunk)
	}

	fullText := strings.Join(parts, "\n\n")
	return s.persist(input, fullText, merged.Bytes(), len(parts))
}

// Voices lists the selectable vendor voices for a language.
func (s *TTSService) Voices(ctx context.Context, language string) ([]models.Voice, error) {
	return s.engine.ListVoices(ctx, language)
}

// persist writes the audio file, then inserts the record row.
func (s *TTSService) persist(input SynthesizeInput, text string, audio []byte, partsCount int) (*SynthesizeResult, error) {
	fileName, fullPath, err := s.audio.Save(audio)
	if err != nil {
		return nil, err
	}

	var ssmlText *string
	if input.Mode != models.ModeBasic {
		ssmlText = &text
	}

	record := &models.TtsRecord{
		Title:         DeriveTitle(text),
		OriginalText:  text,
		SsmlText:      ssmlText,
		Language:      input.Language,
		VoiceID:       input.VoiceID,
		Mode:          input.Mode,
		Speed:         input.Speed,
		Pitch:         input.Pitch,
		AudioFilePath: fullPath,
		Duration:      0, // the vendor API does not report audio length
		Folder:        input.Folder,
		Provider:      "google",
	}

	if err := s.records.Create(record); err != nil {
		return nil, err
	}

	return &SynthesizeResult{Record: record, FileName: fileName, PartsCount: partsCount}, nil
}

var markupTags = regexp.MustCompile(`<[^>]*>`)

// DeriveTitle turns synthesis text into a short display title: markup tags
// stripped, truncated to 100 characters, ellipsis-suffixed.
func DeriveTitle(text string) string {
	plain := strings.TrimSpace(markupTags.ReplaceAllString(text, ""))
	runes := []rune(plain)
	if len(runes) > 100 {
		runes = runes[:100]
	}
	return string(runes) + "..."
}
