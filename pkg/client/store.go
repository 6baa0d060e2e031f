package client

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/martin1reich-code/voicelab/internal/models"
)

// Store holds the client-side state: the current synthesis config, the last
// result and the loaded library page. Reads return copies, writes go through
// action methods that return errors instead of mutating shared state
// ambiently.
type Store struct {
	client *Client

	mu      sync.RWMutex
	config  SynthesizeParams
	result  *SynthesizeResult
	library *models.HistoryPage
}

// NewStore creates a store bound to an API client with the usual starting
// config.
func NewStore(client *Client) *Store {
	return &Store{
		client: client,
		config: SynthesizeParams{
			Language: "cs-CZ",
			VoiceID:  "cs-CZ-Wavenet-A",
			Speed:    1.0,
			Pitch:    0,
			Mode:     models.ModeBasic,
		},
	}
}

// Config returns a snapshot of the current synthesis config.
func (s *Store) Config() SynthesizeParams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// SetConfig replaces the synthesis config.
func (s *Store) SetConfig(config SynthesizeParams) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = config
}

// SetText updates only the text of the current config.
func (s *Store) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.Text = text
}

// CurrentResult returns the last synthesis result, or nil.
func (s *Store) CurrentResult() *SynthesizeResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return nil
	}
	copied := *s.result
	return &copied
}

// Library returns the last loaded history page, or nil.
func (s *Store) Library() *models.HistoryPage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.library == nil {
		return nil
	}
	copied := *s.library
	copied.Records = append([]models.TtsRecord(nil), s.library.Records...)
	return &copied
}

// Generate synthesizes the current config and stores the result.
func (s *Store) Generate(ctx context.Context) (*SynthesizeResult, error) {
	result, err := s.client.Synthesize(ctx, s.Config())
	if err != nil {
		logrus.WithError(err).Error("failed to generate audio")
		return nil, err
	}

	s.mu.Lock()
	s.result = result
	s.mu.Unlock()
	return result, nil
}

// GenerateMerged synthesizes the given parts with the current voice settings
// and stores the result.
func (s *Store) GenerateMerged(ctx context.Context, texts []string) (*SynthesizeResult, error) {
	config := s.Config()
	result, err := s.client.SynthesizeMerged(ctx, MergedParams{
		Texts:    texts,
		Language: config.Language,
		VoiceID:  config.VoiceID,
		Speed:    config.Speed,
		Pitch:    config.Pitch,
		Mode:     config.Mode,
		Folder:   config.Folder,
	})
	if err != nil {
		logrus.WithError(err).Error("failed to generate merged audio")
		return nil, err
	}

	s.mu.Lock()
	s.result = result
	s.mu.Unlock()
	return result, nil
}

// RateCurrent persists a rating for the current result.
func (s *Store) RateCurrent(ctx context.Context, rating int) (*models.TtsRecord, error) {
	result := s.CurrentResult()
	if result == nil {
		return nil, &APIError{Status: 0, Message: "no current result"}
	}
	return s.client.UpdateRating(ctx, result.ID, rating)
}

// LoadLibrary fetches a history page and keeps it as the current library view.
func (s *Store) LoadLibrary(ctx context.Context, query HistoryQuery) (*models.HistoryPage, error) {
	page, err := s.client.History(ctx, query)
	if err != nil {
		logrus.WithError(err).Error("failed to load library")
		return nil, err
	}

	s.mu.Lock()
	s.library = page
	s.mu.Unlock()
	return page, nil
}

// Folders lists the folder labels, falling back to an empty list when the
// request fails so the UI can still render.
func (s *Store) Folders(ctx context.Context) []string {
	folders, err := s.client.Folders(ctx)
	if err != nil {
		logrus.WithError(err).Warn("failed to load folders")
		return []string{}
	}
	return folders
}
