// Package client is a typed client for the voicelab HTTP API plus a state
// container mirroring what the browser UI keeps in memory.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/martin1reich-code/voicelab/internal/models"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error (%d)", e.Status)
}

// Client calls the voicelab JSON API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for a server base URL, e.g. "http://localhost:3000/api".
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var errBody struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil {
			apiErr.Message = errBody.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// SynthesizeParams are the inputs of one synthesis call.
type SynthesizeParams struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	VoiceID  string  `json:"voiceId"`
	Speed    float64 `json:"speed"`
	Pitch    float64 `json:"pitch"`
	Mode     string  `json:"mode"`
	Folder   *string `json:"folder,omitempty"`
}

// SynthesizeResult is the server's answer to a synthesize call.
type SynthesizeResult struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	AudioPath  string `json:"audioPath"`
	PartsCount int    `json:"partsCount"`
	Success    bool   `json:"success"`
}

// Synthesize generates audio for one text.
func (c *Client) Synthesize(ctx context.Context, params SynthesizeParams) (*SynthesizeResult, error) {
	var result SynthesizeResult
	if err := c.do(ctx, http.MethodPost, "/synthesize", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MergedParams are the inputs of one merged synthesis call.
type MergedParams struct {
	Texts    []string `json:"texts"`
	Language string   `json:"language"`
	VoiceID  string   `json:"voiceId"`
	Speed    float64  `json:"speed"`
	Pitch    float64  `json:"pitch"`
	Mode     string   `json:"mode"`
	Folder   *string  `json:"folder,omitempty"`
}

// SynthesizeMerged generates one merged audio from several text parts.
func (c *Client) SynthesizeMerged(ctx context.Context, params MergedParams) (*SynthesizeResult, error) {
	var result SynthesizeResult
	if err := c.do(ctx, http.MethodPost, "/synthesize/merged", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Voices lists the selectable voices, optionally narrowed to one language.
func (c *Client) Voices(ctx context.Context, language string) ([]models.Voice, error) {
	path := "/voices"
	if language != "" {
		path += "?language=" + url.QueryEscape(language)
	}
	var voices []models.Voice
	if err := c.do(ctx, http.MethodGet, path, nil, &voices); err != nil {
		return nil, err
	}
	return voices, nil
}

// DownloadAudio fetches the raw MP3 bytes behind an audioPath like
// "/api/audio/xyz.mp3" or a bare file name.
func (c *Client) DownloadAudio(ctx context.Context, audioPath string) ([]byte, error) {
	fileName := audioPath[strings.LastIndex(audioPath, "/")+1:]

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/audio/"+url.PathEscape(fileName), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode}
	}

	return io.ReadAll(resp.Body)
}

// HistoryQuery selects a page of record history.
type HistoryQuery struct {
	Folder     *string
	IsFavorite *bool
	Language   *string
	SortBy     string
	SortOrder  string
	Limit      int
	Offset     int
}

// History fetches a filtered page of records.
func (c *Client) History(ctx context.Context, query HistoryQuery) (*models.HistoryPage, error) {
	values := url.Values{}
	if query.Folder != nil {
		values.Set("folder", *query.Folder)
	}
	if query.IsFavorite != nil {
		values.Set("isFavorite", strconv.FormatBool(*query.IsFavorite))
	}
	if query.Language != nil {
		values.Set("language", *query.Language)
	}
	if query.SortBy != "" {
		values.Set("sortBy", query.SortBy)
	}
	if query.SortOrder != "" {
		values.Set("sortOrder", query.SortOrder)
	}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Offset > 0 {
		values.Set("offset", strconv.Itoa(query.Offset))
	}

	path := "/tts/history"
	if encoded := values.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var page models.HistoryPage
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetRecord fetches one record by id.
func (c *Client) GetRecord(ctx context.Context, id string) (*models.TtsRecord, error) {
	var record models.TtsRecord
	if err := c.do(ctx, http.MethodGet, "/tts/record/"+url.PathEscape(id), nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateRecord applies a partial update to one record.
func (c *Client) UpdateRecord(ctx context.Context, id string, input models.UpdateTtsRecordInput) (*models.TtsRecord, error) {
	var record models.TtsRecord
	if err := c.do(ctx, http.MethodPut, "/tts/record/"+url.PathEscape(id), input, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateRating sets the rating of one record.
func (c *Client) UpdateRating(ctx context.Context, id string, rating int) (*models.TtsRecord, error) {
	var record models.TtsRecord
	body := map[string]int{"rating": rating}
	if err := c.do(ctx, http.MethodPut, "/tts/record/"+url.PathEscape(id)+"/rating", body, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// ToggleFavorite flips the favorite flag of one record.
func (c *Client) ToggleFavorite(ctx context.Context, id string) (*models.TtsRecord, error) {
	var record models.TtsRecord
	if err := c.do(ctx, http.MethodPut, "/tts/record/"+url.PathEscape(id)+"/favorite", nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteRecord removes one record and its audio file.
func (c *Client) DeleteRecord(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tts/record/"+url.PathEscape(id), nil, nil)
}

// Folders lists the distinct folder labels in use.
func (c *Client) Folders(ctx context.Context) ([]string, error) {
	var folders []string
	if err := c.do(ctx, http.MethodGet, "/tts/folders", nil, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

// Statistics fetches the history summary.
func (c *Client) Statistics(ctx context.Context) (*models.Statistics, error) {
	var stats models.Statistics
	if err := c.do(ctx, http.MethodGet, "/tts/statistics", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Settings fetches the user settings singleton.
func (c *Client) Settings(ctx context.Context) (*models.UserSettings, error) {
	var settings models.UserSettings
	if err := c.do(ctx, http.MethodGet, "/user/settings", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings applies a partial settings update.
func (c *Client) UpdateSettings(ctx context.Context, input models.UserSettingsInput) (*models.UserSettings, error) {
	var settings models.UserSettings
	if err := c.do(ctx, http.MethodPut, "/user/settings", input, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateAPIKeys updates only the stored provider keys.
func (c *Client) UpdateAPIKeys(ctx context.Context, keys models.APIKeysInput) (*models.UserSettings, error) {
	var settings models.UserSettings
	if err := c.do(ctx, http.MethodPut, "/user/api-keys", keys, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdatePreferences updates only the default synthesis preferences.
func (c *Client) UpdatePreferences(ctx context.Context, prefs models.PreferencesInput) (*models.UserSettings, error) {
	var settings models.UserSettings
	if err := c.do(ctx, http.MethodPut, "/user/preferences", prefs, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}
