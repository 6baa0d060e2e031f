package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/martin1reich-code/voicelab/internal/services"
	"github.com/martin1reich-code/voicelab/internal/storage"
)

// SynthesizeRequest is the body of POST /synthesize.
type SynthesizeRequest struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	VoiceID  string  `json:"voiceId"`
	Speed    float64 `json:"speed"`
	Pitch    float64 `json:"pitch"`
	Mode     string  `json:"mode"`
	Folder   *string `json:"folder"`
}

// MergedSynthesizeRequest is the body of POST /synthesize/merged.
type MergedSynthesizeRequest struct {
	Texts    []string `json:"texts"`
	Language string   `json:"language"`
	VoiceID  string   `json:"voiceId"`
	Speed    float64  `json:"speed"`
	Pitch    float64  `json:"pitch"`
	Mode     string   `json:"mode"`
	Folder   *string  `json:"folder"`
}

// SynthesizeResponse is returned by both synthesize endpoints.
type SynthesizeResponse struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	AudioPath  string `json:"audioPath"`
	PartsCount int    `json:"partsCount,omitempty"`
	Success    bool   `json:"success"`
}

// POST /synthesize - generate audio for one text and persist a record
func (h *Handler) Synthesize(w http.ResponseWriter, r *http.Request) {
	var req SynthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.tts.Synthesize(r.Context(), services.SynthesizeInput{
		Text:     req.Text,
		Language: req.Language,
		VoiceID:  req.VoiceID,
		Speed:    req.Speed,
		Pitch:    req.Pitch,
		Mode:     req.Mode,
		Folder:   req.Folder,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SynthesizeResponse{
		ID:        result.Record.ID,
		Title:     result.Record.Title,
		AudioPath: "/api/audio/" + result.FileName,
		Success:   true,
	})
}

// POST /synthesize/merged - generate several parts, concatenate, one record
func (h *Handler) SynthesizeMerged(w http.ResponseWriter, r *http.Request) {
	var req MergedSynthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.tts.SynthesizeMerged(r.Context(), req.Texts, services.SynthesizeInput{
		Language: req.Language,
		VoiceID:  req.VoiceID,
		Speed:    req.Speed,
		Pitch:    req.Pitch,
		Mode:     req.Mode,
		Folder:   req.Folder,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SynthesizeResponse{
		ID:         result.Record.ID,
		Title:      result.Record.Title,
		AudioPath:  "/api/audio/" + result.FileName,
		PartsCount: result.PartsCount,
		Success:    true,
	})
}

// GET /voices - list selectable vendor voices
func (h *Handler) ListVoices(w http.ResponseWriter, r *http.Request) {
	language := r.URL.Query().Get("language")
	if language == "" {
		language = h.voicesLanguage
	}

	voices, err := h.tts.Voices(r.Context(), language)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, voices)
}

// GET /audio/{filename} - stream a stored audio file
func (h *Handler) ServeAudio(w http.ResponseWriter, r *http.Request) {
	fileName := mux.Vars(r)["filename"]

	fullPath, err := h.audio.Resolve(fileName)
	if errors.Is(err, storage.ErrOutsideDir) {
		writeError(w, http.StatusForbidden, "access denied")
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		writeError(w, http.StatusNotFound, "file not found")
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFile(w, r, fullPath)
}
