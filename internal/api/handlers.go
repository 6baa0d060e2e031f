package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/martin1reich-code/voicelab/internal/services"
	"github.com/martin1reich-code/voicelab/internal/storage"
)

// Handler routes API requests to the TTS, record and settings services.
type Handler struct {
	tts      *services.TTSService
	records  *services.RecordService
	settings *services.SettingsService
	audio    *storage.Store

	// voicesLanguage narrows GET /voices when the request has no language
	// parameter. Empty means all languages.
	voicesLanguage string
}

func New(tts *services.TTSService, records *services.RecordService,
	settings *services.SettingsService, audio *storage.Store, voicesLanguage string) *Handler {
	return &Handler{
		tts:            tts,
		records:        records,
		settings:       settings,
		audio:          audio,
		voicesLanguage: voicesLanguage,
	}
}

// RegisterRoutes attaches every API route to the given router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/synthesize", h.Synthesize).Methods("POST")
	r.HandleFunc("/synthesize/merged", h.SynthesizeMerged).Methods("POST")
	r.HandleFunc("/voices", h.ListVoices).Methods("GET")
	r.HandleFunc("/audio/{filename}", h.ServeAudio).Methods("GET")

	r.HandleFunc("/tts/history", h.GetHistory).Methods("GET")
	r.HandleFunc("/tts/folders", h.GetFolders).Methods("GET")
	r.HandleFunc("/tts/statistics", h.GetStatistics).Methods("GET")
	r.HandleFunc("/tts/record/{id}", h.GetRecord).Methods("GET")
	r.HandleFunc("/tts/record/{id}", h.UpdateRecord).Methods("PUT")
	r.HandleFunc("/tts/record/{id}", h.DeleteRecord).Methods("DELETE")
	r.HandleFunc("/tts/record/{id}/rating", h.UpdateRating).Methods("PUT")
	r.HandleFunc("/tts/record/{id}/favorite", h.ToggleFavorite).Methods("PUT")

	r.HandleFunc("/user/settings", h.GetSettings).Methods("GET")
	r.HandleFunc("/user/settings", h.UpdateSettings).Methods("PUT")
	r.HandleFunc("/user/api-keys", h.UpdateAPIKeys).Methods("PUT")
	r.HandleFunc("/user/preferences", h.UpdatePreferences).Methods("PUT")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps service errors onto HTTP statuses: validation
// failures are 400, unknown ids 404, everything else 500 with the message
// passed through verbatim.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case services.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logrus.WithError(err).Error("request failed")
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
