package api

import (
	"encoding/json"
	"net/http"

	"github.com/martin1reich-code/voicelab/internal/models"
)

// GET /user/settings - read the settings singleton, creating defaults lazily
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// PUT /user/settings - partial update of the settings row
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var input models.UserSettingsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := h.settings.Update(input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// PUT /user/api-keys - update only the provider keys
func (h *Handler) UpdateAPIKeys(w http.ResponseWriter, r *http.Request) {
	var keys models.APIKeysInput
	if err := json.NewDecoder(r.Body).Decode(&keys); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := h.settings.UpdateAPIKeys(keys)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// PUT /user/preferences - update only the default synthesis preferences
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var prefs models.PreferencesInput
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := h.settings.UpdatePreferences(prefs)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}
