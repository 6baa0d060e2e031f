package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/martin1reich-code/voicelab/internal/models"
)

// GET /tts/history - filtered, sorted, paginated record history
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filters := models.HistoryFilters{
		SortBy:    query.Get("sortBy"),
		SortOrder: query.Get("sortOrder"),
	}

	if folder := query.Get("folder"); query.Has("folder") {
		filters.Folder = &folder
	}
	if query.Has("isFavorite") {
		isFavorite := query.Get("isFavorite") == "true"
		filters.IsFavorite = &isFavorite
	}
	if language := query.Get("language"); query.Has("language") {
		filters.Language = &language
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil {
		filters.Limit = limit
	}
	if offset, err := strconv.Atoi(query.Get("offset")); err == nil {
		filters.Offset = offset
	}

	page, err := h.records.History(filters)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// GET /tts/folders - distinct folder labels
func (h *Handler) GetFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := h.records.Folders()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, folders)
}

// GET /tts/statistics - history summary
func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.records.Statistics()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// GET /tts/record/{id} - fetch one record
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	record, err := h.records.Get(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// PUT /tts/record/{id} - partial update of title, rating, favorite, folder
func (h *Handler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	var input models.UpdateTtsRecordInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.records.Update(mux.Vars(r)["id"], input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// PUT /tts/record/{id}/rating - set the rating
func (h *Handler) UpdateRating(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Rating int `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.records.UpdateRating(mux.Vars(r)["id"], body.Rating)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// PUT /tts/record/{id}/favorite - flip the favorite flag
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	record, err := h.records.ToggleFavorite(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// DELETE /tts/record/{id} - delete the record and its audio file
func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := h.records.Delete(mux.Vars(r)["id"], true); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
