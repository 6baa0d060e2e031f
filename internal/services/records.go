package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/martin1reich-code/voicelab/internal/database"
	"github.com/martin1reich-code/voicelab/internal/models"
	"github.com/martin1reich-code/voicelab/internal/storage"
)

// RecordService owns the tts_records table and the audio files the rows
// point at.
type RecordService struct {
	db    *database.DB
	audio *storage.Store
}

func NewRecordService(db *database.DB, audio *storage.Store) *RecordService {
	return &RecordService{db: db, audio: audio}
}

// Create inserts a new record. The caller must have written the audio file
// before calling; the row is never inserted ahead of its file.
func (s *RecordService) Create(record *models.TtsRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Provider == "" {
		record.Provider = "google"
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO tts_records (id, title, original_text, ssml_text, language, voice_id, mode,
			speed, pitch, audio_file_path, duration, folder, provider, rating, is_favorite, created_at)
		VALUES (:id, :title, :original_text, :ssml_text, :language, :voice_id, :mode,
			:speed, :pitch, :audio_file_path, :duration, :folder, :provider, :rating, :is_favorite, :created_at)
	`

	if _, err := s.db.NamedExec(query, record); err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}

	logrus.WithField("id", record.ID).Info("tts record created")
	return nil
}

// Get retrieves a single record by id.
func (s *RecordService) Get(id string) (*models.TtsRecord, error) {
	var record models.TtsRecord
	query := `SELECT * FROM tts_records WHERE id = ?`

	err := s.db.Get(&record, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	return &record, nil
}

// sortColumns whitelists the sortable fields of the history query.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"title":     "title",
	"rating":    "rating",
}

// History returns one filtered, sorted page of records plus a total count
// computed with the same predicate. The two queries are not wrapped in a
// transaction; a concurrent insert may or may not show up in the total.
func (s *RecordService) History(filters models.HistoryFilters) (*models.HistoryPage, error) {
	where := make([]string, 0, 3)
	args := make([]any, 0, 3)

	if filters.Folder != nil {
		where = append(where, "folder = ?")
		args = append(args, *filters.Folder)
	}
	if filters.IsFavorite != nil {
		where = append(where, "is_favorite = ?")
		args = append(args, *filters.IsFavorite)
	}
	if filters.Language != nil {
		where = append(where, "language = ?")
		args = append(args, *filters.Language)
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	sortColumn, ok := sortColumns[filters.SortBy]
	if !ok {
		sortColumn = "created_at"
	}
	sortOrder := "DESC"
	if strings.EqualFold(filters.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filters.Offset
	if offset < 0 {
		offset = 0
	}

	records := []models.TtsRecord{}
	pageQuery := fmt.Sprintf(`SELECT * FROM tts_records%s ORDER BY %s %s LIMIT ? OFFSET ?`,
		whereClause, sortColumn, sortOrder)
	if err := s.db.Select(&records, pageQuery, append(args, limit, offset)...); err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM tts_records` + whereClause
	if err := s.db.Get(&total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count history: %w", err)
	}

	return &models.HistoryPage{
		Records: records,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+limit < total,
	}, nil
}

// Folders lists the distinct folder labels in use.
func (s *RecordService) Folders() ([]string, error) {
	folders := []string{}
	query := `SELECT DISTINCT folder FROM tts_records WHERE folder IS NOT NULL ORDER BY folder`

	if err := s.db.Select(&folders, query); err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}

	return folders, nil
}

// UpdateRating sets a record's rating, rejecting values outside 0..5.
func (s *RecordService) UpdateRating(id string, rating int) (*models.TtsRecord, error) {
	if rating < 0 || rating > 5 {
		return nil, Validationf("rating must be between 0 and 5")
	}

	result, err := s.db.Exec(`UPDATE tts_records SET rating = ? WHERE id = ?`, rating, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update rating: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, ErrNotFound
	}

	logrus.WithFields(logrus.Fields{"id": id, "rating": rating}).Info("rating updated")
	return s.Get(id)
}

// ToggleFavorite flips the favorite flag. The read and write are separate
// statements; concurrent toggles are last-write-wins.
func (s *RecordService) ToggleFavorite(id string) (*models.TtsRecord, error) {
	record, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if _, err := s.db.Exec(`UPDATE tts_records SET is_favorite = ? WHERE id = ?`, !record.IsFavorite, id); err != nil {
		return nil, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	return s.Get(id)
}

// Update applies a partial update of the mutable record fields.
func (s *RecordService) Update(id string, input models.UpdateTtsRecordInput) (*models.TtsRecord, error) {
	set := make([]string, 0, 4)
	args := make([]any, 0, 5)

	if input.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *input.Title)
	}
	if input.Rating != nil {
		if *input.Rating < 0 || *input.Rating > 5 {
			return nil, Validationf("rating must be between 0 and 5")
		}
		set = append(set, "rating = ?")
		args = append(args, *input.Rating)
	}
	if input.IsFavorite != nil {
		set = append(set, "is_favorite = ?")
		args = append(args, *input.IsFavorite)
	}
	if input.Folder != nil {
		set = append(set, "folder = ?")
		args = append(args, *input.Folder)
	}

	if len(set) == 0 {
		return s.Get(id)
	}

	query := fmt.Sprintf(`UPDATE tts_records SET %s WHERE id = ?`, strings.Join(set, ", "))
	result, err := s.db.Exec(query, append(args, id)...)
	if err != nil {
		return nil, fmt.Errorf("failed to update record: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, ErrNotFound
	}

	return s.Get(id)
}

// Delete removes a record and, when deleteFile is set, its audio file. File
// deletion failures are logged and swallowed; the row is removed regardless,
// after the file deletion attempt.
func (s *RecordService) Delete(id string, deleteFile bool) error {
	record, err := s.Get(id)
	if err != nil {
		return err
	}

	if deleteFile && record.AudioFilePath != "" {
		if err := s.audio.Remove(record.AudioFilePath); err != nil {
			logrus.WithError(err).WithField("path", record.AudioFilePath).
				Warn("could not delete audio file")
		} else {
			logrus.WithField("path", record.AudioFilePath).Info("audio file deleted")
		}
	}

	if _, err := s.db.Exec(`DELETE FROM tts_records WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	logrus.WithField("id", id).Info("tts record deleted")
	return nil
}

// Statistics summarizes the history: counts, average rating over rated rows
// and the five best rated records.
func (s *RecordService) Statistics() (*models.Statistics, error) {
	stats := &models.Statistics{TopRatedRecords: []models.RatedRecord{}}

	if err := s.db.Get(&stats.TotalRecords, `SELECT COUNT(*) FROM tts_records`); err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}
	if err := s.db.Get(&stats.FavoriteCount, `SELECT COUNT(*) FROM tts_records WHERE is_favorite = TRUE`); err != nil {
		return nil, fmt.Errorf("failed to count favorites: %w", err)
	}
	if err := s.db.Get(&stats.RatedCount, `SELECT COUNT(*) FROM tts_records WHERE rating > 0`); err != nil {
		return nil, fmt.Errorf("failed to count rated records: %w", err)
	}

	if stats.RatedCount > 0 {
		var avg float64
		if err := s.db.Get(&avg, `SELECT AVG(rating) FROM tts_records WHERE rating > 0`); err != nil {
			return nil, fmt.Errorf("failed to average ratings: %w", err)
		}
		stats.AverageRating = float64(int(avg*100+0.5)) / 100
	}

	topQuery := `SELECT id, title, rating FROM tts_records WHERE rating > 0 ORDER BY rating DESC LIMIT 5`
	if err := s.db.Select(&stats.TopRatedRecords, topQuery); err != nil {
		return nil, fmt.Errorf("failed to query top rated records: %w", err)
	}

	return stats, nil
}
