package models

import "time"

// Synthesis modes supported by the request builder.
const (
	ModeBasic      = "basic"
	ModeManualSSML = "manual-ssml"
	ModeAutoSSML   = "auto-ssml"
)

// IsSSMLMode reports whether the given mode treats input text as SSML markup.
func IsSSMLMode(mode string) bool {
	return mode == ModeManualSSML || mode == ModeAutoSSML
}

// TtsRecord is one persisted synthesis result and the location of its audio file.
type TtsRecord struct {
	ID            string    `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	OriginalText  string    `json:"originalText" db:"original_text"`
	SsmlText      *string   `json:"ssmlText" db:"ssml_text"` // set only for non-basic modes
	Language      string    `json:"language" db:"language"`
	VoiceID       string    `json:"voiceId" db:"voice_id"`
	Mode          string    `json:"mode" db:"mode"`
	Speed         float64   `json:"speed" db:"speed"`
	Pitch         float64   `json:"pitch" db:"pitch"`
	AudioFilePath string    `json:"audioFilePath" db:"audio_file_path"`
	Duration      float64   `json:"duration" db:"duration"` // seconds; the vendor API does not report it
	Folder        *string   `json:"folder" db:"folder"`
	Provider      string    `json:"provider" db:"provider"`
	Rating        int       `json:"rating" db:"rating"`
	IsFavorite    bool      `json:"isFavorite" db:"is_favorite"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// UpdateTtsRecordInput carries the mutable fields of a record. Nil fields are
// left untouched.
type UpdateTtsRecordInput struct {
	Title      *string `json:"title"`
	Rating     *int    `json:"rating"`
	IsFavorite *bool   `json:"isFavorite"`
	Folder     *string `json:"folder"`
}

// HistoryFilters selects and orders a page of the record history. All filter
// fields are optional and combined with AND.
type HistoryFilters struct {
	Folder     *string
	IsFavorite *bool
	Language   *string
	SortBy     string // createdAt, title or rating
	SortOrder  string // asc or desc
	Limit      int
	Offset     int
}

// HistoryPage is one page of record history plus pagination metadata.
type HistoryPage struct {
	Records []TtsRecord `json:"records"`
	Total   int         `json:"total"`
	Limit   int         `json:"limit"`
	Offset  int         `json:"offset"`
	HasMore bool        `json:"hasMore"`
}

// RatedRecord is the compact shape used in statistics listings.
type RatedRecord struct {
	ID     string `json:"id" db:"id"`
	Title  string `json:"title" db:"title"`
	Rating int    `json:"rating" db:"rating"`
}

// Statistics summarizes the record history.
type Statistics struct {
	TotalRecords    int           `json:"totalRecords"`
	FavoriteCount   int           `json:"favoriteCount"`
	RatedCount      int           `json:"ratedCount"`
	AverageRating   float64       `json:"averageRating"`
	TopRatedRecords []RatedRecord `json:"topRatedRecords"`
}
