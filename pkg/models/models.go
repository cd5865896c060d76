package models

import (
	"time"
)

// User represents a registered user
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Corpus represents a named collection of speech records
type Corpus struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SpeechRecord is one raw ingested record: who said what, and when.
// Week is derived from SpokenAt (ISO week, 1-53).
type SpeechRecord struct {
	ID       string    `json:"id"`
	CorpusID string    `json:"corpus_id"`
	Speaker  string    `json:"speaker"`
	Text     string    `json:"text"`
	SpokenAt time.Time `json:"spoken_at"`
	Week     int       `json:"week"`
}

// ComparisonRecord is one row of the long-format comparison table:
// how close one group scored to the reference group under one method.
type ComparisonRecord struct {
	Group  string  `json:"group"`
	Score  float64 `json:"score"`
	Method string  `json:"method"`
}

// WeeklyScore is a ComparisonRecord bucketed by ISO week. Score is a
// pointer so a week without a reference document can carry an explicit
// null when the caller asks for one.
type WeeklyScore struct {
	Week   int      `json:"week"`
	Group  string   `json:"group"`
	Score  *float64 `json:"score"`
	Method string   `json:"method"`
}

// ReadabilitySummary holds per-speaker summary statistics for one
// readability method across all of the speaker's documents.
type ReadabilitySummary struct {
	Speaker    string  `json:"speaker"`
	Method     string  `json:"method"`
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"std_dev"`
	SampleSize int     `json:"sample_size"`
	StdErr     float64 `json:"std_err"`
	CILower    float64 `json:"ci_lower"`
	CIUpper    float64 `json:"ci_upper"`
}

// GroupKeywords lists the highest-weighted terms for one group,
// useful alongside comparison scores when interpreting results.
type GroupKeywords struct {
	Group    string   `json:"group"`
	Keywords []string `json:"keywords"`
}
