package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Speech represents one ingested speech record
type Speech struct {
	ID        uuid.UUID
	CorpusID  uuid.UUID
	Speaker   string
	Text      string
	SpokenAt  time.Time
	Week      int
	CreatedAt time.Time
}

// SpeechRepository defines the interface for speech storage operations
type SpeechRepository interface {
	Create(ctx context.Context, speech *Speech) error
	CreateBatch(ctx context.Context, speeches []*Speech) error
	GetByID(ctx context.Context, id uuid.UUID) (*Speech, error)
	GetByCorpusID(ctx context.Context, corpusID uuid.UUID) ([]*Speech, error)
	GetBySpeaker(ctx context.Context, corpusID uuid.UUID, speaker string) ([]*Speech, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByCorpusID(ctx context.Context, corpusID uuid.UUID) error
}

// PostgresSpeechRepository implements SpeechRepository using PostgreSQL
type PostgresSpeechRepository struct {
	db *sql.DB
}

// NewPostgresSpeechRepository creates a new PostgresSpeechRepository
func NewPostgresSpeechRepository(db *sql.DB) *PostgresSpeechRepository {
	return &PostgresSpeechRepository{db: db}
}

// Create inserts a new speech record into the database
func (r *PostgresSpeechRepository) Create(ctx context.Context, speech *Speech) error {
	if speech.ID == uuid.Nil {
		speech.ID = uuid.New()
	}
	if speech.CreatedAt.IsZero() {
		speech.CreatedAt = time.Now()
	}
	if speech.Week == 0 && !speech.SpokenAt.IsZero() {
		_, speech.Week = speech.SpokenAt.ISOWeek()
	}

	query := `
		INSERT INTO speeches (id, corpus_id, speaker, text, spoken_at, week, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		speech.ID,
		speech.CorpusID,
		speech.Speaker,
		speech.Text,
		speech.SpokenAt,
		speech.Week,
		speech.CreatedAt,
	)

	return err
}

// CreateBatch inserts multiple speech records in a single transaction
func (r *PostgresSpeechRepository) CreateBatch(ctx context.Context, speeches []*Speech) error {
	if len(speeches) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO speeches (id, corpus_id, speaker, text, spoken_at, week, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, speech := range speeches {
		if speech.ID == uuid.Nil {
			speech.ID = uuid.New()
		}
		if speech.CreatedAt.IsZero() {
			speech.CreatedAt = time.Now()
		}
		if speech.Week == 0 && !speech.SpokenAt.IsZero() {
			_, speech.Week = speech.SpokenAt.ISOWeek()
		}

		_, err := stmt.ExecContext(ctx,
			speech.ID,
			speech.CorpusID,
			speech.Speaker,
			speech.Text,
			speech.SpokenAt,
			speech.Week,
			speech.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetByID retrieves a speech record by its ID
func (r *PostgresSpeechRepository) GetByID(ctx context.Context, id uuid.UUID) (*Speech, error) {
	query := `
		SELECT id, corpus_id, speaker, text, spoken_at, week, created_at
		FROM speeches
		WHERE id = $1
	`

	speech := &Speech{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&speech.ID,
		&speech.CorpusID,
		&speech.Speaker,
		&speech.Text,
		&speech.SpokenAt,
		&speech.Week,
		&speech.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return speech, nil
}

// GetByCorpusID retrieves all speech records for a corpus
func (r *PostgresSpeechRepository) GetByCorpusID(ctx context.Context, corpusID uuid.UUID) ([]*Speech, error) {
	query := `
		SELECT id, corpus_id, speaker, text, spoken_at, week, created_at
		FROM speeches
		WHERE corpus_id = $1
		ORDER BY spoken_at ASC
	`

	return r.query(ctx, query, corpusID)
}

// GetBySpeaker retrieves all speech records for one speaker in a corpus
func (r *PostgresSpeechRepository) GetBySpeaker(ctx context.Context, corpusID uuid.UUID, speaker string) ([]*Speech, error) {
	query := `
		SELECT id, corpus_id, speaker, text, spoken_at, week, created_at
		FROM speeches
		WHERE corpus_id = $1 AND speaker = $2
		ORDER BY spoken_at ASC
	`

	return r.query(ctx, query, corpusID, speaker)
}

func (r *PostgresSpeechRepository) query(ctx context.Context, query string, args ...interface{}) ([]*Speech, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var speeches []*Speech
	for rows.Next() {
		speech := &Speech{}
		err := rows.Scan(
			&speech.ID,
			&speech.CorpusID,
			&speech.Speaker,
			&speech.Text,
			&speech.SpokenAt,
			&speech.Week,
			&speech.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		speeches = append(speeches, speech)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return speeches, nil
}

// Delete removes a speech record from the database
func (r *PostgresSpeechRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM speeches WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// DeleteByCorpusID removes all speech records for a corpus
func (r *PostgresSpeechRepository) DeleteByCorpusID(ctx context.Context, corpusID uuid.UUID) error {
	query := `DELETE FROM speeches WHERE corpus_id = $1`
	_, err := r.db.ExecContext(ctx, query, corpusID)
	return err
}
