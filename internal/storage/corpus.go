package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Corpus represents a named collection of speeches owned by a user
type Corpus struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CorpusRepository defines the interface for corpus storage operations
type CorpusRepository interface {
	Create(ctx context.Context, corpus *Corpus) error
	GetByID(ctx context.Context, id uuid.UUID) (*Corpus, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*Corpus, error)
	Update(ctx context.Context, corpus *Corpus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PostgresCorpusRepository implements CorpusRepository using PostgreSQL
type PostgresCorpusRepository struct {
	db *sql.DB
}

// NewPostgresCorpusRepository creates a new PostgresCorpusRepository
func NewPostgresCorpusRepository(db *sql.DB) *PostgresCorpusRepository {
	return &PostgresCorpusRepository{db: db}
}

// Create inserts a new corpus into the database
func (r *PostgresCorpusRepository) Create(ctx context.Context, corpus *Corpus) error {
	if corpus.ID == uuid.Nil {
		corpus.ID = uuid.New()
	}

	now := time.Now()
	if corpus.CreatedAt.IsZero() {
		corpus.CreatedAt = now
	}
	if corpus.UpdatedAt.IsZero() {
		corpus.UpdatedAt = now
	}

	query := `
		INSERT INTO corpora (id, user_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		corpus.ID,
		corpus.UserID,
		corpus.Name,
		corpus.CreatedAt,
		corpus.UpdatedAt,
	)

	return err
}

// GetByID retrieves a corpus by its ID
func (r *PostgresCorpusRepository) GetByID(ctx context.Context, id uuid.UUID) (*Corpus, error) {
	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM corpora
		WHERE id = $1
	`

	corpus := &Corpus{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&corpus.ID,
		&corpus.UserID,
		&corpus.Name,
		&corpus.CreatedAt,
		&corpus.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return corpus, nil
}

// GetByUserID retrieves all corpora for a user
func (r *PostgresCorpusRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*Corpus, error) {
	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM corpora
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var corpora []*Corpus
	for rows.Next() {
		corpus := &Corpus{}
		err := rows.Scan(
			&corpus.ID,
			&corpus.UserID,
			&corpus.Name,
			&corpus.CreatedAt,
			&corpus.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		corpora = append(corpora, corpus)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return corpora, nil
}

// Update modifies an existing corpus
func (r *PostgresCorpusRepository) Update(ctx context.Context, corpus *Corpus) error {
	corpus.UpdatedAt = time.Now()

	query := `
		UPDATE corpora
		SET name = $2, updated_at = $3
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		corpus.ID,
		corpus.Name,
		corpus.UpdatedAt,
	)

	return err
}

// Delete removes a corpus from the database
func (r *PostgresCorpusRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM corpora WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
