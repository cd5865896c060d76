package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// GroupVector is a persisted term-frequency vector for one document
// group, aligned to the vocabulary recorded at build time. Storing the
// vectors lets later runs compare a fresh corpus against stored groups
// without re-tokenizing the originals.
type GroupVector struct {
	ID        uuid.UUID
	CorpusID  uuid.UUID
	GroupKey  string
	Vector    pgvector.Vector
	CreatedAt time.Time
}

// GroupVectorWithSimilarity pairs a stored group vector with its
// cosine similarity to a probe vector.
type GroupVectorWithSimilarity struct {
	GroupVector *GroupVector
	Similarity  float64
}

// GroupVectorRepository defines the interface for group vector storage
type GroupVectorRepository interface {
	Upsert(ctx context.Context, gv *GroupVector) error
	GetByGroup(ctx context.Context, corpusID uuid.UUID, groupKey string) (*GroupVector, error)
	GetByCorpusID(ctx context.Context, corpusID uuid.UUID) ([]*GroupVector, error)
	FindNearest(ctx context.Context, corpusID uuid.UUID, vector pgvector.Vector, limit int) ([]*GroupVectorWithSimilarity, error)
	DeleteByCorpusID(ctx context.Context, corpusID uuid.UUID) error
}

// PostgresGroupVectorRepository implements GroupVectorRepository using
// PostgreSQL with pgvector
type PostgresGroupVectorRepository struct {
	db *sql.DB
}

// NewPostgresGroupVectorRepository creates a new PostgresGroupVectorRepository
func NewPostgresGroupVectorRepository(db *sql.DB) *PostgresGroupVectorRepository {
	return &PostgresGroupVectorRepository{db: db}
}

// Upsert inserts or replaces the vector for a (corpus, group) pair
func (r *PostgresGroupVectorRepository) Upsert(ctx context.Context, gv *GroupVector) error {
	if gv.ID == uuid.Nil {
		gv.ID = uuid.New()
	}
	if gv.CreatedAt.IsZero() {
		gv.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO group_vectors (id, corpus_id, group_key, vector, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (corpus_id, group_key)
		DO UPDATE SET vector = EXCLUDED.vector, created_at = EXCLUDED.created_at
	`

	_, err := r.db.ExecContext(ctx, query,
		gv.ID,
		gv.CorpusID,
		gv.GroupKey,
		gv.Vector,
		gv.CreatedAt,
	)

	return err
}

// GetByGroup retrieves the stored vector for one group
func (r *PostgresGroupVectorRepository) GetByGroup(ctx context.Context, corpusID uuid.UUID, groupKey string) (*GroupVector, error) {
	query := `
		SELECT id, corpus_id, group_key, vector, created_at
		FROM group_vectors
		WHERE corpus_id = $1 AND group_key = $2
	`

	gv := &GroupVector{}
	err := r.db.QueryRowContext(ctx, query, corpusID, groupKey).Scan(
		&gv.ID,
		&gv.CorpusID,
		&gv.GroupKey,
		&gv.Vector,
		&gv.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return gv, nil
}

// GetByCorpusID retrieves all stored group vectors for a corpus
func (r *PostgresGroupVectorRepository) GetByCorpusID(ctx context.Context, corpusID uuid.UUID) ([]*GroupVector, error) {
	query := `
		SELECT id, corpus_id, group_key, vector, created_at
		FROM group_vectors
		WHERE corpus_id = $1
		ORDER BY group_key ASC
	`

	rows, err := r.db.QueryContext(ctx, query, corpusID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vectors []*GroupVector
	for rows.Next() {
		gv := &GroupVector{}
		err := rows.Scan(
			&gv.ID,
			&gv.CorpusID,
			&gv.GroupKey,
			&gv.Vector,
			&gv.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, gv)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return vectors, nil
}

// FindNearest returns the stored groups closest to the probe vector by
// pgvector cosine distance, nearest first
func (r *PostgresGroupVectorRepository) FindNearest(ctx context.Context, corpusID uuid.UUID, vector pgvector.Vector, limit int) ([]*GroupVectorWithSimilarity, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, corpus_id, group_key, vector, created_at,
			   1 - (vector <=> $2) as similarity
		FROM group_vectors
		WHERE corpus_id = $1
		ORDER BY vector <=> $2
		LIMIT $3
	`

	rows, err := r.db.QueryContext(ctx, query, corpusID, vector, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*GroupVectorWithSimilarity
	for rows.Next() {
		gv := &GroupVector{}
		var similarity float64
		err := rows.Scan(
			&gv.ID,
			&gv.CorpusID,
			&gv.GroupKey,
			&gv.Vector,
			&gv.CreatedAt,
			&similarity,
		)
		if err != nil {
			return nil, err
		}
		results = append(results, &GroupVectorWithSimilarity{
			GroupVector: gv,
			Similarity:  similarity,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// DeleteByCorpusID removes all stored vectors for a corpus
func (r *PostgresGroupVectorRepository) DeleteByCorpusID(ctx context.Context, corpusID uuid.UUID) error {
	query := `DELETE FROM group_vectors WHERE corpus_id = $1`
	_, err := r.db.ExecContext(ctx, query, corpusID)
	return err
}
