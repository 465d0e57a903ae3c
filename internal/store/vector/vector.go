// Package vector stores one embedding per note in PostgreSQL with the
// pgvector extension.
package vector

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	log "github.com/sirupsen/logrus"

	"sousnote/internal/store"
)

var _ store.VectorStore = (*StoreImpl)(nil)

type StoreImpl struct {
	db *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (store.VectorStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("vector store DSN cannot be empty")
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse vector store DSN: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping vector store: %w", err)
	}
	log.Debug("Connected to PostgreSQL vector store")
	return &StoreImpl{db: pool}, nil
}

func (vs *StoreImpl) Close() error {
	if vs.db != nil {
		vs.db.Close()
	}
	return nil
}

func (vs *StoreImpl) Ping(ctx context.Context) error {
	if vs.db == nil {
		return fmt.Errorf("vector store connection is not initialized")
	}
	return vs.db.Ping(ctx)
}

// UpsertNoteEmbedding writes the embedding for a note, replacing any
// previous one, and returns the embedding row ID.
func (vs *StoreImpl) UpsertNoteEmbedding(ctx context.Context, noteID uuid.UUID, vec pgvector.Vector) (uuid.UUID, error) {
	id := uuid.New()
	query := `
		INSERT INTO note_embeddings (id, note_id, vector)
		VALUES ($1, $2, $3)
		ON CONFLICT (note_id) DO UPDATE SET vector = EXCLUDED.vector
		RETURNING id`
	if err := vs.db.QueryRow(ctx, query, id, noteID, vec).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("upsert embedding for note %s: %w", noteID, err)
	}
	return id, nil
}

// SimilarNotes returns the k nearest neighbours of a note's embedding,
// excluding the note itself. Lower distance is more similar.
func (vs *StoreImpl) SimilarNotes(ctx context.Context, noteID uuid.UUID, k int) ([]store.SimilarNote, error) {
	if k <= 0 {
		k = 5
	}
	query := `
		SELECT other.note_id, (other.vector <-> self.vector) AS distance
		FROM note_embeddings self
		JOIN note_embeddings other ON other.note_id <> self.note_id
		WHERE self.note_id = $1
		ORDER BY distance
		LIMIT $2`
	rows, err := vs.db.Query(ctx, query, noteID, k)
	if err != nil {
		return nil, fmt.Errorf("similarity search for note %s: %w", noteID, err)
	}
	defer rows.Close()

	results := []store.SimilarNote{}
	for rows.Next() {
		var hit store.SimilarNote
		if err := rows.Scan(&hit.NoteID, &hit.Distance); err != nil {
			return nil, fmt.Errorf("scan similarity row: %w", err)
		}
		results = append(results, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate similarity rows: %w", err)
	}
	return results, nil
}

func (vs *StoreImpl) DeleteNoteEmbedding(ctx context.Context, noteID uuid.UUID) error {
	tag, err := vs.db.Exec(ctx, `DELETE FROM note_embeddings WHERE note_id = $1`, noteID)
	if err != nil {
		return fmt.Errorf("delete embedding for note %s: %w", noteID, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
