package primary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"sousnote/internal/models"
	"sousnote/internal/store"
)

const noteColumns = `id, title, category, tasks, is_recipe, recipe_details,
	metadata, embedding_id, is_embedded, created_at, updated_at`

// rowScanner covers both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*models.Note, error) {
	note := &models.Note{}
	var tasksJSON []byte
	var recipeJSON []byte
	err := row.Scan(
		&note.ID, &note.Title, &note.Category, &tasksJSON, &note.IsRecipe,
		&recipeJSON, &note.Metadata, &note.EmbeddingID, &note.IsEmbedded,
		&note.CreatedAt, &note.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(tasksJSON) > 0 {
		if err := json.Unmarshal(tasksJSON, &note.Tasks); err != nil {
			return nil, fmt.Errorf("decode tasks for note %s: %w", note.ID, err)
		}
	}
	if note.Tasks == nil {
		note.Tasks = []models.Task{}
	}
	if len(recipeJSON) > 0 {
		note.RecipeDetails = &models.RecipeDetails{}
		if err := json.Unmarshal(recipeJSON, note.RecipeDetails); err != nil {
			return nil, fmt.Errorf("decode recipe for note %s: %w", note.ID, err)
		}
	}
	return note, nil
}

func encodeNote(note *models.Note) (tasksJSON, recipeJSON []byte, err error) {
	if note.Tasks == nil {
		note.Tasks = []models.Task{}
	}
	tasksJSON, err = json.Marshal(note.Tasks)
	if err != nil {
		return nil, nil, fmt.Errorf("encode tasks: %w", err)
	}
	if note.RecipeDetails != nil {
		recipeJSON, err = json.Marshal(note.RecipeDetails)
		if err != nil {
			return nil, nil, fmt.Errorf("encode recipe: %w", err)
		}
	}
	return tasksJSON, recipeJSON, nil
}

// CreateNote inserts a new note record, assigning an ID when missing.
func (s *StoreImpl) CreateNote(ctx context.Context, note *models.Note) error {
	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}
	if note.Metadata == nil {
		note.Metadata = json.RawMessage("{}")
	}
	tasksJSON, recipeJSON, err := encodeNote(note)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO notes (id, title, category, tasks, is_recipe, recipe_details, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING created_at, updated_at`
	now := time.Now().UTC()
	err = s.db.QueryRow(ctx, query,
		note.ID, note.Title, note.Category, tasksJSON, note.IsRecipe, recipeJSON, note.Metadata, now,
	).Scan(&note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("note %s already exists: %w", note.ID, store.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

func (s *StoreImpl) GetNote(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = $1`
	note, err := scanNote(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get note %s: %w", id, err)
	}
	return note, nil
}

// ListNotes returns notes newest-first, optionally filtered by category
// (case-insensitive).
func (s *StoreImpl) ListNotes(ctx context.Context, params store.NoteListParams) ([]*models.Note, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT ` + noteColumns + ` FROM notes`
	args := []any{}
	if params.Category != "" {
		query += ` WHERE lower(category) = lower($1)`
		args = append(args, params.Category)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, params.Offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	notes := []*models.Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note row: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate note rows: %w", err)
	}
	return notes, nil
}

// ReplaceNotes swaps the entire note list in a single transaction. This is
// the only deletion path; there is no per-note delete.
func (s *StoreImpl) ReplaceNotes(ctx context.Context, notes []*models.Note) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM notes`); err != nil {
		return fmt.Errorf("clear notes: %w", err)
	}

	query := `
		INSERT INTO notes (id, title, category, tasks, is_recipe, recipe_details, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	now := time.Now().UTC()
	for _, note := range notes {
		if note.ID == uuid.Nil {
			note.ID = uuid.New()
		}
		if note.Metadata == nil {
			note.Metadata = json.RawMessage("{}")
		}
		if note.CreatedAt.IsZero() {
			note.CreatedAt = now
		}
		tasksJSON, recipeJSON, err := encodeNote(note)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, query,
			note.ID, note.Title, note.Category, tasksJSON, note.IsRecipe,
			recipeJSON, note.Metadata, note.CreatedAt, now,
		); err != nil {
			return fmt.Errorf("insert replacement note %s: %w", note.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace transaction: %w", err)
	}
	return nil
}

// SetTaskDone flips one task's done flag by positional index and returns
// the updated note. The row is locked for the read-modify-write.
func (s *StoreImpl) SetTaskDone(ctx context.Context, noteID uuid.UUID, taskIndex int, done bool) (*models.Note, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin toggle transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = $1 FOR UPDATE`
	note, err := scanNote(tx.QueryRow(ctx, query, noteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock note %s: %w", noteID, err)
	}

	if taskIndex < 0 || taskIndex >= len(note.Tasks) {
		return nil, fmt.Errorf("note %s has %d tasks, index %d: %w",
			noteID, len(note.Tasks), taskIndex, store.ErrTaskIndexOutOfRange)
	}
	note.Tasks[taskIndex].Done = done

	tasksJSON, err := json.Marshal(note.Tasks)
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	now := time.Now().UTC()
	if _, err := tx.Exec(ctx,
		`UPDATE notes SET tasks = $1, updated_at = $2 WHERE id = $3`,
		tasksJSON, now, noteID,
	); err != nil {
		return nil, fmt.Errorf("update tasks for note %s: %w", noteID, err)
	}
	note.UpdatedAt = now

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit toggle transaction: %w", err)
	}
	return note, nil
}

// LatestNoteByCategory returns the most recent note in a category, used
// to resolve "append" intent. Category match is case-insensitive.
func (s *StoreImpl) LatestNoteByCategory(ctx context.Context, category string) (*models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes
		WHERE lower(category) = lower($1)
		ORDER BY created_at DESC LIMIT 1`
	note, err := scanNote(s.db.QueryRow(ctx, query, category))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest note in category %q: %w", category, err)
	}
	return note, nil
}

func (s *StoreImpl) UpdateNoteTasks(ctx context.Context, noteID uuid.UUID, tasks []models.Task) error {
	if tasks == nil {
		tasks = []models.Task{}
	}
	tasksJSON, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	tag, err := s.db.Exec(ctx,
		`UPDATE notes SET tasks = $1, updated_at = $2 WHERE id = $3`,
		tasksJSON, time.Now().UTC(), noteID,
	)
	if err != nil {
		return fmt.Errorf("update tasks for note %s: %w", noteID, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *StoreImpl) MarkNoteEmbedded(ctx context.Context, noteID, embeddingID uuid.UUID) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE notes SET embedding_id = $1, is_embedded = TRUE, updated_at = $2 WHERE id = $3`,
		embeddingID, time.Now().UTC(), noteID,
	)
	if err != nil {
		return fmt.Errorf("mark note %s embedded: %w", noteID, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
