package store

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/pgvector/pgvector-go"

	"sousnote/internal/models"
)

// NoteListParams narrows ListNotes results. Zero values mean "no filter"
// and the store default limit applies when Limit is 0.
type NoteListParams struct {
	Category string
	Limit    int
	Offset   int
}

// NoteStore persists notes. Notes are never merged server-side; the only
// bulk mutation is ReplaceNotes, which swaps the full list atomically.
type NoteStore interface {
	CreateNote(ctx context.Context, note *models.Note) error
	GetNote(ctx context.Context, id uuid.UUID) (*models.Note, error)
	ListNotes(ctx context.Context, params NoteListParams) ([]*models.Note, error)
	ReplaceNotes(ctx context.Context, notes []*models.Note) error
	SetTaskDone(ctx context.Context, noteID uuid.UUID, taskIndex int, done bool) (*models.Note, error)
	LatestNoteByCategory(ctx context.Context, category string) (*models.Note, error)
	UpdateNoteTasks(ctx context.Context, noteID uuid.UUID, tasks []models.Task) error
	MarkNoteEmbedded(ctx context.Context, noteID, embeddingID uuid.UUID) error
}

// OperationUsage aggregates spend for one operation kind.
type OperationUsage struct {
	Operation    string
	Calls        int
	InputTokens  int
	OutputTokens int
	Cost         float64
}

// UsageStore records AI spend for the usage report.
type UsageStore interface {
	RecordUsage(ctx context.Context, usage *models.AIUsageLog) error
	TotalCost(ctx context.Context) (float64, error)
	UsageByOperation(ctx context.Context) ([]OperationUsage, error)
	ListUsage(ctx context.Context, limit int) ([]*models.AIUsageLog, error)
}

// JobRecordParams captures the enqueue event for the background_jobs table.
type JobRecordParams struct {
	JobID       uuid.UUID
	TaskType    string
	Payload     json.RawMessage
	Queue       string
	Status      string
	RelatedNote *uuid.UUID
}

// JobStore mirrors Asynq activity into the primary database so job
// history survives Redis.
type JobStore interface {
	RecordJobEnqueue(ctx context.Context, params JobRecordParams) error
	UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status string) error
	ListJobs(ctx context.Context, limit int) ([]*models.BackgroundJob, error)
}

// PrimaryStore is the full persistence surface backed by PostgreSQL.
type PrimaryStore interface {
	NoteStore
	UsageStore
	JobStore
	Ping(ctx context.Context) error
	Close()
}

// SimilarNote is one hit from a vector similarity search. Lower Distance
// is more similar.
type SimilarNote struct {
	NoteID   uuid.UUID
	Distance float64
}

// VectorStore holds one embedding per note in pgvector.
type VectorStore interface {
	UpsertNoteEmbedding(ctx context.Context, noteID uuid.UUID, vector pgvector.Vector) (uuid.UUID, error)
	SimilarNotes(ctx context.Context, noteID uuid.UUID, k int) ([]SimilarNote, error)
	DeleteNoteEmbedding(ctx context.Context, noteID uuid.UUID) error
	Ping(ctx context.Context) error
	Close() error
}

// JobClient enqueues background work and records it via the JobStore.
type JobClient interface {
	EnqueueNoteEmbed(ctx context.Context, noteID uuid.UUID) error
	EnqueueNoteExtract(ctx context.Context, noteID uuid.UUID, text string) error
	Enqueue(ctx context.Context, task *asynq.Task, relatedNote *uuid.UUID, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}
