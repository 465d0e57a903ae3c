// Package worker holds the Asynq task handlers for background note
// processing.
package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"sousnote/internal/gateway"
	"sousnote/internal/models"
	"sousnote/internal/store"
	"sousnote/internal/tasks"
)

// NoteEmbedder generates and stores a note's embedding.
type NoteEmbedder interface {
	EmbedNote(ctx context.Context, noteID uuid.UUID) error
}

// TaskExtractor is the slice of the AI chain the extract handler needs.
type TaskExtractor interface {
	ExtractTasks(ctx context.Context, text string) (gateway.TaskExtraction, error)
}

// TaskUpdater is the slice of the note store the extract handler needs.
type TaskUpdater interface {
	UpdateNoteTasks(ctx context.Context, noteID uuid.UUID, tasks []models.Task) error
}

// Deps carries everything the handlers need.
type Deps struct {
	Embedder NoteEmbedder
	AI       TaskExtractor
	Notes    TaskUpdater
	Jobs     store.JobStore
}

// RegisterHandlers wires the note task types onto the mux.
func RegisterHandlers(mux *asynq.ServeMux, deps Deps) {
	mux.HandleFunc(tasks.TypeNoteEmbed, HandleNoteEmbed(deps))
	mux.HandleFunc(tasks.TypeNoteExtract, HandleNoteExtract(deps))
}

// HandleNoteEmbed generates the embedding for one note.
func HandleNoteEmbed(deps Deps) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload tasks.NotePayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("decode embed payload: %v: %w", err, asynq.SkipRetry)
		}
		markJobStatus(ctx, deps.Jobs, models.JobStatusRunning)

		if deps.Embedder == nil {
			log.Warnf("No embedder configured; dropping embed job for note %s", payload.NoteID)
			markJobStatus(ctx, deps.Jobs, models.JobStatusFailed)
			return nil
		}
		if err := deps.Embedder.EmbedNote(ctx, payload.NoteID); err != nil {
			markJobStatus(ctx, deps.Jobs, models.JobStatusFailed)
			return fmt.Errorf("embed note %s: %w", payload.NoteID, err)
		}
		markJobStatus(ctx, deps.Jobs, models.JobStatusCompleted)
		log.Debugf("Embedded note %s", payload.NoteID)
		return nil
	}
}

// HandleNoteExtract re-runs AI task extraction over a note's raw text and
// replaces the note's tasks with the result.
func HandleNoteExtract(deps Deps) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload tasks.ExtractPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("decode extract payload: %v: %w", err, asynq.SkipRetry)
		}
		markJobStatus(ctx, deps.Jobs, models.JobStatusRunning)

		extraction, err := deps.AI.ExtractTasks(ctx, payload.Text)
		if err != nil {
			markJobStatus(ctx, deps.Jobs, models.JobStatusFailed)
			return fmt.Errorf("extract tasks for note %s: %w", payload.NoteID, err)
		}

		updated := make([]models.Task, 0, len(extraction.Tasks))
		for _, task := range extraction.Tasks {
			updated = append(updated, models.Task{Text: task.Text, Done: task.Done, Category: task.Category})
		}
		if err := deps.Notes.UpdateNoteTasks(ctx, payload.NoteID, updated); err != nil {
			markJobStatus(ctx, deps.Jobs, models.JobStatusFailed)
			return fmt.Errorf("update tasks for note %s: %w", payload.NoteID, err)
		}
		markJobStatus(ctx, deps.Jobs, models.JobStatusCompleted)
		return nil
	}
}

// markJobStatus mirrors the lifecycle change into the job record;
// best-effort, the task itself is the source of truth.
func markJobStatus(ctx context.Context, jobs store.JobStore, status string) {
	if jobs == nil {
		return
	}
	taskID, ok := asynq.GetTaskID(ctx)
	if !ok {
		return
	}
	jobID, err := uuid.Parse(taskID)
	if err != nil {
		return
	}
	if err := jobs.UpdateJobStatus(ctx, jobID, status); err != nil {
		log.WithError(err).Debugf("Failed to update status of job %s", jobID)
	}
}
