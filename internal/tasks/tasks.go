package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Task types used with Asynq.

const (
	// TypeNoteEmbed generates and stores the embedding for a note.
	TypeNoteEmbed = "note:embed"
	// TypeNoteExtract runs AI task extraction over a note's raw text and
	// updates the note's tasks.
	TypeNoteExtract = "note:extract"
)

// QueueEmbeddings is the queue embed tasks are submitted to. Workers must
// include it in their queue map or embed jobs sit in Redis unconsumed.
const QueueEmbeddings = "embeddings"

// NotePayload is the shared payload for note-scoped background tasks.
type NotePayload struct {
	NoteID uuid.UUID `json:"note_id"`
}

// ExtractPayload carries the raw text to re-extract alongside the note ID.
type ExtractPayload struct {
	NoteID uuid.UUID `json:"note_id"`
	Text   string    `json:"text"`
}

// NewNoteEmbedTask builds the Asynq task for embedding a note.
func NewNoteEmbedTask(noteID uuid.UUID) (*asynq.Task, error) {
	payload, err := json.Marshal(NotePayload{NoteID: noteID})
	if err != nil {
		return nil, fmt.Errorf("marshal embed payload: %w", err)
	}
	return asynq.NewTask(TypeNoteEmbed, payload), nil
}

// NewNoteExtractTask builds the Asynq task for re-extracting a note's tasks.
func NewNoteExtractTask(noteID uuid.UUID, text string) (*asynq.Task, error) {
	payload, err := json.Marshal(ExtractPayload{NoteID: noteID, Text: text})
	if err != nil {
		return nil, fmt.Errorf("marshal extract payload: %w", err)
	}
	return asynq.NewTask(TypeNoteExtract, payload), nil
}
