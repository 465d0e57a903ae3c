// Package services holds the application logic between the stores, the
// AI gateway, and the delivery surfaces (CLI and HTTP).
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"sousnote/internal/gateway"
	"sousnote/internal/models"
	"sousnote/internal/store"
)

// extractionGateway is the slice of the AI chain NoteService needs.
type extractionGateway interface {
	ExtractTasks(ctx context.Context, text string) (gateway.TaskExtraction, error)
	CategorizeTasks(ctx context.Context, text string) (gateway.TaskCategorization, error)
	ExtractGroceries(ctx context.Context, text string) (gateway.GroceryExtraction, error)
	GenerateRecipe(ctx context.Context, request string) (models.RecipeDetails, error)
	IdentifyContent(ctx context.Context, text string) (gateway.ContentIdentification, error)
}

// NoteService turns raw captured text into persisted notes.
type NoteService struct {
	notes store.NoteStore
	ai    extractionGateway
	jobs  store.JobClient // nil disables background work
}

func NewNoteService(notes store.NoteStore, ai extractionGateway, jobs store.JobClient) *NoteService {
	return &NoteService{notes: notes, ai: ai, jobs: jobs}
}

// CreateResult reports what CreateFromText did: Appended is true when the
// text continued an existing note instead of creating one.
type CreateResult struct {
	Note     *models.Note
	Appended bool
}

// CreateFromText runs AI task extraction over free text and either
// creates a new note or, on "append" intent, extends the latest note in
// the same category. Appending never touches existing tasks; new lines
// are added after them.
func (s *NoteService) CreateFromText(ctx context.Context, text, categoryHint string) (CreateResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return CreateResult{}, fmt.Errorf("note text cannot be empty")
	}

	extraction, err := s.ai.ExtractTasks(ctx, text)
	if err != nil {
		return CreateResult{}, fmt.Errorf("task extraction failed: %w", err)
	}

	category := categoryHint
	if category == "" {
		category = "note"
	}

	newTasks := make([]models.Task, 0, len(extraction.Tasks))
	for _, t := range extraction.Tasks {
		newTasks = append(newTasks, models.Task{Text: t.Text, Done: t.Done, Category: t.Category})
	}

	if extraction.Intent == gateway.IntentAppend {
		target, err := s.notes.LatestNoteByCategory(ctx, category)
		switch {
		case err == nil:
			combined := append(append([]models.Task{}, target.Tasks...), newTasks...)
			if err := s.notes.UpdateNoteTasks(ctx, target.ID, combined); err != nil {
				return CreateResult{}, fmt.Errorf("append to note %s: %w", target.ID, err)
			}
			target.Tasks = combined
			s.enqueueEmbed(ctx, target.ID)
			return CreateResult{Note: target, Appended: true}, nil
		case errors.Is(err, store.ErrNotFound):
			// Nothing to append to; fall through and create a new note.
		default:
			return CreateResult{}, fmt.Errorf("resolve append target: %w", err)
		}
	}

	note := &models.Note{
		Title:    titleFromText(text),
		Category: category,
		Tasks:    newTasks,
	}
	if err := s.notes.CreateNote(ctx, note); err != nil {
		return CreateResult{}, fmt.Errorf("create note: %w", err)
	}
	s.enqueueEmbed(ctx, note.ID)
	return CreateResult{Note: note}, nil
}

// CreateRecipe asks the AI chain for a full recipe and stores it as a
// recipe note. Recipe bodies are immutable once created.
func (s *NoteService) CreateRecipe(ctx context.Context, request string) (*models.Note, error) {
	request = strings.TrimSpace(request)
	if request == "" {
		return nil, fmt.Errorf("recipe request cannot be empty")
	}

	recipe, err := s.ai.GenerateRecipe(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("recipe generation failed: %w", err)
	}

	note := &models.Note{
		Title:         recipe.Title,
		Category:      "recipe",
		IsRecipe:      true,
		RecipeDetails: &recipe,
	}
	if err := s.notes.CreateNote(ctx, note); err != nil {
		return nil, fmt.Errorf("create recipe note: %w", err)
	}
	s.enqueueEmbed(ctx, note.ID)
	return note, nil
}

// Classify runs content identification without persisting anything.
func (s *NoteService) Classify(ctx context.Context, text string) (gateway.ContentIdentification, error) {
	return s.ai.IdentifyContent(ctx, text)
}

// Categorize extracts tasks from text and groups them into titled
// buckets without persisting anything.
func (s *NoteService) Categorize(ctx context.Context, text string) (gateway.TaskCategorization, error) {
	return s.ai.CategorizeTasks(ctx, text)
}

// ExtractGroceries pulls grocery items out of text, pre-bucketed into
// the 6-way wire shape, without persisting anything.
func (s *NoteService) ExtractGroceries(ctx context.Context, text string) (gateway.GroceryExtraction, error) {
	return s.ai.ExtractGroceries(ctx, text)
}

// ReextractTasks queues a background re-run of task extraction for an
// existing note. When the job runs, the extraction result replaces the
// note's current tasks.
func (s *NoteService) ReextractTasks(ctx context.Context, noteID uuid.UUID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("reextract text cannot be empty")
	}
	if s.jobs == nil {
		return fmt.Errorf("background jobs are not configured; set redis.address")
	}
	// Verify the note exists so the job cannot target a dangling ID.
	if _, err := s.notes.GetNote(ctx, noteID); err != nil {
		return err
	}
	return s.jobs.EnqueueNoteExtract(ctx, noteID, text)
}

func (s *NoteService) Get(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	return s.notes.GetNote(ctx, id)
}

func (s *NoteService) List(ctx context.Context, params store.NoteListParams) ([]*models.Note, error) {
	return s.notes.ListNotes(ctx, params)
}

// ToggleTask flips one task's done state by positional index.
func (s *NoteService) ToggleTask(ctx context.Context, noteID uuid.UUID, taskIndex int) (*models.Note, error) {
	note, err := s.notes.GetNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if taskIndex < 0 || taskIndex >= len(note.Tasks) {
		return nil, fmt.Errorf("note %s has %d tasks, index %d: %w",
			noteID, len(note.Tasks), taskIndex, store.ErrTaskIndexOutOfRange)
	}
	return s.notes.SetTaskDone(ctx, noteID, taskIndex, !note.Tasks[taskIndex].Done)
}

// Replace swaps the full note list. This is the only deletion path.
func (s *NoteService) Replace(ctx context.Context, notes []*models.Note) error {
	return s.notes.ReplaceNotes(ctx, notes)
}

func (s *NoteService) enqueueEmbed(ctx context.Context, noteID uuid.UUID) {
	if s.jobs == nil {
		return
	}
	if err := s.jobs.EnqueueNoteEmbed(ctx, noteID); err != nil {
		log.WithError(err).Warnf("Failed to enqueue embedding job for note %s", noteID)
	}
}

// titleFromText derives a short display title from the raw capture: the
// first non-empty line, clipped at 60 runes.
func titleFromText(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		runes := []rune(line)
		if len(runes) > 60 {
			return string(runes[:57]) + "..."
		}
		return line
	}
	return "Untitled note"
}
