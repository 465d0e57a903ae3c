package services

import (
	"context"
	"fmt"

	"sousnote/internal/grocery"
	"sousnote/internal/models"
	"sousnote/internal/store"
)

// unifiedListFetchLimit bounds how many notes one unified list considers.
const unifiedListFetchLimit = 500

// UnifiedListService consolidates recipe ingredients and grocery tasks
// into one categorized shopping list.
type UnifiedListService struct {
	notes store.NoteStore
}

func NewUnifiedListService(notes store.NoteStore) *UnifiedListService {
	return &UnifiedListService{notes: notes}
}

// Build assembles the unified grocery list from every current note. The
// list is derived on demand and never persisted.
func (s *UnifiedListService) Build(ctx context.Context) (map[grocery.Category][]models.GroceryItem, error) {
	notes, err := s.notes.ListNotes(ctx, store.NoteListParams{Limit: unifiedListFetchLimit})
	if err != nil {
		return nil, fmt.Errorf("list notes for unified list: %w", err)
	}
	flat := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		flat = append(flat, *n)
	}
	return grocery.Build(flat), nil
}
