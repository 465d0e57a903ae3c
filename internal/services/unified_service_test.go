package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sousnote/internal/grocery"
	"sousnote/internal/models"
)

func TestUnifiedListMergesRecipesAndGroceryNotes(t *testing.T) {
	notes := &memNoteStore{}
	require.NoError(t, notes.CreateNote(context.Background(), &models.Note{
		Title:    "Pancakes",
		Category: "recipe",
		IsRecipe: true,
		RecipeDetails: &models.RecipeDetails{
			Title:       "Pancakes",
			Ingredients: []string{"milk", "flour"},
		},
	}))
	require.NoError(t, notes.CreateNote(context.Background(), &models.Note{
		Title:    "Weekly shop",
		Category: "grocery",
		Tasks:    []models.Task{{Text: "Milk", Done: true}, {Text: "apples"}},
	}))
	// Non-grocery tasks stay out of the list.
	require.NoError(t, notes.CreateNote(context.Background(), &models.Note{
		Title:    "Work",
		Category: "work",
		Tasks:    []models.Task{{Text: "email Sam"}},
	}))

	svc := NewUnifiedListService(notes)
	list, err := svc.Build(context.Background())
	require.NoError(t, err)

	// "milk" from the recipe and "Milk" from the task deduplicate within dairy.
	require.Len(t, list[grocery.CategoryDairy], 1)
	assert.Equal(t, "milk", list[grocery.CategoryDairy][0].Name)
	assert.Equal(t, "Pancakes", list[grocery.CategoryDairy][0].SourceNote)

	assert.Len(t, list[grocery.CategoryProduce], 1)
	for _, items := range list {
		for _, item := range items {
			assert.NotEqual(t, "email Sam", item.Name)
		}
	}
}
