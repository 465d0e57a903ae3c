package grocery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sousnote/internal/models"
)

func recipeNote(title string, ingredients ...string) models.Note {
	return models.Note{
		Title:    title,
		IsRecipe: true,
		RecipeDetails: &models.RecipeDetails{
			Title:       title,
			Ingredients: ingredients,
		},
	}
}

func groceryNote(title string, tasks ...models.Task) models.Note {
	return models.Note{Title: title, Category: "grocery", Tasks: tasks}
}

func TestBuildMergesRecipesAndGroceryNotes(t *testing.T) {
	notes := []models.Note{
		recipeNote("Carbonara", "spaghetti pasta", "eggs", "bacon"),
		groceryNote("Weekly shop",
			models.Task{Text: "milk"},
			models.Task{Text: "bananas", Done: true},
		),
	}

	list := Build(notes)

	require.Contains(t, list, CategoryPantry)
	require.Contains(t, list, CategoryDairy)
	require.Contains(t, list, CategoryMeat)
	require.Contains(t, list, CategoryProduce)

	// Recipe items carry provenance, shopping tasks do not.
	assert.Equal(t, "Carbonara", list[CategoryPantry][0].SourceNote)
	assert.Equal(t, []models.GroceryItem{
		{Name: "eggs", SourceNote: "Carbonara"},
		{Name: "milk"},
	}, list[CategoryDairy])
	assert.True(t, list[CategoryProduce][0].Done)
}

func TestBuildIsIdempotent(t *testing.T) {
	notes := []models.Note{
		recipeNote("Stir fry", "broccoli", "chicken breast", "soy sauce"),
		groceryNote("List", models.Task{Text: "broccoli"}),
	}
	assert.Equal(t, Build(notes), Build(notes))
}

func TestBuildDeduplicatesCaseInsensitively(t *testing.T) {
	notes := []models.Note{
		groceryNote("a", models.Task{Text: "Milk"}),
		groceryNote("b", models.Task{Text: "milk", Done: true}),
		groceryNote("c", models.Task{Text: "  MILK  "}),
	}

	list := Build(notes)

	require.Len(t, list[CategoryDairy], 1)
	assert.Equal(t, "Milk", list[CategoryDairy][0].Name)
	// First occurrence wins; the later duplicate's done state is ignored.
	assert.False(t, list[CategoryDairy][0].Done)
}

func TestBuildDropsEmptyCategories(t *testing.T) {
	list := Build([]models.Note{groceryNote("x", models.Task{Text: "milk"})})

	assert.NotContains(t, list, CategorySeafood)
	assert.NotContains(t, list, CategoryOther)
	assert.Len(t, list, 1)
}

func TestBuildIgnoresNonGroceryNotes(t *testing.T) {
	notes := []models.Note{
		{Title: "Standup", Category: "work", Tasks: []models.Task{{Text: "milk the deadline"}}},
	}
	assert.Empty(t, Build(notes))
}

func TestBuildShoppingCategoryIsCaseInsensitive(t *testing.T) {
	notes := []models.Note{
		{Title: "s", Category: "Shopping", Tasks: []models.Task{{Text: "bread"}}},
	}
	require.Contains(t, Build(notes), CategoryBakery)
}

func TestAddItemQuantityOverwrite(t *testing.T) {
	b := NewBuilder()
	b.AddItem(CategoryDairy, models.GroceryItem{Name: "milk", Quantity: "1L"})
	b.AddItem(CategoryDairy, models.GroceryItem{Name: "Milk", Quantity: "2L"})
	b.AddItem(CategoryDairy, models.GroceryItem{Name: "MILK"}) // empty quantity does not clear

	list := b.Result()
	require.Len(t, list[CategoryDairy], 1)
	assert.Equal(t, "2L", list[CategoryDairy][0].Quantity)
}

func TestAddItemSkipsBlankNames(t *testing.T) {
	b := NewBuilder()
	b.AddItem(CategoryOther, models.GroceryItem{Name: "   "})
	assert.Empty(t, b.Result())
}
