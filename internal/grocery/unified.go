package grocery

import (
	"strings"

	"sousnote/internal/models"
)

// Builder accumulates a consolidated, de-duplicated grocery list from
// heterogeneous sources. A fresh builder starts from empty categories, so
// building twice from the same notes yields identical output.
type Builder struct {
	cats map[Category][]models.GroceryItem
}

func NewBuilder() *Builder {
	cats := make(map[Category][]models.GroceryItem, len(Categories))
	for _, c := range Categories {
		cats[c] = []models.GroceryItem{}
	}
	return &Builder{cats: cats}
}

// AddNote merges a note's grocery-relevant content. Recipe ingredients are
// tagged with the note title as provenance; tasks from grocery/shopping
// notes carry only their text and done state.
func (b *Builder) AddNote(n models.Note) {
	if n.IsRecipe && n.RecipeDetails != nil {
		for _, ing := range n.RecipeDetails.Ingredients {
			b.AddItem(Categorize(ing), models.GroceryItem{
				Name:       ing,
				SourceNote: n.Title,
			})
		}
	}
	switch strings.ToLower(n.Category) {
	case "grocery", "shopping":
		for _, t := range n.Tasks {
			b.AddItem(Categorize(t.Text), models.GroceryItem{
				Name: t.Text,
				Done: t.Done,
			})
		}
	}
}

// AddItem inserts an item unless the category already holds one with a
// case-insensitive-equal trimmed name. On collision the first occurrence
// wins: only Quantity may be overwritten, and only when the newcomer
// carries a non-empty value. Done state is never refreshed.
func (b *Builder) AddItem(cat Category, item models.GroceryItem) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return
	}
	key := strings.ToLower(item.Name)
	for i := range b.cats[cat] {
		if strings.ToLower(strings.TrimSpace(b.cats[cat][i].Name)) == key {
			if item.Quantity != "" {
				b.cats[cat][i].Quantity = item.Quantity
			}
			return
		}
	}
	b.cats[cat] = append(b.cats[cat], item)
}

// Result materializes the unified list, dropping empty categories.
func (b *Builder) Result() map[Category][]models.GroceryItem {
	out := make(map[Category][]models.GroceryItem)
	for cat, items := range b.cats {
		if len(items) == 0 {
			continue
		}
		cp := make([]models.GroceryItem, len(items))
		copy(cp, items)
		out[cat] = cp
	}
	return out
}

// Build derives the unified grocery list from a notes collection.
func Build(notes []models.Note) map[Category][]models.GroceryItem {
	b := NewBuilder()
	for _, n := range notes {
		b.AddNote(n)
	}
	return b.Result()
}
