// Package gateway wraps the external AI collaborators behind narrow
// interfaces. Every operation has a documented safe default so consumers
// can treat an all-empty result as valid, uninteresting input rather than
// an error.
package gateway

import (
	"context"

	"sousnote/internal/models"
)

// Intent values for task extraction results.
const (
	IntentNew    = "new"
	IntentAppend = "append"
)

// ExtractedTask is one task line as returned by the remote models.
type ExtractedTask struct {
	Text     string `json:"text"`
	Done     bool   `json:"done"`
	Category string `json:"category,omitempty"`
}

// TaskExtraction is the task-extraction result shape.
type TaskExtraction struct {
	Tasks  []ExtractedTask `json:"tasks"`
	Intent string          `json:"intent"` // "new" or "append"
	Reason string          `json:"reason"`
}

// NoteGroup references tasks by index within a categorization result.
type NoteGroup struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	TaskIndices []int  `json:"taskIndices"`
}

// TaskCategorization is the categorization result shape.
type TaskCategorization struct {
	Tasks      []ExtractedTask `json:"tasks"`
	NoteGroups []NoteGroup     `json:"noteGroups"`
	Reasoning  string          `json:"reasoning"`
}

// GroceryEntry is one item within a grocery-extraction category.
type GroceryEntry struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Done     bool   `json:"done"`
}

// GroceryKeys is the fixed 6-way enumeration of the grocery-extraction
// wire contract, a strict subset of the canonical category set.
var GroceryKeys = []string{"produce", "dairy", "meat", "bakery", "pantry", "other"}

// GroceryExtraction is the grocery-extraction result shape.
type GroceryExtraction struct {
	Categories map[string][]GroceryEntry `json:"categories"`
}

// ContentIdentification is the content-type identification result shape.
type ContentIdentification struct {
	ContentType string  `json:"contentType"`
	Confidence  float64 `json:"confidence"`
	Reasoning   string  `json:"reasoning"`
}

// TaskExtractor extracts actionable tasks from free text.
type TaskExtractor interface {
	ExtractTasks(ctx context.Context, text string) (TaskExtraction, error)
	Name() string
}

// TaskCategorizer extracts tasks and groups them into titled buckets.
type TaskCategorizer interface {
	CategorizeTasks(ctx context.Context, text string) (TaskCategorization, error)
	Name() string
}

// GroceryExtractor pulls grocery items out of free text, pre-bucketed
// into the narrow 6-way category shape.
type GroceryExtractor interface {
	ExtractGroceries(ctx context.Context, text string) (GroceryExtraction, error)
	Name() string
}

// RecipeGenerator produces a full recipe for a dish description.
type RecipeGenerator interface {
	GenerateRecipe(ctx context.Context, request string) (models.RecipeDetails, error)
	Name() string
}

// ContentIdentifier classifies free text into a coarse content type.
type ContentIdentifier interface {
	IdentifyContent(ctx context.Context, text string) (ContentIdentification, error)
	Name() string
}

// DefaultTaskExtraction is the safe fallback when every provider fails.
func DefaultTaskExtraction() TaskExtraction {
	return TaskExtraction{Tasks: []ExtractedTask{}, Intent: IntentNew}
}

// DefaultTaskCategorization is the safe fallback categorization result.
func DefaultTaskCategorization() TaskCategorization {
	return TaskCategorization{Tasks: []ExtractedTask{}, NoteGroups: []NoteGroup{}}
}

// DefaultGroceryExtraction returns the all-empty fixed-key categories
// object the wire contract documents as its failure value.
func DefaultGroceryExtraction() GroceryExtraction {
	cats := make(map[string][]GroceryEntry, len(GroceryKeys))
	for _, k := range GroceryKeys {
		cats[k] = []GroceryEntry{}
	}
	return GroceryExtraction{Categories: cats}
}

// DefaultContentIdentification is the safe fallback identification.
func DefaultContentIdentification() ContentIdentification {
	return ContentIdentification{ContentType: "note", Confidence: 0}
}
