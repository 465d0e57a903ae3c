package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Note is a user-created container of tasks or recipe content.
// Notes are never merged; the only deletion path is full list replacement.
type Note struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	Title         string          `db:"title" json:"title"`
	Category      string          `db:"category" json:"category"` // free-form, e.g. "grocery", "work"
	Tasks         []Task          `db:"tasks" json:"tasks"`
	IsRecipe      bool            `db:"is_recipe" json:"isRecipe"`
	RecipeDetails *RecipeDetails  `db:"recipe_details" json:"recipeDetails,omitempty"`
	Metadata      json.RawMessage `db:"metadata" json:"metadata,omitempty"`
	EmbeddingID   *uuid.UUID      `db:"embedding_id" json:"-"`
	IsEmbedded    bool            `db:"is_embedded" json:"-"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updatedAt"`
}

// Task is a single actionable line item. Identity is the positional index
// within its owning note; toggling Done is the only mutation.
type Task struct {
	Text     string `json:"text"`
	Done     bool   `json:"done"`
	Category string `json:"category,omitempty"`
}

// GroceryItem is one entry in the unified grocery list. Identity for
// de-duplication is the case-insensitive trimmed Name.
type GroceryItem struct {
	Name       string `json:"name"`
	Quantity   string `json:"quantity,omitempty"`
	Done       bool   `json:"done"`
	SourceNote string `json:"sourceNote,omitempty"` // set only for recipe-derived items
}

// RecipeDetails holds the AI-generated recipe body. Immutable once created.
type RecipeDetails struct {
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	PrepTime     string   `json:"prepTime"`
	CookTime     string   `json:"cookTime"`
	Servings     int      `json:"servings"`
}

// AIUsageLog records one AI API call for cost reporting.
type AIUsageLog struct {
	ID           int64      `db:"id"`
	Timestamp    time.Time  `db:"timestamp"`
	ProviderName string     `db:"provider_name"`
	Operation    string     `db:"operation"` // e.g. "task_extraction", "transcription"
	ModelName    string     `db:"model_name"`
	InputTokens  int        `db:"input_tokens"`
	OutputTokens int        `db:"output_tokens"`
	Cost         float64    `db:"cost"`
	RelatedNote  *uuid.UUID `db:"related_note_id"` // nullable
}

// BackgroundJob mirrors the background_jobs table schema.
type BackgroundJob struct {
	ID          int64           `db:"id"`
	JobID       uuid.UUID       `db:"job_id"` // Asynq task ID
	TaskType    string          `db:"task_type"`
	Payload     json.RawMessage `db:"payload"`
	Queue       string          `db:"queue"`
	Status      string          `db:"status"`
	RelatedNote *uuid.UUID      `db:"related_note_id"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}
