package apihandlers

import "sousnote/internal/models"

// CreateNoteRequest is the POST /notes body. Text is the raw capture;
// Category is an optional hint for where the note belongs.
type CreateNoteRequest struct {
	Text     string `json:"text"`
	Category string `json:"category,omitempty"`
}

// ReplaceNotesRequest is the PUT /notes body: the client's complete note
// list, which replaces the stored one wholesale. An explicit empty list
// clears everything.
type ReplaceNotesRequest struct {
	Notes []*models.Note `json:"notes"`
}

// CreateRecipeRequest is the POST /recipes body.
type CreateRecipeRequest struct {
	Request string `json:"request"`
}

// TextRequest is the shared body for the stateless extraction endpoints
// (POST /categorize, POST /extract-groceries).
type TextRequest struct {
	Text string `json:"text"`
}

// ClassifyRequest is the POST /classify body. Payload may be any JSON
// value or a string holding raw (possibly malformed) JSON.
type ClassifyRequest struct {
	Payload any    `json:"payload"`
	Title   string `json:"title,omitempty"`
}
