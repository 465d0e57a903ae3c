// Package apihandlers exposes the note service over a gin REST API.
package apihandlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sousnote/internal/gateway"
	"sousnote/internal/grocery"
	"sousnote/internal/models"
	"sousnote/internal/services"
	"sousnote/internal/shape"
	"sousnote/internal/store"
)

// noteAPI is the slice of NoteService the handlers need.
type noteAPI interface {
	CreateFromText(ctx context.Context, text, categoryHint string) (services.CreateResult, error)
	CreateRecipe(ctx context.Context, request string) (*models.Note, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Note, error)
	List(ctx context.Context, params store.NoteListParams) ([]*models.Note, error)
	ToggleTask(ctx context.Context, noteID uuid.UUID, taskIndex int) (*models.Note, error)
	Replace(ctx context.Context, notes []*models.Note) error
	Classify(ctx context.Context, text string) (gateway.ContentIdentification, error)
	Categorize(ctx context.Context, text string) (gateway.TaskCategorization, error)
	ExtractGroceries(ctx context.Context, text string) (gateway.GroceryExtraction, error)
}

type unifiedAPI interface {
	Build(ctx context.Context) (map[grocery.Category][]models.GroceryItem, error)
}

type relatedAPI interface {
	Related(ctx context.Context, noteID uuid.UUID, k int) ([]services.RelatedNote, error)
}

// APIHandler holds the services behind the REST surface. Related may be
// nil when no vector store is configured.
type APIHandler struct {
	Notes   noteAPI
	Unified unifiedAPI
	Related relatedAPI
}

func NewAPIHandler(notes *services.NoteService, unified *services.UnifiedListService, related *services.EmbeddingService) *APIHandler {
	h := &APIHandler{Notes: notes, Unified: unified}
	if related != nil {
		h.Related = related
	}
	return h
}

// RegisterRoutes mounts the API under /api/v1 plus the health check.
func (h *APIHandler) RegisterRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		notes := v1.Group("/notes")
		{
			notes.POST("", h.CreateNoteHandler)
			notes.GET("", h.ListNotesHandler)
			notes.PUT("", h.ReplaceNotesHandler)
			notes.GET("/:id", h.GetNoteHandler)
			notes.POST("/:id/tasks/:index/toggle", h.ToggleTaskHandler)
			notes.GET("/:id/related", h.RelatedNotesHandler)
		}
		v1.GET("/unified-list", h.UnifiedListHandler)
		v1.POST("/classify", h.ClassifyHandler)
		v1.POST("/categorize", h.CategorizeHandler)
		v1.POST("/extract-groceries", h.ExtractGroceriesHandler)
		v1.POST("/recipes", h.CreateRecipeHandler)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// CreateNoteHandler captures raw text into a note. Responds 201 for a new
// note, 200 when the text was appended to an existing one.
func (h *APIHandler) CreateNoteHandler(c *gin.Context) {
	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.Text == "" {
		BadRequest(c, "missing required field: text")
		return
	}

	result, err := h.Notes.CreateFromText(c.Request.Context(), req.Text, req.Category)
	if err != nil {
		Internal(c, fmt.Sprintf("failed to create note: %v", err))
		return
	}

	status := http.StatusCreated
	if result.Appended {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{"data": gin.H{"note": result.Note, "appended": result.Appended}})
}

func (h *APIHandler) ListNotesHandler(c *gin.Context) {
	params := store.NoteListParams{Category: c.Query("category")}
	if l := c.Query("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed <= 0 {
			BadRequest(c, "invalid limit: "+l)
			return
		}
		params.Limit = parsed
	}
	if o := c.Query("offset"); o != "" {
		parsed, err := strconv.Atoi(o)
		if err != nil || parsed < 0 {
			BadRequest(c, "invalid offset: "+o)
			return
		}
		params.Offset = parsed
	}

	notes, err := h.Notes.List(c.Request.Context(), params)
	if err != nil {
		Internal(c, fmt.Sprintf("failed to list notes: %v", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"notes": notes, "count": len(notes)}})
}

func (h *APIHandler) GetNoteHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid note ID: "+c.Param("id"))
		return
	}
	note, err := h.Notes.Get(c.Request.Context(), id)
	if err != nil {
		FromStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": note})
}

// ToggleTaskHandler flips one task's done state by positional index.
func (h *APIHandler) ToggleTaskHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid note ID: "+c.Param("id"))
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		BadRequest(c, "invalid task index: "+c.Param("index"))
		return
	}

	note, err := h.Notes.ToggleTask(c.Request.Context(), id, index)
	if err != nil {
		FromStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": note})
}

// ReplaceNotesHandler swaps the full note list with the client's copy.
// Notes are never deleted individually; a sync that omits a note is how
// it goes away.
func (h *APIHandler) ReplaceNotesHandler(c *gin.Context) {
	var req ReplaceNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.Notes == nil {
		BadRequest(c, "missing required field: notes")
		return
	}

	if err := h.Notes.Replace(c.Request.Context(), req.Notes); err != nil {
		Internal(c, fmt.Sprintf("failed to replace notes: %v", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"count": len(req.Notes)}})
}

func (h *APIHandler) UnifiedListHandler(c *gin.Context) {
	list, err := h.Unified.Build(c.Request.Context())
	if err != nil {
		Internal(c, fmt.Sprintf("failed to build unified list: %v", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"categories": list}})
}

// ClassifyHandler runs shape selection over an arbitrary payload. The
// classification is total, so this endpoint only fails on a bad envelope.
func (h *APIHandler) ClassifyHandler(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": shape.Select(req.Payload, req.Title)})
}

// CategorizeHandler extracts tasks from raw text and groups them into
// titled buckets. Nothing is persisted; clients build their own notes
// from the result.
func (h *APIHandler) CategorizeHandler(c *gin.Context) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.Text == "" {
		BadRequest(c, "missing required field: text")
		return
	}

	result, err := h.Notes.Categorize(c.Request.Context(), req.Text)
	if err != nil {
		Internal(c, fmt.Sprintf("failed to categorize text: %v", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

// ExtractGroceriesHandler pulls grocery items out of raw text in the
// fixed 6-key categories shape.
func (h *APIHandler) ExtractGroceriesHandler(c *gin.Context) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.Text == "" {
		BadRequest(c, "missing required field: text")
		return
	}

	result, err := h.Notes.ExtractGroceries(c.Request.Context(), req.Text)
	if err != nil {
		Internal(c, fmt.Sprintf("failed to extract groceries: %v", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (h *APIHandler) CreateRecipeHandler(c *gin.Context) {
	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.Request == "" {
		BadRequest(c, "missing required field: request")
		return
	}

	note, err := h.Notes.CreateRecipe(c.Request.Context(), req.Request)
	if err != nil {
		Internal(c, fmt.Sprintf("failed to generate recipe: %v", err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": note})
}

func (h *APIHandler) RelatedNotesHandler(c *gin.Context) {
	if h.Related == nil {
		JSONError(c, http.StatusServiceUnavailable, "unavailable", "related notes require a configured vector store")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid note ID: "+c.Param("id"))
		return
	}
	k := 5
	if kq := c.Query("k"); kq != "" {
		parsed, err := strconv.Atoi(kq)
		if err != nil || parsed <= 0 {
			BadRequest(c, "invalid k: "+kq)
			return
		}
		k = parsed
	}

	related, err := h.Related.Related(c.Request.Context(), id, k)
	if err != nil {
		FromStoreError(c, err)
		return
	}

	type relatedEntry struct {
		Note     *models.Note `json:"note"`
		Distance float64      `json:"distance"`
	}
	out := make([]relatedEntry, 0, len(related))
	for _, r := range related {
		out = append(out, relatedEntry{Note: r.Note, Distance: r.Distance})
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"related": out}})
}
