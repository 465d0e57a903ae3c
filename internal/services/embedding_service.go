package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"

	"sousnote/internal/costtracker"
	"sousnote/internal/models"
	"sousnote/internal/store"
)

// embeddingClient is the slice of the OpenAI client the embedding
// service needs; tests substitute a fake.
type embeddingClient interface {
	CreateEmbeddings(ctx context.Context, req openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
}

// EmbeddingService generates note embeddings and answers related-note
// queries against the vector store.
type EmbeddingService struct {
	client             embeddingClient
	model              string
	dimension          int
	notes              store.NoteStore
	vectors            store.VectorStore
	costTracker        costtracker.CostTracker
	pricePerInputToken float64
}

func NewEmbeddingService(client embeddingClient, model string, dimension int, notes store.NoteStore, vectors store.VectorStore, costTracker costtracker.CostTracker, pricePerInputToken float64) *EmbeddingService {
	return &EmbeddingService{
		client:             client,
		model:              model,
		dimension:          dimension,
		notes:              notes,
		vectors:            vectors,
		costTracker:        costTracker,
		pricePerInputToken: pricePerInputToken,
	}
}

// EmbedNote generates and stores the embedding for one note, then marks
// the note embedded. Safe to run repeatedly; the vector row is upserted.
func (s *EmbeddingService) EmbedNote(ctx context.Context, noteID uuid.UUID) error {
	if s.client == nil {
		return fmt.Errorf("embedding client is not configured")
	}
	note, err := s.notes.GetNote(ctx, noteID)
	if err != nil {
		return fmt.Errorf("load note %s for embedding: %w", noteID, err)
	}

	text := embeddingText(note)
	if text == "" {
		log.Debugf("Note %s has no embeddable text; skipping", noteID)
		return nil
	}

	vec, err := s.generate(ctx, text, &noteID)
	if err != nil {
		return err
	}

	embeddingID, err := s.vectors.UpsertNoteEmbedding(ctx, noteID, vec)
	if err != nil {
		return err
	}
	if err := s.notes.MarkNoteEmbedded(ctx, noteID, embeddingID); err != nil {
		return fmt.Errorf("mark note %s embedded: %w", noteID, err)
	}
	return nil
}

// RelatedNote pairs a neighbouring note with its vector distance.
type RelatedNote struct {
	Note     *models.Note
	Distance float64
}

// Related returns the k notes nearest to the given note in embedding
// space. Neighbours whose note row has since been replaced are skipped.
func (s *EmbeddingService) Related(ctx context.Context, noteID uuid.UUID, k int) ([]RelatedNote, error) {
	hits, err := s.vectors.SimilarNotes(ctx, noteID, k)
	if err != nil {
		return nil, err
	}
	related := make([]RelatedNote, 0, len(hits))
	for _, hit := range hits {
		note, err := s.notes.GetNote(ctx, hit.NoteID)
		if err != nil {
			log.WithError(err).Debugf("Skipping stale embedding for note %s", hit.NoteID)
			continue
		}
		related = append(related, RelatedNote{Note: note, Distance: hit.Distance})
	}
	return related, nil
}

func (s *EmbeddingService) generate(ctx context.Context, text string, relatedNote *uuid.UUID) (pgvector.Vector, error) {
	resp, err := s.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      openai.EmbeddingModel(s.model),
		Dimensions: s.dimension,
	})
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("embedding request failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return pgvector.Vector{}, fmt.Errorf("embedding response contained no data")
	}

	s.recordUsage(ctx, resp.Usage, relatedNote)
	return pgvector.NewVector(resp.Data[0].Embedding), nil
}

func (s *EmbeddingService) recordUsage(ctx context.Context, usage openai.Usage, relatedNote *uuid.UUID) {
	if s.costTracker == nil || usage.PromptTokens == 0 {
		return
	}
	event := costtracker.CostEvent{
		Provider:    "openai",
		Operation:   "embedding",
		Model:       s.model,
		InputTokens: usage.PromptTokens,
		AmountUSD:   float64(usage.PromptTokens) * s.pricePerInputToken,
		RelatedNote: relatedNote,
	}
	if err := s.costTracker.RecordCost(ctx, event); err != nil {
		log.WithError(err).Error("Failed to record embedding usage")
	}
}

// embeddingText flattens a note into the text that represents it in
// embedding space: title, then task lines or the recipe body.
func embeddingText(note *models.Note) string {
	var parts []string
	if note.Title != "" {
		parts = append(parts, note.Title)
	}
	if note.IsRecipe && note.RecipeDetails != nil {
		parts = append(parts, note.RecipeDetails.Ingredients...)
		parts = append(parts, note.RecipeDetails.Instructions...)
	}
	for _, t := range note.Tasks {
		parts = append(parts, t.Text)
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
