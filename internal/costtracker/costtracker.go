package costtracker

import (
	"context"
	"time"

	"github.com/google/uuid"

	"sousnote/internal/models"
)

// CostEvent represents a single AI usage event and its cost.
type CostEvent struct {
	Provider     string // e.g. "openai", "gemini"
	Operation    string // e.g. "task_extraction", "transcription"
	Model        string
	InputTokens  int
	OutputTokens int
	AmountUSD    float64
	RelatedNote  *uuid.UUID
}

// CostTracker provides methods to record and report AI spend.
type CostTracker interface {
	RecordCost(ctx context.Context, event CostEvent) error
	TotalCost(ctx context.Context) (float64, error)
}

// UsageSink is the narrow persistence surface the tracker needs; the
// primary store satisfies it.
type UsageSink interface {
	RecordUsage(ctx context.Context, usage *models.AIUsageLog) error
	TotalCost(ctx context.Context) (float64, error)
}

type storeTracker struct {
	sink UsageSink
}

// New returns a tracker persisting through the given sink, or a noop
// tracker when sink is nil.
func New(sink UsageSink) CostTracker {
	if sink == nil {
		return &noopCostTracker{}
	}
	return &storeTracker{sink: sink}
}

func (t *storeTracker) RecordCost(ctx context.Context, event CostEvent) error {
	return t.sink.RecordUsage(ctx, &models.AIUsageLog{
		Timestamp:    time.Now().UTC(),
		ProviderName: event.Provider,
		Operation:    event.Operation,
		ModelName:    event.Model,
		InputTokens:  event.InputTokens,
		OutputTokens: event.OutputTokens,
		Cost:         event.AmountUSD,
		RelatedNote:  event.RelatedNote,
	})
}

func (t *storeTracker) TotalCost(ctx context.Context) (float64, error) {
	return t.sink.TotalCost(ctx)
}

type noopCostTracker struct{}

func (n *noopCostTracker) RecordCost(ctx context.Context, event CostEvent) error { return nil }
func (n *noopCostTracker) TotalCost(ctx context.Context) (float64, error)        { return 0, nil }
