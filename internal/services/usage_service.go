package services

import (
	"context"
	"fmt"

	"sousnote/internal/models"
	"sousnote/internal/store"
)

// UsageReport is the AI spend summary for the usage command.
type UsageReport struct {
	TotalCost   float64
	ByOperation []store.OperationUsage
	Entries     []*models.AIUsageLog
}

// UsageService reports AI spend from the usage log.
type UsageService struct {
	usage store.UsageStore
}

func NewUsageService(usage store.UsageStore) *UsageService {
	return &UsageService{usage: usage}
}

func (s *UsageService) Report(ctx context.Context, limit int) (UsageReport, error) {
	total, err := s.usage.TotalCost(ctx)
	if err != nil {
		return UsageReport{}, fmt.Errorf("total cost: %w", err)
	}
	byOp, err := s.usage.UsageByOperation(ctx)
	if err != nil {
		return UsageReport{}, fmt.Errorf("usage by operation: %w", err)
	}
	entries, err := s.usage.ListUsage(ctx, limit)
	if err != nil {
		return UsageReport{}, fmt.Errorf("list usage: %w", err)
	}
	return UsageReport{TotalCost: total, ByOperation: byOp, Entries: entries}, nil
}
