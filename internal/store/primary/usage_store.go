package primary

import (
	"context"
	"fmt"
	"time"

	"sousnote/internal/models"
	"sousnote/internal/store"
)

// RecordUsage inserts one AI usage event.
func (s *StoreImpl) RecordUsage(ctx context.Context, usage *models.AIUsageLog) error {
	if usage.Timestamp.IsZero() {
		usage.Timestamp = time.Now().UTC()
	}
	query := `
		INSERT INTO ai_usage_log (timestamp, provider_name, operation, model_name, input_tokens, output_tokens, cost, related_note_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := s.db.QueryRow(ctx, query,
		usage.Timestamp, usage.ProviderName, usage.Operation, usage.ModelName,
		usage.InputTokens, usage.OutputTokens, usage.Cost, usage.RelatedNote,
	).Scan(&usage.ID)
	if err != nil {
		return fmt.Errorf("failed to record AI usage: %w", err)
	}
	return nil
}

// TotalCost sums all recorded spend.
func (s *StoreImpl) TotalCost(ctx context.Context) (float64, error) {
	var total float64
	err := s.db.QueryRow(ctx, `SELECT COALESCE(SUM(cost), 0) FROM ai_usage_log`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum AI usage cost: %w", err)
	}
	return total, nil
}

// UsageByOperation aggregates spend per operation kind, highest cost
// first.
func (s *StoreImpl) UsageByOperation(ctx context.Context) ([]store.OperationUsage, error) {
	query := `
		SELECT operation, COUNT(*), COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0), COALESCE(SUM(cost), 0)
		FROM ai_usage_log GROUP BY operation ORDER BY SUM(cost) DESC`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate AI usage: %w", err)
	}
	defer rows.Close()

	out := []store.OperationUsage{}
	for rows.Next() {
		var agg store.OperationUsage
		if err := rows.Scan(&agg.Operation, &agg.Calls, &agg.InputTokens, &agg.OutputTokens, &agg.Cost); err != nil {
			return nil, fmt.Errorf("failed to scan usage aggregate: %w", err)
		}
		out = append(out, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate usage aggregates: %w", err)
	}
	return out, nil
}

// ListUsage returns the most recent usage events, newest first.
func (s *StoreImpl) ListUsage(ctx context.Context, limit int) ([]*models.AIUsageLog, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, timestamp, provider_name, operation, model_name, input_tokens, output_tokens, cost, related_note_id
		FROM ai_usage_log ORDER BY timestamp DESC LIMIT $1`
	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query AI usage: %w", err)
	}
	defer rows.Close()

	logs := []*models.AIUsageLog{}
	for rows.Next() {
		entry := &models.AIUsageLog{}
		if err := rows.Scan(
			&entry.ID, &entry.Timestamp, &entry.ProviderName, &entry.Operation, &entry.ModelName,
			&entry.InputTokens, &entry.OutputTokens, &entry.Cost, &entry.RelatedNote,
		); err != nil {
			return nil, fmt.Errorf("failed to scan usage row: %w", err)
		}
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate usage rows: %w", err)
	}
	return logs, nil
}
