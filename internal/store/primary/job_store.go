package primary

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sousnote/internal/models"
	"sousnote/internal/store"
)

// RecordJobEnqueue mirrors an Asynq enqueue event into background_jobs.
func (s *StoreImpl) RecordJobEnqueue(ctx context.Context, params store.JobRecordParams) error {
	payload := params.Payload
	if payload == nil {
		payload = json.RawMessage("{}")
	}
	query := `
		INSERT INTO background_jobs (job_id, task_type, payload, queue, status, related_note_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`
	now := time.Now().UTC()
	_, err := s.db.Exec(ctx, query,
		params.JobID, params.TaskType, payload, params.Queue, params.Status, params.RelatedNote, now,
	)
	if err != nil {
		return fmt.Errorf("failed to record job enqueue for %s: %w", params.JobID, err)
	}
	return nil
}

// UpdateJobStatus moves a recorded job through its lifecycle.
func (s *StoreImpl) UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE background_jobs SET status = $1, updated_at = $2 WHERE job_id = $3`,
		status, time.Now().UTC(), jobID,
	)
	if err != nil {
		return fmt.Errorf("failed to update job %s status: %w", jobID, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListJobs returns recent background jobs, newest first.
func (s *StoreImpl) ListJobs(ctx context.Context, limit int) ([]*models.BackgroundJob, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, job_id, task_type, payload, queue, status, related_note_id, created_at, updated_at
		FROM background_jobs ORDER BY created_at DESC LIMIT $1`
	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query background jobs: %w", err)
	}
	defer rows.Close()

	jobs := []*models.BackgroundJob{}
	for rows.Next() {
		job := &models.BackgroundJob{}
		if err := rows.Scan(
			&job.ID, &job.JobID, &job.TaskType, &job.Payload, &job.Queue,
			&job.Status, &job.RelatedNote, &job.CreatedAt, &job.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate job rows: %w", err)
	}
	return jobs, nil
}
