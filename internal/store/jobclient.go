package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"sousnote/internal/tasks"
)

var _ JobClient = (*AsynqJobClient)(nil)

// AsynqJobClient enqueues tasks through Redis and records each enqueue
// event to the JobStore.
type AsynqJobClient struct {
	client   *asynq.Client
	jobStore JobStore
}

func NewAsynqJobClient(redisOpt asynq.RedisClientOpt, js JobStore) (*AsynqJobClient, error) {
	if js == nil {
		return nil, fmt.Errorf("JobStore cannot be nil for AsynqJobClient")
	}
	return &AsynqJobClient{client: asynq.NewClient(redisOpt), jobStore: js}, nil
}

func (jc *AsynqJobClient) Close() error {
	return jc.client.Close()
}

// Enqueue submits a task and mirrors the event to the database. A failure
// to record does not fail the enqueue; the job is already in Redis.
func (jc *AsynqJobClient) Enqueue(ctx context.Context, task *asynq.Task, relatedNote *uuid.UUID, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if jc.client == nil {
		return nil, fmt.Errorf("asynq client is not initialized")
	}
	info, err := jc.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return nil, fmt.Errorf("enqueue task %q: %w", task.Type(), err)
	}
	log.WithFields(log.Fields{"type": task.Type(), "id": info.ID, "queue": info.Queue}).Debug("Enqueued background task")

	jobUUID, err := uuid.Parse(info.ID)
	if err != nil {
		log.WithError(err).Warnf("Asynq task ID %q is not a UUID; job record will be incomplete", info.ID)
	}
	record := JobRecordParams{
		JobID:       jobUUID,
		TaskType:    task.Type(),
		Payload:     task.Payload(),
		Queue:       info.Queue,
		Status:      "enqueued",
		RelatedNote: relatedNote,
	}
	if err := jc.jobStore.RecordJobEnqueue(ctx, record); err != nil {
		log.WithError(err).Errorf("Failed to record enqueue of task %s", info.ID)
	}
	return info, nil
}

func (jc *AsynqJobClient) EnqueueNoteEmbed(ctx context.Context, noteID uuid.UUID) error {
	task, err := tasks.NewNoteEmbedTask(noteID)
	if err != nil {
		return err
	}
	if _, err := jc.Enqueue(ctx, task, &noteID, asynq.Queue(tasks.QueueEmbeddings)); err != nil {
		return fmt.Errorf("enqueue embed job for note %s: %w", noteID, err)
	}
	return nil
}

func (jc *AsynqJobClient) EnqueueNoteExtract(ctx context.Context, noteID uuid.UUID, text string) error {
	task, err := tasks.NewNoteExtractTask(noteID, text)
	if err != nil {
		return err
	}
	if _, err := jc.Enqueue(ctx, task, &noteID); err != nil {
		return fmt.Errorf("enqueue extract job for note %s: %w", noteID, err)
	}
	return nil
}
