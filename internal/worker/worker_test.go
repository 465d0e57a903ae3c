package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sousnote/internal/gateway"
	"sousnote/internal/models"
	"sousnote/internal/tasks"
)

type fakeEmbedder struct {
	err    error
	called []uuid.UUID
}

func (f *fakeEmbedder) EmbedNote(ctx context.Context, noteID uuid.UUID) error {
	f.called = append(f.called, noteID)
	return f.err
}

type fakeExtractor struct {
	result gateway.TaskExtraction
	err    error
}

func (f *fakeExtractor) ExtractTasks(ctx context.Context, text string) (gateway.TaskExtraction, error) {
	return f.result, f.err
}

type fakeUpdater struct {
	noteID uuid.UUID
	tasks  []models.Task
	err    error
}

func (f *fakeUpdater) UpdateNoteTasks(ctx context.Context, noteID uuid.UUID, tasks []models.Task) error {
	f.noteID = noteID
	f.tasks = tasks
	return f.err
}

func TestHandleNoteEmbed(t *testing.T) {
	noteID := uuid.New()
	embedder := &fakeEmbedder{}
	task, err := tasks.NewNoteEmbedTask(noteID)
	require.NoError(t, err)

	handler := HandleNoteEmbed(Deps{Embedder: embedder})
	require.NoError(t, handler(context.Background(), task))
	require.Len(t, embedder.called, 1)
	assert.Equal(t, noteID, embedder.called[0])
}

func TestHandleNoteEmbedPropagatesFailure(t *testing.T) {
	embedder := &fakeEmbedder{err: errors.New("vector store down")}
	task, err := tasks.NewNoteEmbedTask(uuid.New())
	require.NoError(t, err)

	handler := HandleNoteEmbed(Deps{Embedder: embedder})
	require.Error(t, handler(context.Background(), task), "handler error triggers asynq retry")
}

func TestHandleNoteEmbedBadPayloadSkipsRetry(t *testing.T) {
	handler := HandleNoteEmbed(Deps{Embedder: &fakeEmbedder{}})
	err := handler(context.Background(), asynq.NewTask(tasks.TypeNoteEmbed, []byte("not json")))
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry, "malformed payloads must not be retried")
}

func TestHandleNoteExtractUpdatesTasks(t *testing.T) {
	noteID := uuid.New()
	extractor := &fakeExtractor{result: gateway.TaskExtraction{
		Intent: gateway.IntentNew,
		Tasks:  []gateway.ExtractedTask{{Text: "buy milk"}, {Text: "call mom", Done: true}},
	}}
	updater := &fakeUpdater{}
	task, err := tasks.NewNoteExtractTask(noteID, "buy milk, call mom")
	require.NoError(t, err)

	handler := HandleNoteExtract(Deps{AI: extractor, Notes: updater})
	require.NoError(t, handler(context.Background(), task))
	assert.Equal(t, noteID, updater.noteID)
	require.Len(t, updater.tasks, 2)
	assert.Equal(t, "buy milk", updater.tasks[0].Text)
	assert.True(t, updater.tasks[1].Done)
}

func TestHandleNoteExtractStoreFailure(t *testing.T) {
	updater := &fakeUpdater{err: errors.New("db down")}
	task, err := tasks.NewNoteExtractTask(uuid.New(), "x")
	require.NoError(t, err)

	handler := HandleNoteExtract(Deps{AI: &fakeExtractor{}, Notes: updater})
	require.Error(t, handler(context.Background(), task))
}

func TestExtractPayloadRoundTrip(t *testing.T) {
	noteID := uuid.New()
	task, err := tasks.NewNoteExtractTask(noteID, "hello")
	require.NoError(t, err)

	var payload tasks.ExtractPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, noteID, payload.NoteID)
	assert.Equal(t, "hello", payload.Text)
}
