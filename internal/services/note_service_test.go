package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sousnote/internal/gateway"
	"sousnote/internal/models"
	"sousnote/internal/store"
)

// memNoteStore is an in-memory store.NoteStore for service tests.
type memNoteStore struct {
	notes []*models.Note
}

func (m *memNoteStore) CreateNote(ctx context.Context, note *models.Note) error {
	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}
	note.CreatedAt = time.Now().UTC()
	note.UpdatedAt = note.CreatedAt
	m.notes = append(m.notes, note)
	return nil
}

func (m *memNoteStore) GetNote(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	for _, n := range m.notes {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memNoteStore) ListNotes(ctx context.Context, params store.NoteListParams) ([]*models.Note, error) {
	return m.notes, nil
}

func (m *memNoteStore) ReplaceNotes(ctx context.Context, notes []*models.Note) error {
	m.notes = notes
	return nil
}

func (m *memNoteStore) SetTaskDone(ctx context.Context, noteID uuid.UUID, taskIndex int, done bool) (*models.Note, error) {
	note, err := m.GetNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if taskIndex < 0 || taskIndex >= len(note.Tasks) {
		return nil, store.ErrTaskIndexOutOfRange
	}
	note.Tasks[taskIndex].Done = done
	return note, nil
}

func (m *memNoteStore) LatestNoteByCategory(ctx context.Context, category string) (*models.Note, error) {
	var latest *models.Note
	for _, n := range m.notes {
		if n.Category != category {
			continue
		}
		if latest == nil || n.CreatedAt.After(latest.CreatedAt) {
			latest = n
		}
	}
	if latest == nil {
		return nil, store.ErrNotFound
	}
	return latest, nil
}

func (m *memNoteStore) UpdateNoteTasks(ctx context.Context, noteID uuid.UUID, tasks []models.Task) error {
	note, err := m.GetNote(ctx, noteID)
	if err != nil {
		return err
	}
	note.Tasks = tasks
	return nil
}

func (m *memNoteStore) MarkNoteEmbedded(ctx context.Context, noteID, embeddingID uuid.UUID) error {
	note, err := m.GetNote(ctx, noteID)
	if err != nil {
		return err
	}
	note.EmbeddingID = &embeddingID
	note.IsEmbedded = true
	return nil
}

// stubJobClient records enqueued background work.
type stubJobClient struct {
	embeds   []uuid.UUID
	extracts []uuid.UUID
	texts    []string
}

func (s *stubJobClient) EnqueueNoteEmbed(ctx context.Context, noteID uuid.UUID) error {
	s.embeds = append(s.embeds, noteID)
	return nil
}

func (s *stubJobClient) EnqueueNoteExtract(ctx context.Context, noteID uuid.UUID, text string) error {
	s.extracts = append(s.extracts, noteID)
	s.texts = append(s.texts, text)
	return nil
}

func (s *stubJobClient) Enqueue(ctx context.Context, task *asynq.Task, relatedNote *uuid.UUID, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	return &asynq.TaskInfo{}, nil
}

func (s *stubJobClient) Close() error { return nil }

// stubAI returns canned gateway results.
type stubAI struct {
	extraction gateway.TaskExtraction
	recipe     models.RecipeDetails
	recipeErr  error
	ident      gateway.ContentIdentification
}

func (s *stubAI) ExtractTasks(ctx context.Context, text string) (gateway.TaskExtraction, error) {
	return s.extraction, nil
}

func (s *stubAI) CategorizeTasks(ctx context.Context, text string) (gateway.TaskCategorization, error) {
	return gateway.DefaultTaskCategorization(), nil
}

func (s *stubAI) ExtractGroceries(ctx context.Context, text string) (gateway.GroceryExtraction, error) {
	return gateway.DefaultGroceryExtraction(), nil
}

func (s *stubAI) GenerateRecipe(ctx context.Context, request string) (models.RecipeDetails, error) {
	return s.recipe, s.recipeErr
}

func (s *stubAI) IdentifyContent(ctx context.Context, text string) (gateway.ContentIdentification, error) {
	return s.ident, nil
}

func TestCreateFromTextNewNote(t *testing.T) {
	notes := &memNoteStore{}
	ai := &stubAI{extraction: gateway.TaskExtraction{
		Intent: gateway.IntentNew,
		Tasks:  []gateway.ExtractedTask{{Text: "buy milk"}, {Text: "buy eggs"}},
	}}
	svc := NewNoteService(notes, ai, nil)

	result, err := svc.CreateFromText(context.Background(), "buy milk and eggs", "grocery")
	require.NoError(t, err)
	assert.False(t, result.Appended)
	assert.Equal(t, "grocery", result.Note.Category)
	assert.Equal(t, "buy milk and eggs", result.Note.Title)
	require.Len(t, result.Note.Tasks, 2)
	assert.Equal(t, "buy milk", result.Note.Tasks[0].Text)
	assert.Len(t, notes.notes, 1)
}

func TestCreateFromTextAppendsToLatestInCategory(t *testing.T) {
	notes := &memNoteStore{}
	existing := &models.Note{
		Category: "grocery",
		Tasks:    []models.Task{{Text: "bread", Done: true}},
	}
	require.NoError(t, notes.CreateNote(context.Background(), existing))

	ai := &stubAI{extraction: gateway.TaskExtraction{
		Intent: gateway.IntentAppend,
		Tasks:  []gateway.ExtractedTask{{Text: "butter"}},
	}}
	svc := NewNoteService(notes, ai, nil)

	result, err := svc.CreateFromText(context.Background(), "also add butter", "grocery")
	require.NoError(t, err)
	assert.True(t, result.Appended)
	assert.Equal(t, existing.ID, result.Note.ID)
	require.Len(t, result.Note.Tasks, 2)
	// Existing tasks keep their state; new lines land after them.
	assert.True(t, result.Note.Tasks[0].Done)
	assert.Equal(t, "butter", result.Note.Tasks[1].Text)
	assert.Len(t, notes.notes, 1, "append must not create a second note")
}

func TestCreateFromTextAppendWithoutTargetCreates(t *testing.T) {
	notes := &memNoteStore{}
	ai := &stubAI{extraction: gateway.TaskExtraction{
		Intent: gateway.IntentAppend,
		Tasks:  []gateway.ExtractedTask{{Text: "butter"}},
	}}
	svc := NewNoteService(notes, ai, nil)

	result, err := svc.CreateFromText(context.Background(), "also add butter", "grocery")
	require.NoError(t, err)
	assert.False(t, result.Appended, "with no note to extend, append degrades to create")
	assert.Len(t, notes.notes, 1)
}

func TestCreateFromTextRejectsEmpty(t *testing.T) {
	svc := NewNoteService(&memNoteStore{}, &stubAI{}, nil)
	_, err := svc.CreateFromText(context.Background(), "   \n ", "")
	require.Error(t, err)
}

func TestCreateRecipe(t *testing.T) {
	notes := &memNoteStore{}
	ai := &stubAI{recipe: models.RecipeDetails{
		Title:       "Pancakes",
		Ingredients: []string{"2 cups flour", "1 cup milk"},
	}}
	svc := NewNoteService(notes, ai, nil)

	note, err := svc.CreateRecipe(context.Background(), "pancakes")
	require.NoError(t, err)
	assert.True(t, note.IsRecipe)
	assert.Equal(t, "recipe", note.Category)
	assert.Equal(t, "Pancakes", note.Title)
	require.NotNil(t, note.RecipeDetails)
	assert.Len(t, note.RecipeDetails.Ingredients, 2)
}

func TestCreateRecipePropagatesGatewayError(t *testing.T) {
	ai := &stubAI{recipeErr: assert.AnError}
	svc := NewNoteService(&memNoteStore{}, ai, nil)

	_, err := svc.CreateRecipe(context.Background(), "pancakes")
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestToggleTaskFlipsState(t *testing.T) {
	notes := &memNoteStore{}
	note := &models.Note{Category: "grocery", Tasks: []models.Task{{Text: "milk"}}}
	require.NoError(t, notes.CreateNote(context.Background(), note))
	svc := NewNoteService(notes, &stubAI{}, nil)

	updated, err := svc.ToggleTask(context.Background(), note.ID, 0)
	require.NoError(t, err)
	assert.True(t, updated.Tasks[0].Done)
}

func TestToggleTaskOutOfRange(t *testing.T) {
	notes := &memNoteStore{}
	note := &models.Note{Category: "grocery", Tasks: []models.Task{{Text: "milk"}}}
	require.NoError(t, notes.CreateNote(context.Background(), note))
	svc := NewNoteService(notes, &stubAI{}, nil)

	_, err := svc.ToggleTask(context.Background(), note.ID, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrTaskIndexOutOfRange)
}

func TestCreateFromTextEnqueuesEmbedJob(t *testing.T) {
	notes := &memNoteStore{}
	jobs := &stubJobClient{}
	ai := &stubAI{extraction: gateway.TaskExtraction{
		Intent: gateway.IntentNew,
		Tasks:  []gateway.ExtractedTask{{Text: "buy milk"}},
	}}
	svc := NewNoteService(notes, ai, jobs)

	result, err := svc.CreateFromText(context.Background(), "buy milk", "grocery")
	require.NoError(t, err)
	require.Len(t, jobs.embeds, 1)
	assert.Equal(t, result.Note.ID, jobs.embeds[0])
}

func TestReextractTasksEnqueues(t *testing.T) {
	notes := &memNoteStore{}
	note := &models.Note{Category: "grocery", Tasks: []models.Task{{Text: "milk"}}}
	require.NoError(t, notes.CreateNote(context.Background(), note))
	jobs := &stubJobClient{}
	svc := NewNoteService(notes, &stubAI{}, jobs)

	err := svc.ReextractTasks(context.Background(), note.ID, "milk, eggs and butter")
	require.NoError(t, err)
	require.Len(t, jobs.extracts, 1)
	assert.Equal(t, note.ID, jobs.extracts[0])
	assert.Equal(t, "milk, eggs and butter", jobs.texts[0])
}

func TestReextractTasksUnknownNote(t *testing.T) {
	svc := NewNoteService(&memNoteStore{}, &stubAI{}, &stubJobClient{})

	err := svc.ReextractTasks(context.Background(), uuid.New(), "some text")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestReextractTasksWithoutJobClient(t *testing.T) {
	notes := &memNoteStore{}
	note := &models.Note{Category: "grocery"}
	require.NoError(t, notes.CreateNote(context.Background(), note))
	svc := NewNoteService(notes, &stubAI{}, nil)

	err := svc.ReextractTasks(context.Background(), note.ID, "some text")
	require.Error(t, err)
}

func TestTitleFromTextClipsLongLines(t *testing.T) {
	long := "this is a very long first line of a dictated note that keeps going well past the clip point"
	title := titleFromText(long + "\nsecond line")
	assert.LessOrEqual(t, len([]rune(title)), 60)
	assert.Contains(t, title, "...")

	assert.Equal(t, "Untitled note", titleFromText("  \n  "))
}
