package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sousnote/internal/models"
)

type stubProvider struct {
	name       string
	extraction TaskExtraction
	recipe     models.RecipeDetails
	err        error
	calls      int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) ExtractTasks(ctx context.Context, text string) (TaskExtraction, error) {
	s.calls++
	if s.err != nil {
		return TaskExtraction{}, s.err
	}
	return s.extraction, nil
}

func (s *stubProvider) GenerateRecipe(ctx context.Context, request string) (models.RecipeDetails, error) {
	s.calls++
	if s.err != nil {
		return models.RecipeDetails{}, s.err
	}
	return s.recipe, nil
}

func TestChainFirstSuccessWins(t *testing.T) {
	first := &stubProvider{name: "a", extraction: TaskExtraction{Intent: IntentNew, Tasks: []ExtractedTask{{Text: "from a"}}}}
	second := &stubProvider{name: "b", extraction: TaskExtraction{Intent: IntentNew, Tasks: []ExtractedTask{{Text: "from b"}}}}
	chain := NewChain(first, second)

	result, err := chain.ExtractTasks(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "from a", result.Tasks[0].Text)
	assert.Equal(t, 0, second.calls, "second provider must not be tried when the first succeeds")
}

func TestChainFallsThroughOnFailure(t *testing.T) {
	first := &stubProvider{name: "a", err: errors.New("down")}
	second := &stubProvider{name: "b", extraction: TaskExtraction{Intent: IntentAppend, Tasks: []ExtractedTask{{Text: "from b"}}}}
	chain := NewChain(first, second)

	result, err := chain.ExtractTasks(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "from b", result.Tasks[0].Text)
	assert.Equal(t, 1, first.calls)
}

func TestChainReturnsSafeDefaultWhenAllFail(t *testing.T) {
	chain := NewChain(
		&stubProvider{name: "a", err: errors.New("down")},
		&stubProvider{name: "b", err: errors.New("also down")},
	)

	result, err := chain.ExtractTasks(context.Background(), "x")
	require.NoError(t, err, "an exhausted chain degrades, it does not fail")
	assert.Empty(t, result.Tasks)
	assert.Equal(t, IntentNew, result.Intent)

	groceries, err := chain.ExtractGroceries(context.Background(), "x")
	require.NoError(t, err)
	for _, k := range GroceryKeys {
		assert.Empty(t, groceries.Categories[k])
	}

	ident, err := chain.IdentifyContent(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "note", ident.ContentType)
	assert.Zero(t, ident.Confidence)
}

func TestChainRecipeKeepsError(t *testing.T) {
	downstream := errors.New("provider down")
	chain := NewChain(&stubProvider{name: "a", err: downstream})

	_, err := chain.GenerateRecipe(context.Background(), "pancakes")
	require.Error(t, err)
	assert.ErrorIs(t, err, downstream)

	// With no recipe providers at all the chain still errors.
	_, err = NewChain().GenerateRecipe(context.Background(), "pancakes")
	require.Error(t, err)
}

func TestLocalExtractorSplitsLines(t *testing.T) {
	e := NewLocalExtractor()

	result, err := e.ExtractTasks(context.Background(), "- buy milk\n- call mom\n")
	require.NoError(t, err)
	require.Len(t, result.Tasks, 2)
	assert.Equal(t, "buy milk", result.Tasks[0].Text)
	assert.Equal(t, "call mom", result.Tasks[1].Text)
	assert.Equal(t, IntentNew, result.Intent)
}

func TestLocalExtractorSplitsSentences(t *testing.T) {
	e := NewLocalExtractor()

	result, err := e.ExtractTasks(context.Background(), "Buy milk. Call mom about dinner.")
	require.NoError(t, err)
	require.Len(t, result.Tasks, 2)
	assert.Equal(t, "Buy milk", result.Tasks[0].Text)
}

func TestLocalExtractorDetectsAppendIntent(t *testing.T) {
	e := NewLocalExtractor()

	result, err := e.ExtractTasks(context.Background(), "also add eggs to the list")
	require.NoError(t, err)
	assert.Equal(t, IntentAppend, result.Intent)
}

func TestLocalExtractorEmptyInput(t *testing.T) {
	e := NewLocalExtractor()

	result, err := e.ExtractTasks(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, result.Tasks)
	assert.Equal(t, IntentNew, result.Intent)
}

func TestLocalExtractorGroceriesUseNarrowKeys(t *testing.T) {
	e := NewLocalExtractor()

	result, err := e.ExtractGroceries(context.Background(), "milk\nshrimp\nmystery item")
	require.NoError(t, err)
	assert.Equal(t, "milk", result.Categories["dairy"][0].Name)
	// Seafood collapses onto meat in the narrow 6-way shape.
	assert.Equal(t, "shrimp", result.Categories["meat"][0].Name)
	assert.Equal(t, "mystery item", result.Categories["other"][0].Name)
}
