package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	log "github.com/sirupsen/logrus"

	"sousnote/internal/costtracker"
	"sousnote/internal/models"
)

// GeminiGateway implements the gateway interfaces over the Google
// Generative AI API. It is typically wired as the second link of the
// fallback chain behind OpenAI.
type GeminiGateway struct {
	client      *genai.Client
	model       string
	prompts     Prompts
	costTracker costtracker.CostTracker
}

// NewGeminiGateway creates a Gemini-backed gateway around a shared genai
// client. A nil client yields a disabled gateway whose calls fail fast,
// matching how the chain expects providers to degrade.
func NewGeminiGateway(client *genai.Client, model string, prompts Prompts, costTracker costtracker.CostTracker) *GeminiGateway {
	return &GeminiGateway{
		client:      client,
		model:       model,
		prompts:     prompts.withDefaults(),
		costTracker: costTracker,
	}
}

func (g *GeminiGateway) Name() string { return "gemini" }

func (g *GeminiGateway) complete(ctx context.Context, operation, prompt string) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("gemini gateway is not initialized (missing API key)")
	}

	model := g.client.GenerativeModel(g.model)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate content failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no candidates returned from Gemini")
	}

	var out string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out += string(text)
		}
	}
	if out == "" {
		return "", fmt.Errorf("gemini returned no text parts")
	}

	if g.costTracker != nil && resp.UsageMetadata != nil {
		event := costtracker.CostEvent{
			Provider:     "gemini",
			Operation:    operation,
			Model:        g.model,
			InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
			OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		}
		if err := g.costTracker.RecordCost(ctx, event); err != nil {
			log.Errorf("Failed to record Gemini usage for %s: %v", operation, err)
		}
	}

	return extractJSON(out), nil
}

func (g *GeminiGateway) ExtractTasks(ctx context.Context, text string) (TaskExtraction, error) {
	content, err := g.complete(ctx, "task_extraction", renderPrompt(g.prompts.TaskExtraction, text))
	if err != nil {
		return TaskExtraction{}, err
	}
	var result TaskExtraction
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return TaskExtraction{}, fmt.Errorf("failed to parse task extraction response: %w", err)
	}
	if result.Tasks == nil {
		result.Tasks = []ExtractedTask{}
	}
	if result.Intent != IntentAppend {
		result.Intent = IntentNew
	}
	return result, nil
}

func (g *GeminiGateway) CategorizeTasks(ctx context.Context, text string) (TaskCategorization, error) {
	content, err := g.complete(ctx, "task_categorization", renderPrompt(g.prompts.TaskCategorization, text))
	if err != nil {
		return TaskCategorization{}, err
	}
	var result TaskCategorization
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return TaskCategorization{}, fmt.Errorf("failed to parse categorization response: %w", err)
	}
	if result.Tasks == nil {
		result.Tasks = []ExtractedTask{}
	}
	if result.NoteGroups == nil {
		result.NoteGroups = []NoteGroup{}
	}
	return result, nil
}

func (g *GeminiGateway) ExtractGroceries(ctx context.Context, text string) (GroceryExtraction, error) {
	content, err := g.complete(ctx, "grocery_extraction", renderPrompt(g.prompts.GroceryExtraction, text))
	if err != nil {
		return GroceryExtraction{}, err
	}
	var result GroceryExtraction
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return GroceryExtraction{}, fmt.Errorf("failed to parse grocery extraction response: %w", err)
	}
	if result.Categories == nil {
		result.Categories = map[string][]GroceryEntry{}
	}
	for _, k := range GroceryKeys {
		if result.Categories[k] == nil {
			result.Categories[k] = []GroceryEntry{}
		}
	}
	return result, nil
}

func (g *GeminiGateway) GenerateRecipe(ctx context.Context, request string) (models.RecipeDetails, error) {
	content, err := g.complete(ctx, "recipe_generation", renderPrompt(g.prompts.RecipeGeneration, request))
	if err != nil {
		return models.RecipeDetails{}, err
	}
	var recipe models.RecipeDetails
	if err := json.Unmarshal([]byte(content), &recipe); err != nil {
		return models.RecipeDetails{}, fmt.Errorf("failed to parse recipe response: %w", err)
	}
	if recipe.Title == "" || len(recipe.Ingredients) == 0 {
		return models.RecipeDetails{}, fmt.Errorf("recipe response missing title or ingredients")
	}
	return recipe, nil
}

func (g *GeminiGateway) IdentifyContent(ctx context.Context, text string) (ContentIdentification, error) {
	content, err := g.complete(ctx, "content_identification", renderPrompt(g.prompts.ContentIdentification, text))
	if err != nil {
		return ContentIdentification{}, err
	}
	var result ContentIdentification
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return ContentIdentification{}, fmt.Errorf("failed to parse identification response: %w", err)
	}
	if result.ContentType == "" {
		result.ContentType = "note"
	}
	return result, nil
}
