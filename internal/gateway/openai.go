package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"

	"sousnote/internal/config"
	"sousnote/internal/costtracker"
	"sousnote/internal/models"
)

// chatCompleter is the slice of the OpenAI client the gateway needs;
// tests substitute a fake.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Prompts carries the per-operation prompt templates. Zero-value fields
// fall back to the built-in defaults.
type Prompts struct {
	TaskExtraction        string
	TaskCategorization    string
	GroceryExtraction     string
	RecipeGeneration      string
	ContentIdentification string
}

func (p Prompts) withDefaults() Prompts {
	if p.TaskExtraction == "" {
		p.TaskExtraction = defaultTaskExtractionPrompt
	}
	if p.TaskCategorization == "" {
		p.TaskCategorization = defaultTaskCategorizationPrompt
	}
	if p.GroceryExtraction == "" {
		p.GroceryExtraction = defaultGroceryExtractionPrompt
	}
	if p.RecipeGeneration == "" {
		p.RecipeGeneration = defaultRecipePrompt
	}
	if p.ContentIdentification == "" {
		p.ContentIdentification = defaultContentIdentificationPrompt
	}
	return p
}

// OpenAIGateway implements every gateway interface over the OpenAI chat
// completions API with JSON response format.
type OpenAIGateway struct {
	client  chatCompleter
	model   string
	prompts Prompts

	costTracker costtracker.CostTracker
	pricing     map[string]config.PricingInfo
}

// NewOpenAIGateway creates a gateway using an OpenAI-compatible client.
// costTracker may be nil when usage recording is not wanted.
func NewOpenAIGateway(client chatCompleter, model string, prompts Prompts, costTracker costtracker.CostTracker, pricing map[string]config.PricingInfo) *OpenAIGateway {
	return &OpenAIGateway{
		client:      client,
		model:       model,
		prompts:     prompts.withDefaults(),
		costTracker: costTracker,
		pricing:     pricing,
	}
}

func (g *OpenAIGateway) Name() string { return "openai" }

// complete sends one prompt, records usage, and returns the raw JSON text.
func (g *OpenAIGateway) complete(ctx context.Context, operation, prompt string) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("openai gateway is not initialized with a client")
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from OpenAI")
	}

	g.recordUsage(ctx, operation, resp.Usage)

	return extractJSON(resp.Choices[0].Message.Content), nil
}

func (g *OpenAIGateway) recordUsage(ctx context.Context, operation string, usage openai.Usage) {
	if g.costTracker == nil || usage.TotalTokens == 0 {
		return
	}
	priceInfo, ok := g.pricing[g.model]
	if !ok {
		log.Warnf("Pricing info not found for model '%s'. Cannot record cost for %s.", g.model, operation)
		return
	}
	cost := float64(usage.PromptTokens)*priceInfo.InputPerToken +
		float64(usage.CompletionTokens)*priceInfo.OutputPerToken
	event := costtracker.CostEvent{
		Provider:     "openai",
		Operation:    operation,
		Model:        g.model,
		InputTokens:  usage.PromptTokens,
		OutputTokens: usage.CompletionTokens,
		AmountUSD:    cost,
	}
	if err := g.costTracker.RecordCost(ctx, event); err != nil {
		log.Errorf("Failed to record AI usage for %s: %v", operation, err)
	}
}

func (g *OpenAIGateway) ExtractTasks(ctx context.Context, text string) (TaskExtraction, error) {
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

func (g *OpenAIGateway) CategorizeTasks(ctx context.Context, text string) (TaskCategorization, error) {
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

func (g *OpenAIGateway) ExtractGroceries(ctx context.Context, text string) (GroceryExtraction, error) {
	content, err := g.complete(ctx, "grocery_extraction", renderPrompt(g.prompts.GroceryExtraction, text))
	if err != nil {
		return GroceryExtraction{}, err
	}
	var result GroceryExtraction
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return GroceryExtraction{}, fmt.Errorf("failed to parse grocery extraction response: %w", err)
	}
	// The wire contract promises all six keys; repair a partial response.
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

func (g *OpenAIGateway) GenerateRecipe(ctx context.Context, request string) (models.RecipeDetails, error) {
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

func (g *OpenAIGateway) IdentifyContent(ctx context.Context, text string) (ContentIdentification, error) {
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
