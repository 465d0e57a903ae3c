package gateway

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"sousnote/internal/models"
)

var errNoLocalRecipe = errors.New("recipe generation has no local fallback")

// Chain tries an ordered list of providers per operation: one pass, no
// backoff, first success wins. When every provider fails the operation's
// documented safe default is returned with a nil error, so callers can
// treat an all-empty result as valid input.
type Chain struct {
	Extractors   []TaskExtractor
	Categorizers []TaskCategorizer
	Groceries    []GroceryExtractor
	Recipes      []RecipeGenerator
	Identifiers  []ContentIdentifier
}

// NewChain builds a chain from providers implementing any subset of the
// gateway interfaces, preserving order.
func NewChain(providers ...any) *Chain {
	c := &Chain{}
	for _, p := range providers {
		if e, ok := p.(TaskExtractor); ok {
			c.Extractors = append(c.Extractors, e)
		}
		if tc, ok := p.(TaskCategorizer); ok {
			c.Categorizers = append(c.Categorizers, tc)
		}
		if g, ok := p.(GroceryExtractor); ok {
			c.Groceries = append(c.Groceries, g)
		}
		if r, ok := p.(RecipeGenerator); ok {
			c.Recipes = append(c.Recipes, r)
		}
		if id, ok := p.(ContentIdentifier); ok {
			c.Identifiers = append(c.Identifiers, id)
		}
	}
	return c
}

func (c *Chain) ExtractTasks(ctx context.Context, text string) (TaskExtraction, error) {
	for _, p := range c.Extractors {
		result, err := p.ExtractTasks(ctx, text)
		if err != nil {
			log.Warnf("Task extraction via %s failed, trying next provider: %v", p.Name(), err)
			continue
		}
		return result, nil
	}
	log.Warn("All task extraction providers failed; returning safe default.")
	return DefaultTaskExtraction(), nil
}

func (c *Chain) CategorizeTasks(ctx context.Context, text string) (TaskCategorization, error) {
	for _, p := range c.Categorizers {
		result, err := p.CategorizeTasks(ctx, text)
		if err != nil {
			log.Warnf("Task categorization via %s failed, trying next provider: %v", p.Name(), err)
			continue
		}
		return result, nil
	}
	log.Warn("All task categorization providers failed; returning safe default.")
	return DefaultTaskCategorization(), nil
}

func (c *Chain) ExtractGroceries(ctx context.Context, text string) (GroceryExtraction, error) {
	for _, p := range c.Groceries {
		result, err := p.ExtractGroceries(ctx, text)
		if err != nil {
			log.Warnf("Grocery extraction via %s failed, trying next provider: %v", p.Name(), err)
			continue
		}
		return result, nil
	}
	log.Warn("All grocery extraction providers failed; returning safe default.")
	return DefaultGroceryExtraction(), nil
}

// GenerateRecipe keeps its error: unlike the extraction operations there
// is no useful empty recipe to degrade to, and callers asked for the AI
// result itself.
func (c *Chain) GenerateRecipe(ctx context.Context, request string) (models.RecipeDetails, error) {
	var lastErr error = errNoLocalRecipe
	for _, p := range c.Recipes {
		recipe, err := p.GenerateRecipe(ctx, request)
		if err != nil {
			log.Warnf("Recipe generation via %s failed, trying next provider: %v", p.Name(), err)
			lastErr = err
			continue
		}
		return recipe, nil
	}
	return models.RecipeDetails{}, lastErr
}

func (c *Chain) IdentifyContent(ctx context.Context, text string) (ContentIdentification, error) {
	for _, p := range c.Identifiers {
		result, err := p.IdentifyContent(ctx, text)
		if err != nil {
			log.Warnf("Content identification via %s failed, trying next provider: %v", p.Name(), err)
			continue
		}
		return result, nil
	}
	return DefaultContentIdentification(), nil
}

func (c *Chain) Name() string { return "chain" }
