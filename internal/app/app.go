// Package app wires configuration, stores, AI providers, and services
// into one initialized application instance shared by every command.
package app

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/hibiken/asynq"
	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"sousnote/internal/config"
	"sousnote/internal/costtracker"
	"sousnote/internal/gateway"
	"sousnote/internal/services"
	"sousnote/internal/store"
	"sousnote/internal/store/primary"
	"sousnote/internal/store/vector"
	"sousnote/internal/transcribe"
)

type App struct {
	Config *config.Config

	// Stores. NoteStore, UsageStore and JobStore are all backed by the
	// same primary store; VectorStore is nil without a vector DSN.
	NoteStore   store.NoteStore
	UsageStore  store.UsageStore
	JobStore    store.JobStore
	VectorStore store.VectorStore
	JobClient   store.JobClient

	CostTracker costtracker.CostTracker

	// AI surfaces.
	AIChain     *gateway.Chain
	Transcriber *transcribe.Chain

	// Services.
	NoteService      *services.NoteService
	UnifiedService   *services.UnifiedListService
	EmbeddingService *services.EmbeddingService
	UsageService     *services.UsageService

	primaryStore *primary.StoreImpl
	openaiClient *openai.Client
	geminiClient *genai.Client
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	if err := app.initPrimaryStore(ctx); err != nil {
		return nil, err
	}
	if err := app.initJobClient(); err != nil {
		app.cleanupPartialInit()
		return nil, err
	}
	if err := app.initAIProviders(ctx); err != nil {
		app.cleanupPartialInit()
		return nil, err
	}
	if err := app.initVectorStore(ctx); err != nil {
		app.cleanupPartialInit()
		return nil, err
	}
	app.initServices()

	log.Debug("Application initialization complete")
	return app, nil
}

func (a *App) initPrimaryStore(ctx context.Context) error {
	ps, err := primary.NewPrimaryStore(ctx, a.Config.Database.Primary.DSN)
	if err != nil {
		return fmt.Errorf("init primary store: %w", err)
	}
	a.primaryStore = ps
	a.NoteStore = ps
	a.UsageStore = ps
	a.JobStore = ps
	a.CostTracker = costtracker.New(ps)
	return nil
}

func (a *App) initJobClient() error {
	if a.Config.Redis.Address == "" {
		log.Warn("Redis address not configured; background jobs are disabled.")
		return nil
	}
	jc, err := store.NewAsynqJobClient(asynq.RedisClientOpt{
		Addr:     a.Config.Redis.Address,
		Password: a.Config.Redis.Password,
		DB:       a.Config.Redis.DB,
	}, a.JobStore)
	if err != nil {
		return fmt.Errorf("init job client: %w", err)
	}
	a.JobClient = jc
	return nil
}

// initAIProviders builds the extraction chain (OpenAI, then Gemini, then
// the local heuristic) and the transcription chain in the same order.
func (a *App) initAIProviders(ctx context.Context) error {
	cfg := a.Config
	prompts, err := loadPrompts(cfg)
	if err != nil {
		return err
	}

	var chainProviders []any
	var transcribers []transcribe.Transcriber

	if cfg.AI.OpenaiApiKey != "" {
		a.openaiClient = openai.NewClient(cfg.AI.OpenaiApiKey)
		chainProviders = append(chainProviders, gateway.NewOpenAIGateway(
			a.openaiClient, cfg.AI.OpenaiModel, prompts, a.CostTracker, cfg.Pricing["openai"],
		))
		transcribers = append(transcribers, transcribe.NewOpenAITranscriber(a.openaiClient, cfg.Transcription.WhisperModel))
	} else {
		log.Warn("OpenAI API key not provided; OpenAI providers are disabled.")
	}

	if cfg.AI.GeminiApiKey != "" {
		client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.AI.GeminiApiKey))
		if err != nil {
			return fmt.Errorf("init Gemini client: %w", err)
		}
		a.geminiClient = client
		chainProviders = append(chainProviders, gateway.NewGeminiGateway(client, cfg.AI.GeminiModel, prompts, a.CostTracker))
		transcribers = append(transcribers, transcribe.NewGeminiTranscriber(client, cfg.Transcription.GeminiModel))
	} else {
		log.Warn("Gemini API key not provided; Gemini providers are disabled.")
	}

	// The heuristic extractor closes the chain so extraction always
	// produces something, even fully offline.
	chainProviders = append(chainProviders, gateway.NewLocalExtractor())

	a.AIChain = gateway.NewChain(chainProviders...)
	a.Transcriber = transcribe.NewChain(transcribers...)
	return nil
}

func (a *App) initVectorStore(ctx context.Context) error {
	if a.Config.Database.Vector.DSN == "" {
		log.Warn("Vector store DSN not configured; embeddings and related notes are disabled.")
		return nil
	}
	vs, err := vector.NewStore(ctx, a.Config.Database.Vector.DSN)
	if err != nil {
		return fmt.Errorf("init vector store: %w", err)
	}
	a.VectorStore = vs
	return nil
}

func (a *App) initServices() {
	cfg := a.Config
	a.NoteService = services.NewNoteService(a.NoteStore, a.AIChain, a.JobClient)
	a.UnifiedService = services.NewUnifiedListService(a.NoteStore)
	a.UsageService = services.NewUsageService(a.UsageStore)

	if a.openaiClient != nil && a.VectorStore != nil {
		a.EmbeddingService = services.NewEmbeddingService(
			a.openaiClient,
			cfg.Embedding.Model,
			cfg.Embedding.Dimension,
			a.NoteStore,
			a.VectorStore,
			a.CostTracker,
			cfg.Pricing["openai"][cfg.Embedding.Model].InputPerToken,
		)
	}
}

func loadPrompts(cfg *config.Config) (gateway.Prompts, error) {
	var prompts gateway.Prompts
	load := func(dst *string, path, name string) error {
		content, err := config.LoadPromptContent(path)
		if err != nil {
			return fmt.Errorf("load %s prompt: %w", name, err)
		}
		*dst = content
		return nil
	}
	p := cfg.AI.Prompts
	if err := load(&prompts.TaskExtraction, p.TaskExtraction, "task extraction"); err != nil {
		return prompts, err
	}
	if err := load(&prompts.TaskCategorization, p.TaskCategorization, "task categorization"); err != nil {
		return prompts, err
	}
	if err := load(&prompts.GroceryExtraction, p.GroceryExtraction, "grocery extraction"); err != nil {
		return prompts, err
	}
	if err := load(&prompts.RecipeGeneration, p.RecipeGeneration, "recipe generation"); err != nil {
		return prompts, err
	}
	if err := load(&prompts.ContentIdentification, p.ContentIdentification, "content identification"); err != nil {
		return prompts, err
	}
	return prompts, nil
}

// Ping checks connectivity of the configured backends.
func (a *App) Ping(ctx context.Context) error {
	if err := a.primaryStore.Ping(ctx); err != nil {
		return fmt.Errorf("primary database: %w", err)
	}
	if a.VectorStore != nil {
		if err := a.VectorStore.Ping(ctx); err != nil {
			return fmt.Errorf("vector store: %w", err)
		}
	}
	return nil
}

// Close releases every held connection. Safe on a partially built app.
func (a *App) Close() {
	a.cleanupPartialInit()
	if a.primaryStore != nil {
		a.primaryStore.Close()
	}
}

func (a *App) cleanupPartialInit() {
	if a.JobClient != nil {
		if err := a.JobClient.Close(); err != nil {
			log.WithError(err).Warn("Failed to close job client")
		}
	}
	if a.VectorStore != nil {
		if err := a.VectorStore.Close(); err != nil {
			log.WithError(err).Warn("Failed to close vector store")
		}
	}
	if a.geminiClient != nil {
		if err := a.geminiClient.Close(); err != nil {
			log.WithError(err).Warn("Failed to close Gemini client")
		}
	}
}
