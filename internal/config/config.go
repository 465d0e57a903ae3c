package config

import (
	"fmt"

	"github.com/spf13/viper"

	"sousnote/internal/tasks"
)

// PricingInfo holds cost details per token for a specific model.
type PricingInfo struct {
	InputPerToken  float64 `mapstructure:"input_per_token"`
	OutputPerToken float64 `mapstructure:"output_per_token"`
}

type Config struct {
	Database struct {
		Primary struct {
			DSN string
		}
		Vector struct {
			DSN string `mapstructure:"DSN"`
		}
	}

	AI struct {
		OpenaiApiKey string `mapstructure:"openai_api_key"`
		GeminiApiKey string `mapstructure:"gemini_api_key"`
		OpenaiModel  string `mapstructure:"openai_model"`
		GeminiModel  string `mapstructure:"gemini_model"`
		// Prompt template overrides: file paths resolved by LoadPromptContent.
		Prompts struct {
			TaskExtraction        string `mapstructure:"task_extraction"`
			TaskCategorization    string `mapstructure:"task_categorization"`
			GroceryExtraction     string `mapstructure:"grocery_extraction"`
			RecipeGeneration      string `mapstructure:"recipe_generation"`
			ContentIdentification string `mapstructure:"content_identification"`
		} `mapstructure:"prompts"`
	} `mapstructure:"ai"`

	Embedding struct {
		Model     string `mapstructure:"model"`
		Dimension int    `mapstructure:"dimension"`
	} `mapstructure:"embedding"`

	Transcription struct {
		WhisperModel string `mapstructure:"whisper_model"`
		GeminiModel  string `mapstructure:"gemini_model"`
	} `mapstructure:"transcription"`

	List struct {
		DefaultLimit int `mapstructure:"default_limit"`
	} `mapstructure:"list"`

	Redis struct {
		Address  string
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	}

	Worker struct {
		Concurrency int            `mapstructure:"concurrency"`
		Queues      map[string]int `mapstructure:"queues"`
	}

	// Pricing: map[provider][model] = struct{input_per_token, output_per_token}
	Pricing map[string]map[string]PricingInfo `mapstructure:"pricing"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	// Allow viper to read environment variables; the API keys are bound
	// explicitly so the conventional variable names work without a prefix.
	viper.AutomaticEnv()
	viper.BindEnv("ai.openai_api_key", "OPENAI_API_KEY")
	viper.BindEnv("ai.gemini_api_key", "GEMINI_API_KEY")

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env vars may suffice.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	viper.SetDefault("ai.openai_model", "gpt-4o-mini")
	viper.SetDefault("ai.gemini_model", "gemini-1.5-flash")
	viper.SetDefault("embedding.model", "text-embedding-3-small")
	viper.SetDefault("embedding.dimension", 1536)
	viper.SetDefault("transcription.whisper_model", "whisper-1")
	viper.SetDefault("transcription.gemini_model", "gemini-1.5-flash")
	viper.SetDefault("list.default_limit", 20)
	viper.SetDefault("redis.address", "localhost:6379")
	viper.SetDefault("worker.concurrency", 5)
	// Embed jobs are enqueued to their own queue; the default map must
	// cover it or a default-config worker never consumes them.
	viper.SetDefault("worker.queues", map[string]int{"default": 5, tasks.QueueEmbeddings: 3})

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
