package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sousnote/internal/tasks"
)

func validTestConfig() *Config {
	cfg := &Config{}
	cfg.Database.Primary.DSN = "postgres://localhost/sousnote"
	cfg.AI.OpenaiApiKey = "sk-test"
	cfg.Redis.Address = "localhost:6379"
	cfg.Worker.Concurrency = 5
	cfg.Worker.Queues = map[string]int{"default": 5, tasks.QueueEmbeddings: 3}
	cfg.Embedding.Dimension = 1536
	return cfg
}

func TestValidatePasses(t *testing.T) {
	require.NoError(t, validTestConfig().Validate())
}

func TestValidateRequiresEmbeddingsQueue(t *testing.T) {
	cfg := validTestConfig()
	cfg.Worker.Queues = map[string]int{"default": 5}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), tasks.QueueEmbeddings)
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.primary.dsn")
	assert.Contains(t, err.Error(), "redis.address")
	assert.Contains(t, err.Error(), "worker.queues")
}

// The default queue map must cover the queue embed jobs are enqueued to,
// or a worker started with no config file silently ignores them.
func TestLoadConfigDefaultQueuesCoverEmbeds(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Contains(t, cfg.Worker.Queues, tasks.QueueEmbeddings)
	assert.Contains(t, cfg.Worker.Queues, "default")
}
