package config

import (
	"fmt"
	"strings"

	"sousnote/internal/tasks"
)

// Validate checks the loaded configuration for the settings the server
// and worker cannot run without. CLI-only invocations tolerate missing
// AI keys because the local heuristic extractor still works.
func (c *Config) Validate() error {
	var problems []string

	if c.Database.Primary.DSN == "" {
		problems = append(problems, "database.primary.dsn is required")
	}

	if c.AI.OpenaiApiKey == "" && c.AI.GeminiApiKey == "" {
		problems = append(problems, "no AI provider configured: set OPENAI_API_KEY or GEMINI_API_KEY")
	}

	if c.Redis.Address == "" {
		problems = append(problems, "redis.address is required for background jobs")
	}

	if c.Worker.Concurrency <= 0 {
		problems = append(problems, "worker.concurrency must be positive")
	}
	if len(c.Worker.Queues) == 0 {
		problems = append(problems, "worker.queues must name at least one queue")
	} else if _, ok := c.Worker.Queues[tasks.QueueEmbeddings]; !ok {
		problems = append(problems, fmt.Sprintf("worker.queues must include %q; embed jobs are enqueued there", tasks.QueueEmbeddings))
	}

	if c.Embedding.Dimension <= 0 {
		problems = append(problems, "embedding.dimension must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}
