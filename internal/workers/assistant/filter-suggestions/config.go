// internal/workers/assistant/filter-suggestions/config.go
package filtersuggestions

import (
	"time"

	"insights-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	// DefaultLimit applies when a job sends no limit. 0 returns everything.
	DefaultLimit int
	MaxRetries   int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      30 * time.Second,
		DefaultLimit: 0,
		MaxRetries:   3,
	}
}

// ConfigFromApp reads the worker's section and the assistant section of the
// app config.
func ConfigFromApp(cfg *config.Config) *Config {
	c := LoadConfig()
	if cfg == nil {
		return c
	}
	wcfg := config.GetWorkerConfig(cfg, TaskType)
	if wcfg.Timeout > 0 {
		c.Timeout = config.GetDuration(wcfg.Timeout)
	}
	c.MaxRetries = wcfg.MaxRetries
	c.DefaultLimit = cfg.Assistant.DefaultSuggestionLimit
	return c
}
