// internal/workers/assistant/generate-fallback-response/config.go
package generatefallbackresponse

import (
	"time"

	"insights-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	// MaxQuestionLength bounds the question in bytes. 0 disables the check.
	MaxQuestionLength int
	MaxRetries        int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:           30 * time.Second,
		MaxQuestionLength: 2000,
		MaxRetries:        3,
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
	if cfg.Assistant.MaxQuestionLength > 0 {
		c.MaxQuestionLength = cfg.Assistant.MaxQuestionLength
	}
	return c
}
