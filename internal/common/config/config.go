// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig               `mapstructure:"app"`
	Camunda   CamundaConfig           `mapstructure:"camunda"`
	Redis     RedisConfig             `mapstructure:"redis"`
	Logging   LoggingConfig           `mapstructure:"logging"`
	Workers   map[string]WorkerConfig `mapstructure:"workers"`
	Assistant AssistantConfig         `mapstructure:"assistant"`
	Server    ServerConfig            `mapstructure:"server"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
	UsePlaintext   bool   `mapstructure:"use_plaintext"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // caps retries handed back to the broker
}

// AssistantConfig points the workers at the suggestion catalog and the
// connector state in Redis.
type AssistantConfig struct {
	// CatalogPath is resolved against the module root when relative.
	CatalogPath    string `mapstructure:"catalog_path"`
	StateKeyPrefix string `mapstructure:"state_key_prefix"`
	StateTTL       int    `mapstructure:"state_ttl"` // seconds, 0 keeps state forever

	// DefaultSuggestionLimit caps suggestion lists when a job sends no
	// limit. 0 returns every relevant suggestion.
	DefaultSuggestionLimit int `mapstructure:"default_suggestion_limit"`
	// MaxQuestionLength bounds fallback questions in bytes. 0 keeps the
	// worker's built-in bound.
	MaxQuestionLength int `mapstructure:"max_question_length"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
