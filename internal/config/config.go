package config

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"   validate:"required"`
	LLM        LLMConfig        `mapstructure:"llm"        validate:"required"`
	Generation GenerationConfig `mapstructure:"generation" validate:"required"`
	User       UserConfig       `mapstructure:"user"       validate:"required"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port                   int      `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string   `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	AllowedOrigins         []string `mapstructure:"allowed_origins"`
	ShutdownTimeoutSeconds int      `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig contains Postgres connection settings.
type DatabaseConfig struct {
	URL          string `mapstructure:"url"            validate:"required,url"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gt=0"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" validate:"gte=0"`
	AutoMigrate  bool   `mapstructure:"auto_migrate"`
}

// Provider names accepted by LLMConfig.Provider.
const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
)

// LLMConfig contains the completion endpoint settings.
// APIKey is deliberately optional: an empty key is sent as-is and the
// upstream rejects it.
type LLMConfig struct {
	Provider           string `mapstructure:"provider"             validate:"required,oneof=openrouter gemini"`
	BaseURL            string `mapstructure:"base_url"             validate:"required,url"`
	APIKey             string `mapstructure:"api_key"`
	Model              string `mapstructure:"model"                validate:"required"`
	Referer            string `mapstructure:"referer"`
	AppTitle           string `mapstructure:"app_title"`
	TimeoutSeconds     int    `mapstructure:"timeout_seconds"      validate:"gt=0"`
	PromptTemplatePath string `mapstructure:"prompt_template_path"`
}

// GenerationConfig controls the flashcard generation pipeline.
type GenerationConfig struct {
	DefaultCount int `mapstructure:"default_count" validate:"gte=1,ltefield=MaxCount"`
	MaxCount     int `mapstructure:"max_count"     validate:"gte=1,lte=50"`
	// PersistFallback stores and returns the placeholder card when the model
	// output could not be used. When false such results are rejected as
	// upstream failures and nothing is stored.
	PersistFallback bool `mapstructure:"persist_fallback"`
}

// UserConfig configures the single demo user.
type UserConfig struct {
	DemoUsername string `mapstructure:"demo_username" validate:"required"`
}
