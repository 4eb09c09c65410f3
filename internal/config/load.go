package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name, e.g.
// FLASHCARDER_SERVER_PORT for server.port.
const EnvPrefix = "FLASHCARDER"

// envAliases lists unprefixed variable names also accepted for a key, so
// existing deployment environments keep working.
var envAliases = map[string][]string{
	"database.url": {"DATABASE_URL"},
	"llm.api_key":  {"OPENROUTER_API_KEY"},
	"llm.referer":  {"APP_URL"},
}

// Load reads configuration from defaults, an optional config file, and
// environment variables (which take precedence), and validates the result.
func Load() (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadLLM loads and validates only the LLM section. Tools that never open a
// database use it so they do not need a database URL.
func LoadLLM() (*LLMConfig, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}

	// UnmarshalKey would skip environment overrides of nested keys, so the
	// whole tree is decoded and only the llm section is validated.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(cfg.LLM); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg.LLM, nil
}

func newViper() (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, aliases := range envAliases {
		names := append([]string{envName(key)}, aliases...)
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("failed to bind environment for %s: %w", key, err)
		}
	}

	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.auto_migrate", false)

	v.SetDefault("llm.provider", ProviderOpenRouter)
	v.SetDefault("llm.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "google/gemini-2.0-flash-thinking-exp:free")
	v.SetDefault("llm.referer", "http://localhost:5173")
	v.SetDefault("llm.app_title", "FlashCarder App")
	v.SetDefault("llm.timeout_seconds", 60)
	v.SetDefault("llm.prompt_template_path", "")

	v.SetDefault("generation.default_count", 5)
	v.SetDefault("generation.max_count", 50)
	v.SetDefault("generation.persist_fallback", true)

	v.SetDefault("user.demo_username", "demo_user")
}

func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
