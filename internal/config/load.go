package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix is prepended to every environment variable, e.g. BOT_SERVER_PORT.
const envPrefix = "BOT"

// keys lists every configuration key so that environment variables are
// honored even when no default or config file value exists for them.
var keys = []string{
	"server.port",
	"server.log_level",
	"auth.jwt_secret",
	"auth.token_lifetime_minutes",
	"llm.gemini_api_key",
	"llm.model_name",
	"llm.max_retries",
	"llm.retry_delay_seconds",
	"llm.temperature",
	"queue.capacity",
	"queue.history_size",
	"queue.task_expiry_minutes",
	"queue.job_timeout_seconds",
	"redis.url",
	"discord.bot_token",
	"discord.api_base_url",
	"discord.bot_name",
	"discord.request_timeout_seconds",
	"daily_game.timezone",
	"daily_game.check_interval_seconds",
}

// setDefaults registers the default value for every optional setting.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("llm.model_name", "gemini-2.0-flash")
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_delay_seconds", 2)
	v.SetDefault("llm.temperature", 0.9)
	v.SetDefault("queue.capacity", 10)
	v.SetDefault("queue.history_size", 50)
	v.SetDefault("queue.task_expiry_minutes", 15)
	v.SetDefault("queue.job_timeout_seconds", 120)
	v.SetDefault("discord.api_base_url", "https://discord.com/api/v10")
	v.SetDefault("discord.bot_name", "CunningBot")
	v.SetDefault("discord.request_timeout_seconds", 10)
	v.SetDefault("daily_game.timezone", "America/Los_Angeles")
	v.SetDefault("daily_game.check_interval_seconds", 60)
}

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from the config file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
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

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
