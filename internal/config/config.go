package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"     validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"       validate:"required"`
	LLM       LLMConfig       `mapstructure:"llm"        validate:"required"`
	Queue     QueueConfig     `mapstructure:"queue"      validate:"required"`
	Redis     RedisConfig     `mapstructure:"redis"      validate:"required"`
	Discord   DiscordConfig   `mapstructure:"discord"    validate:"required"`
	DailyGame DailyGameConfig `mapstructure:"daily_game" validate:"required"`
}

// ServerConfig contains the inbound HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// AuthConfig contains the settings used to verify gateway tokens on command routes.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	GeminiAPIKey      string  `mapstructure:"gemini_api_key"      validate:"required"`
	ModelName         string  `mapstructure:"model_name"          validate:"required"`
	MaxRetries        int     `mapstructure:"max_retries"         validate:"gte=0,lte=10"`
	RetryDelaySeconds int     `mapstructure:"retry_delay_seconds" validate:"gte=1,lte=60"`
	Temperature       float32 `mapstructure:"temperature"         validate:"gte=0,lte=2"`
}

// QueueConfig controls admission and bookkeeping of the outbound task queue.
type QueueConfig struct {
	// Capacity is the maximum number of queued plus running tasks.
	Capacity int `mapstructure:"capacity" validate:"required,gt=0"`

	// HistorySize bounds how many finished tasks remain queryable by ID.
	HistorySize int `mapstructure:"history_size" validate:"gte=0"`

	// TaskExpiryMinutes is how long a chat request may wait before it is
	// considered stale and skipped.
	TaskExpiryMinutes int `mapstructure:"task_expiry_minutes" validate:"gt=0"`

	// JobTimeoutSeconds caps the run time of a single chat job.
	JobTimeoutSeconds int `mapstructure:"job_timeout_seconds" validate:"gt=0"`
}

// RedisConfig contains the settings for the key-value store.
type RedisConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// DiscordConfig contains the outbound messaging platform settings.
type DiscordConfig struct {
	BotToken              string `mapstructure:"bot_token"               validate:"required"`
	APIBaseURL            string `mapstructure:"api_base_url"            validate:"required,url"`
	BotName               string `mapstructure:"bot_name"                validate:"required"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" validate:"gt=0"`
}

// DailyGameConfig contains the scheduler settings for daily game reminders.
type DailyGameConfig struct {
	Timezone             string `mapstructure:"timezone"               validate:"required,timezone"`
	CheckIntervalSeconds int    `mapstructure:"check_interval_seconds" validate:"gt=0"`
}
