package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full application configuration shared by all binaries.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Discord  DiscordConfig  `mapstructure:"discord"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Assist   AssistConfig   `mapstructure:"assist"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds the local HTTP control surface settings.
type ServerConfig struct {
	Port         int      `mapstructure:"port"`
	AllowOrigins []string `mapstructure:"allow_origins"`
	// MaxBodyBytes bounds request bodies; schedule photos arrive base64-encoded
	// so this has to sit comfortably above the raw image size.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes"`
}

// DatabaseConfig holds the PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // minutes
}

// DSN builds the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig holds the Redis settings. Redis is optional: it backs the
// cross-restart notification debounce and the ingest rate limit, and both
// degrade gracefully when it is unreachable.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// DiscordConfig holds the Discord bot settings.
type DiscordConfig struct {
	BotToken  string `mapstructure:"bot_token"`
	ChannelID string `mapstructure:"channel_id"`
	// OwnerID is the single allow-listed Discord user; every command and
	// mention is authorised against it.
	OwnerID string `mapstructure:"owner_id"`
}

// TelegramConfig holds the Telegram notifier settings.
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// GeminiConfig holds the hosted multimodal model settings.
type GeminiConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// AssistConfig holds the assistant's scheduling knobs.
type AssistConfig struct {
	// OwnerID is the database owner identity every record is scoped to.
	OwnerID string `mapstructure:"owner_id"`
	// Timezone is the fixed local timezone for all day/time comparisons.
	Timezone string `mapstructure:"timezone"`
	// MorningAt / EveningAt are the two daily trigger times ("HH:MM").
	MorningAt string `mapstructure:"morning_at"`
	EveningAt string `mapstructure:"evening_at"`
	// MorningLookahead is the forward window for the morning reminder.
	MorningLookahead time.Duration `mapstructure:"morning_lookahead"`
}

// LogConfig controls zap output.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration with precedence: env vars > config file > defaults.
// Env vars use the MASAR_ prefix with dots replaced by underscores,
// e.g. MASAR_DISCORD_BOT_TOKEN, MASAR_GEMINI_API_KEY.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 3001)
	v.SetDefault("server.allow_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.max_body_bytes", int64(12<<20)) // base64 photos

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "masar")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Asia/Riyadh")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", 60)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("gemini.model", "gemini-1.5-flash")
	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("gemini.timeout", "60s")

	v.SetDefault("assist.timezone", "Asia/Riyadh")
	v.SetDefault("assist.morning_at", "07:00")
	v.SetDefault("assist.evening_at", "21:00")
	v.SetDefault("assist.morning_lookahead", "2h")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("MASAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// No config file: defaults plus env vars only.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

// Validate checks settings every binary needs. Credentials specific to one
// binary are checked by the per-binary validators below so that, say, the
// Telegram notifier does not demand a Discord token.
func (c *Config) Validate() error {
	if c.Assist.OwnerID == "" {
		return fmt.Errorf("config: assist.owner_id must be set")
	}
	if c.Assist.MorningLookahead <= 0 {
		return fmt.Errorf("config: assist.morning_lookahead must be positive")
	}
	if err := validateClock(c.Assist.MorningAt); err != nil {
		return fmt.Errorf("config: assist.morning_at: %w", err)
	}
	if err := validateClock(c.Assist.EveningAt); err != nil {
		return fmt.Errorf("config: assist.evening_at: %w", err)
	}
	if _, err := time.LoadLocation(c.Assist.Timezone); err != nil {
		return fmt.Errorf("config: assist.timezone: %w", err)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port must be in 1-65535")
	}
	return nil
}

// ValidateDiscord checks settings the Discord bot binary requires.
func (c *Config) ValidateDiscord() error {
	if c.Discord.BotToken == "" {
		return fmt.Errorf("config: discord.bot_token must be set")
	}
	if c.Discord.ChannelID == "" {
		return fmt.Errorf("config: discord.channel_id must be set")
	}
	if c.Discord.OwnerID == "" {
		return fmt.Errorf("config: discord.owner_id must be set")
	}
	return nil
}

// ValidateTelegram checks settings the Telegram notifier binary requires.
func (c *Config) ValidateTelegram() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("config: telegram.bot_token must be set")
	}
	if c.Telegram.ChatID == 0 {
		return fmt.Errorf("config: telegram.chat_id must be set")
	}
	return nil
}

// ValidateGemini checks settings the vision/assistant paths require.
func (c *Config) ValidateGemini() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("config: gemini.api_key must be set")
	}
	return nil
}

func validateClock(s string) error {
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("expected HH:MM, got %q", s)
	}
	return nil
}
