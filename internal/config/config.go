package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
)

type Config struct {
	Port                          string        `mapstructure:"PORT"`
	StoreDriver                   string        `mapstructure:"STORE_DRIVER"`
	DatabasePath                  string        `mapstructure:"DATABASE_PATH"`
	BoltPath                      string        `mapstructure:"BOLT_PATH"`
	SessionSecret                 string        `mapstructure:"SESSION_SECRET"`
	SessionTTL                    time.Duration `mapstructure:"SESSION_TTL"`
	LogLevel                      string        `mapstructure:"LOG_LEVEL"`
	ChangeDebounce                time.Duration `mapstructure:"CHANGE_DEBOUNCE"`
	NoticeDuration                time.Duration `mapstructure:"NOTICE_DURATION"`
	DiscordBotToken               string        `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string        `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("STORE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_PATH", "diets.db")
	v.SetDefault("BOLT_PATH", "diets.bolt")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CHANGE_DEBOUNCE", "300ms")
	v.SetDefault("NOTICE_DURATION", "3s")

	v.BindEnv("SESSION_SECRET")
	v.BindEnv("DISCORD_BOT_TOKEN")
	v.BindEnv("DISCORD_NOTIFICATIONS_CHANNEL_ID")

	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if config.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}
	if config.StoreDriver != DriverSQLite && config.StoreDriver != DriverBolt {
		return nil, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", DriverSQLite, DriverBolt, config.StoreDriver)
	}

	return &config, nil
}

// DiscordEnabled reports whether notices should be mirrored to Discord.
func (c *Config) DiscordEnabled() bool {
	return c.DiscordBotToken != "" && c.DiscordNotificationsChannelID != ""
}
