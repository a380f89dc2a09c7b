package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server   Server   `mapstructure:"server"`
	Database Database `mapstructure:"database"`
	Redis    Redis    `mapstructure:"redis"`
	JWT      JWT      `mapstructure:"jwt"`
	AI       AI       `mapstructure:"ai"`
}

type Server struct {
	Addr string `mapstructure:"addr"`
}

type Database struct {
	URL string `mapstructure:"url"`
}

type Redis struct {
	Addr string `mapstructure:"addr"`
}

type JWT struct {
	Secret string `mapstructure:"secret"`
}

type AI struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// Load reads config.yaml from the working directory (optional) and applies
// environment overrides.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("ai.base_url", "https://api.openai.com/v1")
	v.SetDefault("ai.model", "gpt-4o-mini")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.BindEnv("server.addr", "SERVER_ADDR")
	v.BindEnv("database.url", "DATABASE_URL")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("jwt.secret", "JWT_SECRET")
	v.BindEnv("ai.api_key", "OPENAI_API_KEY")
	v.BindEnv("ai.base_url", "OPENAI_BASE_URL")
	v.BindEnv("ai.model", "OPENAI_MODEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Database.URL == "" {
		return nil, errors.New("database url is required (DATABASE_URL or database.url)")
	}
	if cfg.JWT.Secret == "" {
		return nil, errors.New("jwt secret is required (JWT_SECRET or jwt.secret)")
	}
	return &cfg, nil
}
