package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port            int
	DBPath          string
	LogLevel        string
	SeedData        bool
	TelegramToken   string
	TelegramChatID  string
	TelegramAPIBase string
}

// fileConfig mirrors Config for the optional YAML config file. Every field is
// a pointer so an absent key leaves the env/default value alone.
type fileConfig struct {
	Port            *int    `yaml:"port"`
	DBPath          *string `yaml:"db_path"`
	LogLevel        *string `yaml:"log_level"`
	SeedData        *bool   `yaml:"seed_data"`
	TelegramToken   *string `yaml:"telegram_bot_token"`
	TelegramChatID  *string `yaml:"telegram_chat_id"`
	TelegramAPIBase *string `yaml:"telegram_api_base"`
}

// Load builds the configuration from defaults, environment variables, and the
// YAML file at path (skipped when path is empty). File values win over env so
// a checked-in config file behaves predictably across shells.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Port:            envInt("PORT", 3001),
		DBPath:          envStr("DB_PATH", "data/analytics.db"),
		LogLevel:        envStr("LOG_LEVEL", "info"),
		SeedData:        envBool("SEED_DATA", true),
		TelegramToken:   envStr("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:  envStr("TELEGRAM_CHAT_ID", ""),
		TelegramAPIBase: envStr("TELEGRAM_API_BASE", ""),
	}

	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if fc.Port != nil {
		c.Port = *fc.Port
	}
	if fc.DBPath != nil {
		c.DBPath = *fc.DBPath
	}
	if fc.LogLevel != nil {
		c.LogLevel = *fc.LogLevel
	}
	if fc.SeedData != nil {
		c.SeedData = *fc.SeedData
	}
	if fc.TelegramToken != nil {
		c.TelegramToken = *fc.TelegramToken
	}
	if fc.TelegramChatID != nil {
		c.TelegramChatID = *fc.TelegramChatID
	}
	if fc.TelegramAPIBase != nil {
		c.TelegramAPIBase = *fc.TelegramAPIBase
	}
	return nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	if (c.TelegramToken == "") != (c.TelegramChatID == "") {
		return fmt.Errorf("telegram_bot_token and telegram_chat_id must be set together")
	}
	return nil
}

// TelegramConfigured reports whether the notification relay can be enabled.
func (c *Config) TelegramConfigured() bool {
	return c.TelegramToken != "" && c.TelegramChatID != ""
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}
