package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the server configuration, loaded from a YAML file.
// Secrets (bot tokens, API keys) come from environment variables
// instead, so the file can be committed alongside the deployment.
type Config struct {
	IndexURL     string `yaml:"index_url"`
	DBPath       string `yaml:"db_path"`
	ListenAddr   string `yaml:"listen_addr"`
	LookbackDays int    `yaml:"lookback_days"`

	// Interval between upstream refreshes, as a Go duration string.
	RefreshInterval string `yaml:"refresh_interval"`

	Archive  ArchiveConfig  `yaml:"archive"`
	Delivery DeliveryConfig `yaml:"delivery"`
	AI       AIConfig       `yaml:"ai"`
}

// ArchiveConfig controls git snapshots of fetched documents.
type ArchiveConfig struct {
	Path string `yaml:"path"`
	Push bool   `yaml:"push"`
}

// DeliveryConfig controls scheduled digest delivery to chat channels.
type DeliveryConfig struct {
	ScheduleKind   string `yaml:"schedule_kind"` // interval, daily, weekly
	ScheduleExpr   string `yaml:"schedule_expr"`
	Timezone       string `yaml:"timezone"`
	DiscordChannel string `yaml:"discord_channel"`
	TelegramChatID int64  `yaml:"telegram_chat_id"`
}

// AIConfig selects the narrative generation provider.
type AIConfig struct {
	Provider string `yaml:"provider"` // gemini or moonshot; empty disables AI
}

// Load reads and validates a config file, applying defaults for
// optional fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.IndexURL == "" {
		return nil, fmt.Errorf("index_url is required")
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "granola-digest.db"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = 7
	}
	if cfg.RefreshInterval == "" {
		cfg.RefreshInterval = "30m"
	}
	return &cfg, nil
}
