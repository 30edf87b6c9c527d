// Package config provides YAML-based configuration loading for Postbox.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables recognized at startup. Both override the YAML file.
const (
	EnvMessagesTable = "POSTBOX_MESSAGES_TABLE"
	EnvTopic         = "POSTBOX_TOPIC"
)

// Config is the top-level Postbox configuration, loaded from postbox.yaml.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Store   StoreConfig   `yaml:"store"`
	Channel ChannelConfig `yaml:"channel"`
	Digest  DigestConfig  `yaml:"digest"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// StoreConfig holds connection settings for the message store.
type StoreConfig struct {
	Driver   string `yaml:"driver"` // "sqlite" or "mysql"
	Path     string `yaml:"path"`   // sqlite file path
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Database string `yaml:"database"`
	Table    string `yaml:"table"`
}

// ChannelConfig selects and configures the notification channel backend.
type ChannelConfig struct {
	Kind    string        `yaml:"kind"`  // "log", "slack" or "discord"
	Topic   string        `yaml:"topic"` // channel/topic identifier passed to Publish
	Slack   SlackConfig   `yaml:"slack"`
	Discord DiscordConfig `yaml:"discord"`
}

// SlackConfig holds credentials for the Slack channel backend.
type SlackConfig struct {
	BotToken string `yaml:"bot_token"`
}

// DiscordConfig holds credentials for the Discord channel backend.
type DiscordConfig struct {
	BotToken string `yaml:"bot_token"`
}

// DigestConfig controls the scheduled activity digest.
type DigestConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Schedule      string `yaml:"schedule"` // 5-field cron expression
	LookbackHours int    `yaml:"lookback_hours"`
}

// Load reads a YAML config file from path and returns a validated Config.
// A missing file is not an error: the defaults (plus environment overrides)
// apply, so the service runs with zero configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Parse(nil)
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config. Environment overrides
// are resolved here, once, so request handling never consults the environment.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Store.Driver == "" {
		c.Store.Driver = "sqlite"
	}
	if c.Store.Path == "" {
		c.Store.Path = "postbox.db"
	}
	if c.Store.Host == "" {
		c.Store.Host = "127.0.0.1"
	}
	if c.Store.Port == 0 {
		c.Store.Port = 3306
	}
	if c.Store.User == "" {
		c.Store.User = "root"
	}
	if c.Store.Database == "" {
		c.Store.Database = "postbox"
	}
	if c.Store.Table == "" {
		c.Store.Table = "messages"
	}
	if c.Channel.Kind == "" {
		c.Channel.Kind = "log"
	}
	if c.Channel.Topic == "" {
		c.Channel.Topic = "messages"
	}
	if c.Digest.Schedule == "" {
		c.Digest.Schedule = "0 8 * * *"
	}
	if c.Digest.LookbackHours == 0 {
		c.Digest.LookbackHours = 24
	}
}

// applyEnv overrides file-provided values with recognized environment
// variables.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvMessagesTable); v != "" {
		c.Store.Table = v
	}
	if v := os.Getenv(EnvTopic); v != "" {
		c.Channel.Topic = v
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	switch c.Store.Driver {
	case "sqlite", "mysql":
	default:
		errs = append(errs, fmt.Sprintf("store.driver must be sqlite or mysql, got %q", c.Store.Driver))
	}
	switch c.Channel.Kind {
	case "log":
	case "slack":
		if c.Channel.Slack.BotToken == "" {
			errs = append(errs, "channel.slack.bot_token is required for the slack channel")
		}
	case "discord":
		if c.Channel.Discord.BotToken == "" {
			errs = append(errs, "channel.discord.bot_token is required for the discord channel")
		}
	default:
		errs = append(errs, fmt.Sprintf("channel.kind must be log, slack or discord, got %q", c.Channel.Kind))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
