package config

import (
	"fmt"
	"strings"
)

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// StateConfig selects and configures the watermark store backend.
type StateConfig struct {
	Backend string `mapstructure:"backend"` // "file" or "redis"
	Path    string `mapstructure:"path"`    // file backend only
}

// LLMConfig controls the relevance-scoring backend.
type LLMConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	Concurrency int    `mapstructure:"concurrency"`  // global in-flight scoring calls
	MaxAttempts int    `mapstructure:"max_attempts"` // per scoring call
	RetryBase   string `mapstructure:"retry_base"`   // duration string, e.g. "2s"
	Threshold   int    `mapstructure:"threshold"`    // items must score strictly above this
}

// EmailConfig holds SMTP delivery settings.
type EmailConfig struct {
	Host     string   `mapstructure:"host"`
	Port     int      `mapstructure:"port"`
	User     string   `mapstructure:"user"`
	Password string   `mapstructure:"password"`
	To       []string `mapstructure:"to"`
}

// FeedConfig defines a single monitored feed.
type FeedConfig struct {
	Name    string   `mapstructure:"name"`
	URLs    []string `mapstructure:"urls"`
	Adapter string   `mapstructure:"adapter"` // "rss", "atom" or "universal"
	Prompt  string   `mapstructure:"prompt"`  // relevance question injected ahead of item text
}

// Config is the top-level configuration structure.
type Config struct {
	App          AppConfig    `mapstructure:"app"`
	Redis        RedisConfig  `mapstructure:"redis"`
	State        StateConfig  `mapstructure:"state"`
	LLM          LLMConfig    `mapstructure:"llm"`
	Email        EmailConfig  `mapstructure:"email"`
	Feeds        []FeedConfig `mapstructure:"feeds"`
	PollInterval string       `mapstructure:"poll_interval"` // serve mode, e.g. "30m"
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.State.Backend == "" {
		c.State.Backend = "file"
	}
	if c.State.Path == "" {
		c.State.Path = "rss_state.json"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "openai/gpt-5-mini"
	}
	if c.LLM.Concurrency <= 0 {
		c.LLM.Concurrency = 32
	}
	if c.LLM.MaxAttempts <= 0 {
		c.LLM.MaxAttempts = 3
	}
	if c.LLM.RetryBase == "" {
		c.LLM.RetryBase = "2s"
	}
	if c.LLM.Threshold == 0 {
		c.LLM.Threshold = 5
	}
	if c.Email.Host == "" {
		c.Email.Host = "smtp.gmail.com"
	}
	if c.Email.Port == 0 {
		c.Email.Port = 587
	}
	if c.PollInterval == "" {
		c.PollInterval = "30m"
	}
	for i := range c.Feeds {
		if c.Feeds[i].Adapter == "" {
			c.Feeds[i].Adapter = "universal"
		}
	}
}

// Validate reports startup problems that must abort the process before
// any feed is touched. Scoring credentials are required; everything
// else degrades at run time instead.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.LLM.BaseURL) == "" {
		return fmt.Errorf("config: llm.base_url is required (or set LLM_BASE_URL)")
	}
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return fmt.Errorf("config: llm.api_key is required (or set LLM_API_KEY)")
	}
	if len(c.Feeds) == 0 {
		return fmt.Errorf("config: no feeds configured")
	}
	seen := map[string]struct{}{}
	for _, f := range c.Feeds {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("config: feed with empty name")
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("config: duplicate feed name %q", f.Name)
		}
		seen[f.Name] = struct{}{}
		if len(f.URLs) == 0 {
			return fmt.Errorf("config: feed %q has no urls", f.Name)
		}
	}
	return nil
}
