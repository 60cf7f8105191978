package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/jask/agentdesk/internal/agent"
)

// Submission policies for overlapping requests on one screen.
const (
	PolicyLatest      = "latest"
	PolicyLastSettled = "last-settled"
)

// Config holds application configuration.
type Config struct {
	Agent  AgentConfig
	Submit SubmitConfig
	Log    LogConfig
	Stub   StubConfig
	UI     UIConfig
	Keys   map[string][]string
}

// AgentConfig holds backend settings.
type AgentConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout time.Duration
}

// SubmitConfig picks how overlapping submits settle.
type SubmitConfig struct {
	Policy string
}

// LogConfig holds logging settings. Path is only used by the TUI.
type LogConfig struct {
	Path  string
	Level string
}

// StubConfig holds dev backend settings.
type StubConfig struct {
	Addr    string
	Latency time.Duration
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Greeting       string
	CurrencySymbol string `mapstructure:"currency_symbol"`
}

// LoadFile reads configuration from .env, the config file and env. An empty
// path falls back to $AGENTDESK_CONFIG, then to the optional default file.
// Env var overrides use prefix AGENTDESK_.
func LoadFile(path string) (Config, error) {
	_ = godotenv.Load()
	if strings.TrimSpace(path) == "" {
		path = os.Getenv("AGENTDESK_CONFIG")
	}
	return load(path, false)
}

// LoadOrDefaults is LoadFile, except a named file that does not exist yet
// yields the defaults. Used before writing a first config file.
func LoadOrDefaults(path string) (Config, error) {
	_ = godotenv.Load()
	if strings.TrimSpace(path) == "" {
		path = os.Getenv("AGENTDESK_CONFIG")
	}
	return load(path, true)
}

func load(cfgPath string, missingOK bool) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("agent.base_url", agent.DefaultBaseURL)
	v.SetDefault("agent.timeout", "0s")
	v.SetDefault("submit.policy", PolicyLatest)
	v.SetDefault("log.path", filepath.Join(stateDir(), "agentdesk.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("stub.addr", ":8000")
	v.SetDefault("stub.latency", "0s")
	v.SetDefault("ui.greeting", "Hello! How can I assist you today?")
	v.SetDefault("ui.currency_symbol", "$")

	v.SetConfigType("toml")

	readFile := true
	if cfgPath != "" && missingOK {
		if _, err := os.Stat(cfgPath); errors.Is(err, fs.ErrNotExist) {
			readFile = false
		}
	}
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("AGENTDESK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if readFile {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			// an explicit file that is missing or broken is an error; the default location is optional
			if cfgPath != "" || !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Submit.Policy = strings.ToLower(strings.TrimSpace(c.Submit.Policy))
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the client cannot act on.
func (c Config) Validate() error {
	switch c.Submit.Policy {
	case PolicyLatest, PolicyLastSettled:
	default:
		return fmt.Errorf("config: submit.policy must be %q or %q, got %q", PolicyLatest, PolicyLastSettled, c.Submit.Policy)
	}
	u, err := url.Parse(c.Agent.BaseURL)
	if err != nil {
		return fmt.Errorf("config: agent.base_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: agent.base_url must be an http(s) URL, got %q", c.Agent.BaseURL)
	}
	if c.Agent.Timeout < 0 {
		return fmt.Errorf("config: agent.timeout must not be negative")
	}
	return nil
}

// DefaultPath is where the config file lives when none is named.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "agentdesk", "config.toml")
}

// Save writes cfg as TOML, creating the config directory if needed. An empty
// path falls back to $AGENTDESK_CONFIG, then DefaultPath. It returns the path
// written.
func Save(cfg Config, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = os.Getenv("AGENTDESK_CONFIG")
	}
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("agent.base_url", cfg.Agent.BaseURL)
	v.Set("agent.timeout", cfg.Agent.Timeout.String())
	v.Set("submit.policy", cfg.Submit.Policy)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("stub.addr", cfg.Stub.Addr)
	v.Set("stub.latency", cfg.Stub.Latency.String())
	v.Set("ui.greeting", cfg.UI.Greeting)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	for action, keys := range cfg.Keys {
		v.Set("keys."+action, keys)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}

func stateDir() string {
	if d := os.Getenv("XDG_STATE_HOME"); d != "" {
		return filepath.Join(d, "agentdesk")
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "state", "agentdesk")
}
