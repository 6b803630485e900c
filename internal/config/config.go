// Package config loads the docforms CLI configuration from defaults, an
// optional YAML file and DOCFORMS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/goliatone/go-docforms/pkg/model"
)

// Config is the resolved CLI configuration.
type Config struct {
	OverridesDir string            `mapstructure:"overrides_dir"`
	Renderer     string            `mapstructure:"renderer"`
	View         string            `mapstructure:"view"`
	Cache        bool              `mapstructure:"cache"`
	Log          LogConfig         `mapstructure:"log"`
	Titles       map[string]string `mapstructure:"titles"`
}

// LogConfig selects the slog handler built by NewLogger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Renderer: "json",
		View:     "full",
		Cache:    true,
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	v         *viper.Viper
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager creates a config manager and loads the initial config. An empty
// cfgFile searches for docforms.yaml in the working directory and in
// $HOME/.docforms; a missing file is not an error.
func NewManager(cfgFile string) (*Manager, error) {
	cm := &Manager{v: viper.New()}

	if err := cm.initViper(cfgFile); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

func (cm *Manager) initViper(cfgFile string) error {
	defaults := DefaultConfig()
	cm.v.SetDefault("overrides_dir", defaults.OverridesDir)
	cm.v.SetDefault("renderer", defaults.Renderer)
	cm.v.SetDefault("view", defaults.View)
	cm.v.SetDefault("cache", defaults.Cache)
	cm.v.SetDefault("log.level", defaults.Log.Level)
	cm.v.SetDefault("log.format", defaults.Log.Format)

	cm.v.SetEnvPrefix("DOCFORMS")
	cm.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cm.v.AutomaticEnv()

	if cfgFile != "" {
		cm.v.SetConfigFile(cfgFile)
	} else {
		cm.v.SetConfigName("docforms")
		cm.v.SetConfigType("yaml")
		cm.v.AddConfigPath(".")
		cm.v.AddConfigPath("$HOME/.docforms")
	}

	if err := cm.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("config: read config file: %w", err)
		}
	}

	return nil
}

func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := cm.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if _, err := cfg.TitleMap(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Get returns the current configuration.
func (cm *Manager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// ConfigFile reports the file the configuration was read from, if any.
func (cm *Manager) ConfigFile() string {
	return cm.v.ConfigFileUsed()
}

// OnChange registers a callback for config changes.
func (cm *Manager) OnChange(fn func(*Config)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.callbacks = append(cm.callbacks, fn)
}

// WatchConfig enables hot-reloading of configuration. Reloads that fail to
// parse keep the previous configuration.
func (cm *Manager) WatchConfig() {
	cm.v.OnConfigChange(func(fsnotify.Event) {
		cfg, err := cm.load()
		if err != nil {
			return
		}

		cm.mu.Lock()
		cm.config = cfg
		callbacks := make([]func(*Config), len(cm.callbacks))
		copy(callbacks, cm.callbacks)
		cm.mu.Unlock()

		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	cm.v.WatchConfig()
}

// TitleMap converts the configured section titles into builder titles.
// Unknown category names are rejected.
func (c Config) TitleMap() (map[model.Category]string, error) {
	if len(c.Titles) == 0 {
		return nil, nil
	}
	out := make(map[model.Category]string, len(c.Titles))
	for name, title := range c.Titles {
		category := model.Category(strings.ToLower(strings.TrimSpace(name)))
		if !knownCategory(category) {
			return nil, fmt.Errorf("config: titles: unknown category %q", name)
		}
		out[category] = title
	}
	return out, nil
}

// NewLogger builds the slog logger described by the log settings.
func (c LogConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	raw := strings.TrimSpace(c.Level)
	if raw == "" {
		raw = "warn"
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return nil, fmt.Errorf("config: log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(strings.TrimSpace(c.Format)) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("config: unknown log format %q", c.Format)
	}
}

func knownCategory(c model.Category) bool {
	switch c {
	case model.CategoryPersonActive, model.CategoryPersonPassive, model.CategoryThirdParty,
		model.CategoryClient, model.CategoryAddress, model.CategoryProcess,
		model.CategoryAuthority, model.CategoryOther:
		return true
	default:
		return false
	}
}
