package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"palette/internal/scorer"
)

var (
	// ErrUnsupportedFormat is returned for config files that are neither TOML nor YAML
	ErrUnsupportedFormat = errors.New("unsupported config format")
	// ErrConfigNotFound is returned when an explicit config path does not exist
	ErrConfigNotFound = errors.New("config file not found")
)

// Config represents the application configuration
type Config struct {
	Version int             `toml:"version" yaml:"version"`
	Engine  EngineSettings  `toml:"engine" yaml:"engine"`
	Logging LoggingSettings `toml:"logging" yaml:"logging"`
	Metrics MetricsSettings `toml:"metrics" yaml:"metrics"`
	UI      UISettings      `toml:"ui" yaml:"ui"`
	Catalog Catalog         `toml:"catalog" yaml:"catalog"`
}

// EngineSettings configures filtering and navigation
type EngineSettings struct {
	ShouldFilter  bool    `toml:"should_filter" yaml:"should_filter"`
	Loop          bool    `toml:"loop" yaml:"loop"`
	Scorer        string  `toml:"scorer" yaml:"scorer"`
	TypoThreshold float64 `toml:"typo_threshold" yaml:"typo_threshold"`
}

// LoggingSettings selects the zap configuration
type LoggingSettings struct {
	Env   string `toml:"env" yaml:"env"`
	Level string `toml:"level" yaml:"level"`
	File  string `toml:"file,omitempty" yaml:"file,omitempty"`
}

// MetricsSettings controls the Prometheus endpoint of `palette serve`
type MetricsSettings struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Addr    string `toml:"addr" yaml:"addr"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	VimKeys  bool   `toml:"vim_keys" yaml:"vim_keys"`
	Height   int    `toml:"height" yaml:"height"`
	Prompt   string `toml:"prompt" yaml:"prompt"`
	ShowHelp bool   `toml:"show_help" yaml:"show_help"`
}

// Scorer builds the configured scoring strategy
func (c *Config) Scorer() (scorer.Scorer, error) {
	return scorer.ByName(c.Engine.Scorer, c.Engine.TypoThreshold)
}

// Validate checks settings and the catalog
func (c *Config) Validate() error {
	if _, err := c.Scorer(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if t := c.Engine.TypoThreshold; t <= 0 || t > 1 {
		return fmt.Errorf("engine: typo_threshold must be in (0, 1], got %g", t)
	}
	switch c.Logging.Env {
	case "none", "dev", "local", "prod":
	default:
		return fmt.Errorf("logging: unknown env %q", c.Logging.Env)
	}
	if c.UI.Height < 0 {
		return fmt.Errorf("ui: height must not be negative")
	}
	if err := c.Catalog.Validate(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service for the default location
func NewConfigService() ConfigService {
	return NewConfigServiceAt(DefaultPath())
}

// NewConfigServiceAt creates a config service bound to path
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "palette", "config.toml")
}

func (cs *configService) Path() string { return cs.filePath }

// Load loads the configuration, falling back to defaults when the file is missing
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to the bound path
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := decode(path, data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	data, err := encode(path, config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func format(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

func decode(path string, data []byte, cfg *Config) error {
	switch format(path) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(cfg)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func encode(path string, cfg *Config) ([]byte, error) {
	switch format(path) {
	case ".toml":
		return toml.Marshal(cfg)
	case ".yaml", ".yml":
		return yaml.Marshal(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Engine: EngineSettings{
			ShouldFilter:  true,
			Scorer:        scorer.NameFuzzy,
			TypoThreshold: scorer.DefaultTypoThreshold,
		},
		Logging: LoggingSettings{
			Env:   "dev",
			Level: "info",
		},
		Metrics: MetricsSettings{
			Enabled: true,
			Addr:    ":8080",
		},
		UI: UISettings{
			VimKeys:  true,
			Height:   10,
			Prompt:   "> ",
			ShowHelp: true,
		},
	}
}

// SampleConfig returns the defaults plus a small example catalog
func SampleConfig() *Config {
	cfg := DefaultConfig()
	cfg.Catalog = Catalog{
		Items: []CatalogItem{
			{Value: "Search files", Keywords: []string{"find", "open"}},
			{Value: "Command history", Keywords: []string{"recent"}},
		},
		Groups: []CatalogGroup{
			{
				ID:      "fruits",
				Heading: "Fruits",
				Items: []CatalogItem{
					{Value: "Apple"},
					{Value: "Banana"},
					{Value: "Cherry"},
				},
			},
			{
				ID:      "settings",
				Heading: "Settings",
				Items: []CatalogItem{
					{Value: "Profile", Keywords: []string{"account", "user"}},
					{Value: "Billing", Keywords: []string{"invoice", "payment"}},
					{Value: "Experimental features", Disabled: true},
				},
			},
		},
	}
	return cfg
}
