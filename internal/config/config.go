package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	LLM      LLMConfig      `mapstructure:"llm"`
	UI       UIConfig       `mapstructure:"ui"`
	Log      LogConfig      `mapstructure:"log"`
	API      APIConfig      `mapstructure:"api"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LLMConfig holds layout generator settings. Provider is one of openai,
// remote or offline.
type LLMConfig struct {
	Provider  string        `mapstructure:"provider"`
	APIKeyEnv string        `mapstructure:"api_key_env"`
	APIKey    string        `mapstructure:"api_key"`
	Model     string        `mapstructure:"model"`
	Endpoint  string        `mapstructure:"endpoint"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// ResolveAPIKey returns the configured key, falling back to the environment
// variable named by APIKeyEnv.
func (c LLMConfig) ResolveAPIKey() string {
	if k := strings.TrimSpace(c.APIKey); k != "" {
		return k
	}
	if c.APIKeyEnv == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(c.APIKeyEnv))
}

// KeySource looks up a stored API key for a provider.
type KeySource interface {
	Get(provider string) (string, error)
}

// ResolveAPIKeyFrom is ResolveAPIKey with src consulted last.
func (c LLMConfig) ResolveAPIKeyFrom(src KeySource) string {
	if k := c.ResolveAPIKey(); k != "" || src == nil {
		return k
	}
	k, err := src.Get(c.Provider)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(k)
}

// UIConfig holds canvas presentation settings.
type UIConfig struct {
	GridSize         float64 `mapstructure:"grid_size"`
	GridColor        string  `mapstructure:"grid_color"`
	CanvasBackground string  `mapstructure:"canvas_background"`
	UnitsPerColumn   float64 `mapstructure:"units_per_column"`
	UnitsPerRow      float64 `mapstructure:"units_per_row"`
	SnapToGrid       bool    `mapstructure:"snap_to_grid"`
}

// LogConfig holds logger settings. Output is a file path; empty discards
// logs, since the terminal UI owns stdout.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// APIConfig holds generation service settings.
type APIConfig struct {
	Port       int    `mapstructure:"port"`
	CORSOrigin string `mapstructure:"cors_origin"`
}

func setDefaults(v *viper.Viper) {
	dataDir := filepath.Join(os.Getenv("HOME"), ".local", "share", "floorplan")
	v.SetDefault("database.path", filepath.Join(dataDir, "floorplan.db"))
	v.SetDefault("llm.provider", "offline")
	v.SetDefault("llm.api_key_env", "OPENAI_API_KEY")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "gpt-4o")
	v.SetDefault("llm.endpoint", "http://localhost:3000/api")
	v.SetDefault("llm.timeout", 60*time.Second)
	v.SetDefault("ui.grid_size", 20.0)
	v.SetDefault("ui.grid_color", "#DBDEE7")
	v.SetDefault("ui.canvas_background", "#f0f1f8")
	v.SetDefault("ui.units_per_column", 10.0)
	v.SetDefault("ui.units_per_row", 20.0)
	v.SetDefault("ui.snap_to_grid", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", filepath.Join(dataDir, "floorplan.log"))
	v.SetDefault("api.port", 3000)
	v.SetDefault("api.cors_origin", "http://localhost:4200")
}

// Path returns the config file location: $FLOORPLAN_CONFIG or
// ~/.config/floorplan/config.toml.
func Path() string {
	if p := os.Getenv("FLOORPLAN_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "floorplan", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix FLOORPLAN_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("FLOORPLAN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	if _, err := os.Stat(Path()); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
// The API key is stored in plain text; prefer the environment variable.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("llm.provider", cfg.LLM.Provider)
	v.Set("llm.api_key_env", cfg.LLM.APIKeyEnv)
	v.Set("llm.api_key", cfg.LLM.APIKey)
	v.Set("llm.model", cfg.LLM.Model)
	v.Set("llm.endpoint", cfg.LLM.Endpoint)
	v.Set("llm.timeout", cfg.LLM.Timeout.String())
	v.Set("ui.grid_size", cfg.UI.GridSize)
	v.Set("ui.grid_color", cfg.UI.GridColor)
	v.Set("ui.canvas_background", cfg.UI.CanvasBackground)
	v.Set("ui.units_per_column", cfg.UI.UnitsPerColumn)
	v.Set("ui.units_per_row", cfg.UI.UnitsPerRow)
	v.Set("ui.snap_to_grid", cfg.UI.SnapToGrid)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)
	v.Set("log.output", cfg.Log.Output)
	v.Set("api.port", cfg.API.Port)
	v.Set("api.cors_origin", cfg.API.CORSOrigin)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
