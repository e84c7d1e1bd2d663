package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment overrides. Nested keys use a
// double underscore: PORTFOLIO_STORE__URL -> store.url
const EnvPrefix = "PORTFOLIO_"

// Config holds all application configuration
type Config struct {
	ServerAddr string       `koanf:"server_addr"`
	StaticDir  string       `koanf:"static_dir"`
	LogLevel   string       `koanf:"log_level"`
	LogFormat  string       `koanf:"log_format"`
	Site       SiteConfig   `koanf:"site"`
	Store      StoreConfig  `koanf:"store"`
	Viewer     ViewerConfig `koanf:"viewer"`
	CORS       CORSConfig   `koanf:"cors"`
}

// SiteConfig holds page rendering settings
type SiteConfig struct {
	Title    string `koanf:"title"`
	Origin   string `koanf:"origin"`   // announced on cross-origin image loads
	Markdown bool   `koanf:"markdown"` // render descriptions as markdown
}

// StoreConfig locates the project store. URL wins over Path when set.
type StoreConfig struct {
	Path    string        `koanf:"path"`
	URL     string        `koanf:"url"`
	Retries int           `koanf:"retries"`
	Timeout time.Duration `koanf:"timeout"` // 0 waits indefinitely
}

// ViewerConfig holds media viewer settings
type ViewerConfig struct {
	Watermark     string `koanf:"watermark"`
	PopupMinWidth int    `koanf:"popup_min_width"` // viewports at least this wide get a popup
	PreviewWidth  int    `koanf:"preview_width"`
	PreviewHeight int    `koanf:"preview_height"`
	MaxPreview    int    `koanf:"max_preview"`
	RemoteImages  bool   `koanf:"remote_images"` // let previews fetch absolute http(s) URLs
}

// CORSConfig controls cross-origin access to media and the API
type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// Default returns the configuration used when no file or env overrides exist
func Default() *Config {
	return &Config{
		ServerAddr: ":8080",
		StaticDir:  "static",
		LogLevel:   "info",
		LogFormat:  "text",
		Site: SiteConfig{
			Title:  "Portfolio",
			Origin: "http://localhost:8080",
		},
		Store: StoreConfig{
			Path: "data/projects.json",
		},
		Viewer: ViewerConfig{
			Watermark:     "© Portfolio",
			PopupMinWidth: 900,
			PreviewWidth:  1024,
			PreviewHeight: 768,
			MaxPreview:    2048,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
	}
}

// Load reads the YAML file at path (if it exists) over the defaults, then
// overlays PORTFOLIO_* environment variables
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

var validLevels = map[string]bool{
	"debug": true, "info": true, "warning": true, "warn": true, "error": true, "fatal": true,
}

// Validate checks that the configuration contains usable values
func (c *Config) Validate() error {
	if c.ServerAddr == "" {
		return fmt.Errorf("server_addr is required")
	}
	if c.Store.Path == "" && c.Store.URL == "" {
		return fmt.Errorf("store.path or store.url is required")
	}
	if c.Store.Retries < 0 {
		return fmt.Errorf("store.retries must be non-negative")
	}
	if c.Store.Timeout < 0 {
		return fmt.Errorf("store.timeout must be non-negative")
	}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log_format %q: must be text or json", c.LogFormat)
	}
	if c.Viewer.PopupMinWidth <= 0 {
		return fmt.Errorf("viewer.popup_min_width must be positive")
	}
	if c.Viewer.MaxPreview <= 0 || c.Viewer.PreviewWidth <= 0 || c.Viewer.PreviewHeight <= 0 {
		return fmt.Errorf("viewer preview dimensions must be positive")
	}
	return nil
}
