package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	derrors "github.com/drkube/drkube/internal/errors"
	"github.com/drkube/drkube/internal/logger"
)

const (
	// EnvPrefix is prepended to every environment override (DRKUBE_ENDPOINT, ...).
	EnvPrefix = "DRKUBE"

	// FileName is the config file name used for both global and project configs.
	FileName = "drkube.yml"

	// DefaultEndpoint is where the DrKube query service listens out of the box.
	DefaultEndpoint = "http://localhost:8091"

	// DefaultWebAddr is the listen address for `drkube web`.
	DefaultWebAddr = "127.0.0.1:8090"
)

// Config holds the resolved drkube settings.
type Config struct {
	Endpoint       string        `mapstructure:"endpoint" yaml:"endpoint"`
	Timeout        time.Duration `mapstructure:"timeout" yaml:"timeout"` // 0 means no timeout
	LogLevel       string        `mapstructure:"log_level" yaml:"log_level"`
	LogFile        string        `mapstructure:"log_file" yaml:"log_file"`
	RenderMarkdown bool          `mapstructure:"render_markdown" yaml:"render_markdown"`
	WebAddr        string        `mapstructure:"web_addr" yaml:"web_addr"`
}

// Keys lists every config key in display order.
var Keys = []string{"endpoint", "timeout", "log_level", "log_file", "render_markdown", "web_addr"}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Endpoint:       DefaultEndpoint,
		Timeout:        0,
		LogLevel:       "info",
		LogFile:        "",
		RenderMarkdown: false,
		WebAddr:        DefaultWebAddr,
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("endpoint", d.Endpoint)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("render_markdown", d.RenderMarkdown)
	v.SetDefault("web_addr", d.WebAddr)
}

// Load resolves configuration from, highest precedence first:
// DRKUBE_* environment variables, ./drkube.yml, the global config file, defaults.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigType("yaml")

	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read global config %s: %w", globalPath, err)
		}
		logger.Debug("Loaded global config from %s", globalPath)
	}

	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read project config %s: %w", projectPath, err)
		}
		logger.Debug("Merged project config from %s", projectPath)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// LoadEnvFile seeds the process environment from .env style files.
// Missing files are skipped; variables already set are never overwritten.
func LoadEnvFile(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if !fileExists(p) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
		logger.Debug("Loaded environment from %s", p)
	}
	return nil
}

// Validate checks that the configuration can drive a session.
func (c *Config) Validate() error {
	var errs derrors.MultiError

	u, err := url.Parse(c.Endpoint)
	switch {
	case c.Endpoint == "":
		errs.Append(derrors.NewValidationError("endpoint", c.Endpoint, "must not be empty"))
	case err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "":
		errs.Append(derrors.NewValidationError("endpoint", c.Endpoint, "must be an absolute http or https URL"))
	}

	if c.Timeout < 0 {
		errs.Append(derrors.NewValidationError("timeout", c.Timeout.String(), "must not be negative"))
	}

	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs.Append(derrors.NewValidationError("log_level", c.LogLevel, "must be one of debug, info, warn, error"))
	}

	if strings.TrimSpace(c.WebAddr) == "" {
		errs.Append(derrors.NewValidationError("web_addr", c.WebAddr, "must not be empty"))
	}

	return errs.ErrorOrNil()
}

// Values returns the config as key/value display strings, ordered like Keys.
func (c *Config) Values() [][]string {
	return [][]string{
		{"endpoint", c.Endpoint},
		{"timeout", c.Timeout.String()},
		{"log_level", c.LogLevel},
		{"log_file", c.LogFile},
		{"render_markdown", fmt.Sprintf("%t", c.RenderMarkdown)},
		{"web_addr", c.WebAddr},
	}
}

// GlobalPath returns $XDG_CONFIG_HOME/drkube/drkube.yml, falling back to ~/.config.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "drkube", FileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "drkube", FileName)
	}
	return filepath.Join(home, ".config", "drkube", FileName)
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return FileName
}

// Exists reports whether a global or project config file is present.
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// WriteGlobal writes cfg to the global config path.
func WriteGlobal(cfg *Config) error {
	return write(GlobalPath(), cfg)
}

// WriteProject writes cfg to ./drkube.yml.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
