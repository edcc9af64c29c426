// Package config resolves the CLI settings from flags, environment, an
// optional config file and a .env file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/immich-janitor/immich-janitor/internal/immich"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. IMMICH_API_URL
const EnvPrefix = "IMMICH"

// Keys shared by flags, environment and the config file
const (
	KeyAPIURL        = "api-url"
	KeyAPIKey        = "api-key"
	KeyTimeout       = "timeout"
	KeyRateLimit     = "rate-limit"
	KeyRetryAttempts = "retry-attempts"
	KeyPageSize      = "page-size"
	KeyVerbose       = "verbose"
	KeyLogFile       = "log-file"
	KeyPresets       = "presets"
)

// Config is the resolved configuration of one invocation
type Config struct {
	APIURL        string
	APIKey        string
	Timeout       time.Duration
	RateLimit     float64
	RetryAttempts int
	PageSize      int
	Verbose       bool
	LogFile       string
	PresetsPath   string
}

// SetDefaults registers the default value of every key on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyTimeout, immich.DefaultTimeout)
	v.SetDefault(KeyRateLimit, immich.DefaultRateLimit)
	v.SetDefault(KeyRetryAttempts, immich.DefaultRetryAttempts)
	v.SetDefault(KeyPageSize, immich.DefaultPageSize)
	v.SetDefault(KeyPresets, DefaultPresetsPath())
}

// BindEnv makes v read IMMICH_* variables, dashes becoming underscores
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// LoadDotEnv loads .env from dir into the process environment, overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := godotenv.Overload(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ReadFile reads the config file. An explicit path must exist; otherwise
// $HOME/.immich-janitor.yaml is used when present.
func ReadFile(v *viper.Viper, explicit string) error {
	if explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", explicit, err)
		}
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	v.AddConfigPath(home)
	v.SetConfigName(".immich-janitor")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// Load builds a Config from v without validating it
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		APIURL:        strings.TrimSpace(v.GetString(KeyAPIURL)),
		APIKey:        strings.TrimSpace(v.GetString(KeyAPIKey)),
		Timeout:       v.GetDuration(KeyTimeout),
		RateLimit:     v.GetFloat64(KeyRateLimit),
		RetryAttempts: v.GetInt(KeyRetryAttempts),
		PageSize:      v.GetInt(KeyPageSize),
		Verbose:       v.GetBool(KeyVerbose),
		LogFile:       v.GetString(KeyLogFile),
		PresetsPath:   v.GetString(KeyPresets),
	}

	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("timeout must not be negative, got %s", cfg.Timeout)
	}
	return cfg, nil
}

// Validate checks the settings needed to reach the server
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return errors.New("IMMICH_API_URL is not set (use --api-url, the environment or a .env file)")
	}
	if c.APIKey == "" {
		return errors.New("IMMICH_API_KEY is not set (use --api-key, the environment or a .env file)")
	}

	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid api url %q: %w", c.APIURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid api url %q: scheme must be http or https", c.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid api url %q: missing host", c.APIURL)
	}
	if c.PageSize < 0 || c.RetryAttempts < 0 || c.RateLimit < 0 {
		return errors.New("page-size, retry-attempts and rate-limit must not be negative")
	}
	return nil
}

// ImmichConfig converts the settings for the API client
func (c *Config) ImmichConfig() immich.Config {
	return immich.Config{
		BaseURL:       c.APIURL,
		APIKey:        c.APIKey,
		Timeout:       c.Timeout,
		RateLimit:     c.RateLimit,
		RetryAttempts: c.RetryAttempts,
		PageSize:      c.PageSize,
	}
}

// DefaultPresetsPath is where saved patterns live unless --presets is given
func DefaultPresetsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "immich-janitor", "patterns.yaml")
}
