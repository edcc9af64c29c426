package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/immich-janitor/immich-janitor/internal/immich"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	BindEnv(v)
	return v
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("IMMICH_API_URL", "")
	t.Setenv("IMMICH_API_KEY", "")

	cfg, err := Load(newViper())
	require.NoError(t, err)
	assert.Equal(t, immich.DefaultTimeout, cfg.Timeout)
	assert.Equal(t, immich.DefaultPageSize, cfg.PageSize)
	assert.Equal(t, immich.DefaultRateLimit, cfg.RateLimit)
	assert.Equal(t, DefaultPresetsPath(), cfg.PresetsPath)
	assert.Error(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("IMMICH_API_URL", "http://photos.local:2283/api")
	t.Setenv("IMMICH_API_KEY", " secret ")
	t.Setenv("IMMICH_TIMEOUT", "15s")
	t.Setenv("IMMICH_PAGE_SIZE", "250")

	cfg, err := Load(newViper())
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, 15*time.Second, cfg.Timeout)

	ic := cfg.ImmichConfig()
	assert.Equal(t, "http://photos.local:2283/api", ic.BaseURL)
	assert.Equal(t, 250, ic.PageSize)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"missing url", Config{APIKey: "k"}, "IMMICH_API_URL"},
		{"missing key", Config{APIURL: "http://x"}, "IMMICH_API_KEY"},
		{"bad scheme", Config{APIURL: "ftp://x", APIKey: "k"}, "scheme"},
		{"no host", Config{APIURL: "http://", APIKey: "k"}, "missing host"},
		{"negative", Config{APIURL: "http://x", APIKey: "k", PageSize: -1}, "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadDotEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("IMMICH_API_URL=http://from-dotenv:2283/api\nIMMICH_API_KEY=dotenv-key\n"), 0600))

	t.Setenv("IMMICH_API_URL", "http://from-shell/api")
	t.Setenv("IMMICH_API_KEY", "shell-key")

	require.NoError(t, LoadDotEnv(dir))

	cfg, err := Load(newViper())
	require.NoError(t, err)
	assert.Equal(t, "http://from-dotenv:2283/api", cfg.APIURL)
	assert.Equal(t, "dotenv-key", cfg.APIKey)
}

func TestLoadDotEnvMissing(t *testing.T) {
	assert.NoError(t, LoadDotEnv(t.TempDir()))
}

func TestReadFile(t *testing.T) {
	t.Setenv("IMMICH_API_URL", "")
	path := filepath.Join(t.TempDir(), "janitor.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api-url: http://from-file/api\nretry-attempts: 5\n"), 0600))

	v := newViper()
	require.NoError(t, ReadFile(v, path))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "http://from-file/api", cfg.APIURL)
	assert.Equal(t, 5, cfg.RetryAttempts)

	assert.Error(t, ReadFile(viper.New(), filepath.Join(t.TempDir(), "missing.yaml")))
}
