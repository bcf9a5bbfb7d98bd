package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "parcelgw.yaml")
	content := `
server:
  port: 8081
  readTimeout: 5s
upstream:
  baseUrl: https://sandbox.example.test
  userId: ${TEST_PM_USER:-fallback-user}
  token: ${TEST_PM_TOKEN}
  timeout: 2s
quote:
  baselineCost: 80
circuitBreaker:
  enabled: true
  threshold: 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	loader := NewLoaderWithLookup(mapLookup(map[string]string{"TEST_PM_TOKEN": "secret"}))
	cfg, err := loader.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout.Duration())
	assert.Equal(t, "https://sandbox.example.test", cfg.Upstream.BaseURL)
	assert.Equal(t, "fallback-user", cfg.Upstream.UserID)
	assert.Equal(t, "secret", cfg.Upstream.Token)
	assert.Equal(t, 2*time.Second, cfg.Upstream.Timeout.Duration())
	assert.Equal(t, 80.0, cfg.Quote.BaselineCost)
	assert.True(t, cfg.CircuitBreaker.Enabled)
	assert.Equal(t, 3, cfg.CircuitBreaker.Threshold)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, DefaultAPIVersion, cfg.Upstream.APIVersion)
	assert.Equal(t, 30*time.Second, cfg.CircuitBreaker.Timeout.Duration())
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
}

func TestLoader_Load_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().Load("/nonexistent/path/parcelgw.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoader_Parse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name:    "empty document yields defaults",
			content: "   \n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultConfig(), cfg)
			},
		},
		{
			name:    "escaped dollar survives substitution",
			content: "upstream:\n  token: \"pa$$word\"\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "pa$word", cfg.Upstream.Token)
			},
		},
		{
			name:    "invalid yaml",
			content: "server: [unclosed",
			wantErr: true,
		},
		{
			name:    "invalid duration",
			content: "upstream:\n  timeout: soon\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := NewLoaderWithLookup(mapLookup(nil)).parse([]byte(tt.content))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoader_SubstituteEnvVars(t *testing.T) {
	t.Parallel()

	loader := NewLoaderWithLookup(mapLookup(map[string]string{
		"SET":   "value",
		"EMPTY": "",
	}))

	tests := []struct {
		input string
		want  string
	}{
		{input: "${SET}", want: "value"},
		{input: "${SET:-other}", want: "value"},
		{input: "${UNSET:-other}", want: "other"},
		{input: "${UNSET}", want: ""},
		{input: "${EMPTY:-other}", want: ""},
		{input: "plain", want: "plain"},
	}

	for _, tt := range tests {
		tt := tt
		assert.Equal(t, tt.want, loader.substituteEnvVars(tt.input), tt.input)
	}
}

func TestLoader_ApplyEnvOverrides(t *testing.T) {
	t.Parallel()

	t.Run("overrides port and credentials", func(t *testing.T) {
		t.Parallel()

		cfg := DefaultConfig()
		loader := NewLoaderWithLookup(mapLookup(map[string]string{
			EnvPort:   " 4000 ",
			EnvUserID: "12345",
			EnvAPIKey: "live-key",
		}))

		require.NoError(t, loader.ApplyEnvOverrides(cfg))
		assert.Equal(t, 4000, cfg.Server.Port)
		assert.Equal(t, "12345", cfg.Upstream.UserID)
		assert.Equal(t, "live-key", cfg.Upstream.Token)
	})

	t.Run("empty values are ignored", func(t *testing.T) {
		t.Parallel()

		cfg := DefaultConfig()
		loader := NewLoaderWithLookup(mapLookup(map[string]string{EnvPort: "", EnvUserID: ""}))

		require.NoError(t, loader.ApplyEnvOverrides(cfg))
		assert.Equal(t, DefaultPort, cfg.Server.Port)
		assert.Equal(t, PlaceholderUserID, cfg.Upstream.UserID)
	})

	t.Run("invalid port", func(t *testing.T) {
		t.Parallel()

		loader := NewLoaderWithLookup(mapLookup(map[string]string{EnvPort: "http"}))
		err := loader.ApplyEnvOverrides(DefaultConfig())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid PORT")
	})

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, NewLoader().ApplyEnvOverrides(nil))
	})
}
