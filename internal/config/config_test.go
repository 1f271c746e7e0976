package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelcomp/internal/comparables"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, comparables.DefaultTolerance, cfg.Comparison.Tolerance)
	assert.Equal(t, comparables.DefaultMaxResults, cfg.Comparison.MaxResults)
	assert.Equal(t, comparables.DefaultWorkers, cfg.Comparison.Workers)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Security.RateLimit.Enabled)
}

func TestLoadFrom_FileThenEnv(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9090
  read_timeout: 5s
logging:
  level: DEBUG
comparison:
  tolerance: 0.35
  max_results: 3
`)

	t.Run("file overrides defaults", func(t *testing.T) {
		cfg, err := LoadFrom(path)
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 60*time.Second, cfg.Server.WriteTimeout)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, 0.35, cfg.Comparison.Tolerance)
		assert.Equal(t, 3, cfg.Comparison.MaxResults)
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("HOTELCOMP_SERVER_PORT", "7070")
		t.Setenv("HOTELCOMP_COMPARISON_MAX_RESULTS", "7")
		t.Setenv("HOTELCOMP_SECURITY_RATE_LIMIT_RPS", "2.5")
		t.Setenv("HOTELCOMP_SECURITY_ALLOWED_ORIGINS", "http://a.example,http://b.example")

		cfg, err := LoadFrom(path)
		require.NoError(t, err)

		assert.Equal(t, 7070, cfg.Server.Port)
		assert.Equal(t, 7, cfg.Comparison.MaxResults)
		assert.Equal(t, 0.35, cfg.Comparison.Tolerance)
		assert.Equal(t, 2.5, cfg.Security.RateLimit.RPS)
		assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Security.AllowedOrigins)
	})
}

func TestLoadFrom_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := LoadFrom(writeConfigFile(t, "server: [unterminated"))
		assert.Error(t, err)
	})

	t.Run("bad env value", func(t *testing.T) {
		t.Setenv("HOTELCOMP_SERVER_PORT", "eighty")
		_, err := LoadFrom("")
		assert.Error(t, err)
	})

	t.Run("tolerance out of range", func(t *testing.T) {
		t.Setenv("HOTELCOMP_COMPARISON_TOLERANCE", "6")
		_, err := LoadFrom("")
		require.Error(t, err)
		assert.True(t, errors.Is(err, comparables.ErrInvalidConfiguration))
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, true},
		{"no read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }, true},
		{"no upload limit", func(c *Config) { c.Server.MaxUploadBytes = 0 }, true},
		{"cors without origins", func(c *Config) { c.Security.AllowedOrigins = nil }, true},
		{"cors disabled without origins", func(c *Config) {
			c.Security.EnableCORS = false
			c.Security.AllowedOrigins = nil
		}, false},
		{"rate limit without rps", func(c *Config) { c.Security.RateLimit.RPS = 0 }, true},
		{"rate limit disabled", func(c *Config) {
			c.Security.RateLimit.Enabled = false
			c.Security.RateLimit.RPS = 0
		}, false},
		{"bad log level", func(c *Config) { c.Logging.Level = "chatty" }, true},
		{"max results zero", func(c *Config) { c.Comparison.MaxResults = 0 }, true},
		{"max results eleven", func(c *Config) { c.Comparison.MaxResults = 11 }, true},
		{"negative tolerance", func(c *Config) { c.Comparison.Tolerance = -0.01 }, true},
		{"no workers", func(c *Config) { c.Comparison.Workers = 0 }, true},
		{"unknown exporter", func(c *Config) { c.Telemetry.TraceExporter = "jaeger" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Validate_NormalizesLogging(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "WARN"
	cfg.Logging.Format = "xml"
	cfg.Logging.Output = "syslog"

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "console", cfg.Logging.Output)
}

func TestComparisonConfig_Options(t *testing.T) {
	opts := ComparisonConfig{Tolerance: 0.3, MaxResults: 4, Workers: 2}.Options()

	assert.Equal(t, 0.3, opts.Tolerance)
	assert.Equal(t, 4, opts.MaxResults)
	assert.Equal(t, 2, opts.Workers)
	assert.True(t, opts.Scope.IsAll())
	assert.NoError(t, comparables.ValidateOptions(opts))
}
