package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad tests configuration loading from environment
func TestLoad(t *testing.T) {
	t.Run("loads config with defaults when no env vars set", func(t *testing.T) {
		clearEnvVars(t)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port, "Should use default port")
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "dev", cfg.Environment)
		assert.Equal(t, "postgres", cfg.DBUser)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, 200, cfg.ToolBreakCapacity)
		assert.Equal(t, 5*time.Minute, cfg.ContentCacheTTL)
		assert.True(t, cfg.MigrateOnRun)
		assert.False(t, cfg.DevMode)
		assert.Empty(t, cfg.APIKey)
		assert.Empty(t, cfg.LogDir)
		assert.Equal(t, 1000, cfg.RateLimit)
		assert.False(t, cfg.OTelEnabled)
		assert.Empty(t, cfg.OTelEndpoint)
		assert.Equal(t, 1.0, cfg.OTelSampleRatio)
	})

	t.Run("loads config from environment variables", func(t *testing.T) {
		clearEnvVars(t)

		t.Setenv("PORT", "3000")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("ENVIRONMENT", "prod")
		t.Setenv("DB_USER", "customuser")
		t.Setenv("DB_PASSWORD", "custompass")
		t.Setenv("DB_HOST", "db.example.com")
		t.Setenv("DB_PORT", "5433")
		t.Setenv("DB_NAME", "customdb")
		t.Setenv("TOOL_BREAK_BUFFER", "50")
		t.Setenv("CONTENT_CACHE_TTL", "90s")
		t.Setenv("DEV_MODE", "true")
		t.Setenv("API_KEY", "secret")
		t.Setenv("TRUSTED_PROXIES", "10.0.0.1,10.0.0.2")
		t.Setenv("OTEL_ENABLED", "true")
		t.Setenv("OTEL_ENDPOINT", "http://collector:4318")
		t.Setenv("OTEL_SAMPLE_RATIO", "0.25")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "prod", cfg.Environment)
		assert.Equal(t, "customuser", cfg.DBUser)
		assert.Equal(t, "custompass", cfg.DBPassword)
		assert.Equal(t, "db.example.com", cfg.DBHost)
		assert.Equal(t, "5433", cfg.DBPort)
		assert.Equal(t, "customdb", cfg.DBName)
		assert.Equal(t, 50, cfg.ToolBreakCapacity)
		assert.Equal(t, 90*time.Second, cfg.ContentCacheTTL)
		assert.True(t, cfg.DevMode)
		assert.True(t, cfg.Cooldown().DevMode)
		assert.Equal(t, "secret", cfg.APIKey)
		assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.TrustedProxies)
		assert.True(t, cfg.OTelEnabled)
		assert.Equal(t, "http://collector:4318", cfg.OTelEndpoint)
		assert.Equal(t, 0.25, cfg.OTelSampleRatio)
	})

	t.Run("returns error for invalid PORT", func(t *testing.T) {
		testCases := []struct {
			name        string
			portValue   string
			shouldError bool
		}{
			{"not a number", "not-a-number", true},
			{"float port", "8080.5", true},
			{"zero port", "0", true},
			{"negative port", "-1", true},
			{"above max port", "65536", true},
			{"max valid port", "65535", false},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				clearEnvVars(t)
				t.Setenv("PORT", tc.portValue)

				cfg, err := Load()

				if tc.shouldError {
					assert.Error(t, err)
					assert.Nil(t, cfg)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})

	t.Run("rejects min conns above max conns", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("DB_MIN_CONNS", "10")
		t.Setenv("DB_MAX_CONNS", "4")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_MIN_CONNS")
	})

	t.Run("rejects sample ratio outside 0..1", func(t *testing.T) {
		for _, v := range []string{"-0.1", "1.5"} {
			clearEnvVars(t)
			t.Setenv("OTEL_SAMPLE_RATIO", v)

			_, err := Load()
			require.Error(t, err, v)
			assert.Contains(t, err.Error(), "OTEL_SAMPLE_RATIO")
		}
	})
}

// TestGetDBConnString verifies database connection string generation
func TestGetDBConnString(t *testing.T) {
	cfg := &Config{
		DBUser:     "testuser",
		DBPassword: "p@ss:word",
		DBHost:     "testhost",
		DBPort:     "5433",
		DBName:     "testdb",
	}

	assert.Equal(t, "postgres://testuser:p@ss:word@testhost:5433/testdb?sslmode=disable", cfg.GetDBConnString())
}

func TestConfig_Derived(t *testing.T) {
	cfg := &Config{
		LogLevel:         "warn",
		LogFormat:        "json",
		Environment:      "prod",
		Version:          "1.2.3",
		FatigueMagnitude: 0.3,
		FatigueDuration:  10 * time.Minute,
	}

	lc := cfg.Logger()
	assert.Equal(t, "warn", lc.Level)
	assert.True(t, lc.IsJSON())
	assert.False(t, lc.AddSource)
	assert.Equal(t, "1.2.3", lc.Version)

	fc := cfg.Fatigue()
	assert.Equal(t, 0.3, fc.Magnitude)
	assert.Equal(t, 10*time.Minute, fc.Duration)
	assert.Positive(t, fc.StreakStep, "streak defaults are kept")
}

// clearEnvVars unsets every variable Config reads so defaults apply
func clearEnvVars(t *testing.T) {
	t.Helper()

	envVars := []string{
		"PORT", "API_KEY", "TRUSTED_PROXIES", "RATE_LIMIT", "RATE_LIMIT_WINDOW", "LOG_LEVEL", "LOG_FORMAT", "ENVIRONMENT", "VERSION", "LOG_DIR",
		"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME",
		"DB_MAX_CONNS", "DB_MIN_CONNS", "MIGRATE_ON_START",
		"CONTENT_CACHE_SIZE", "CONTENT_CACHE_TTL",
		"TOOL_BREAK_BUFFER", "WORKER_COUNT", "WORKER_QUEUE_SIZE", "MAINTENANCE_INTERVAL",
		"EVENT_MAX_RETRIES", "EVENT_RETRY_DELAY", "EVENT_DEAD_LETTER_PATH",
		"DEV_MODE", "FATIGUE_MAGNITUDE", "FATIGUE_DURATION",
		"OTEL_ENABLED", "OTEL_ENDPOINT", "OTEL_SAMPLE_RATIO",
	}

	for _, key := range envVars {
		if old, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, old) })
		}
		os.Unsetenv(key)
	}
}
