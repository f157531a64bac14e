package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/osse101/ActionEngine_Go/internal/cooldown"
	"github.com/osse101/ActionEngine_Go/internal/logger"
	"github.com/osse101/ActionEngine_Go/internal/statuseffect"
)

// Config holds the application configuration
type Config struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	Version     string `env:"VERSION" envDefault:"dev"`
	LogDir      string `env:"LOG_DIR"`

	APIKey          string        `env:"API_KEY"`
	TrustedProxies  []string      `env:"TRUSTED_PROXIES" envSeparator:","`
	RateLimit       int           `env:"RATE_LIMIT" envDefault:"1000"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"5m"`

	DBUser       string `env:"DB_USER" envDefault:"postgres"`
	DBPassword   string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBHost       string `env:"DB_HOST" envDefault:"localhost"`
	DBPort       string `env:"DB_PORT" envDefault:"5432"`
	DBName       string `env:"DB_NAME" envDefault:"action_engine"`
	DBMaxConns   int    `env:"DB_MAX_CONNS" envDefault:"20"`
	DBMinConns   int    `env:"DB_MIN_CONNS" envDefault:"2"`
	MigrateOnRun bool   `env:"MIGRATE_ON_START" envDefault:"true"`

	ContentCacheSize int           `env:"CONTENT_CACHE_SIZE" envDefault:"512"`
	ContentCacheTTL  time.Duration `env:"CONTENT_CACHE_TTL" envDefault:"5m"`

	ToolBreakCapacity int           `env:"TOOL_BREAK_BUFFER" envDefault:"200"`
	WorkerCount       int           `env:"WORKER_COUNT" envDefault:"2"`
	WorkerQueueSize   int           `env:"WORKER_QUEUE_SIZE" envDefault:"256"`
	MaintenanceEvery  time.Duration `env:"MAINTENANCE_INTERVAL" envDefault:"10m"`

	EventMaxRetries     int           `env:"EVENT_MAX_RETRIES" envDefault:"5"`
	EventRetryDelay     time.Duration `env:"EVENT_RETRY_DELAY" envDefault:"2s"`
	EventDeadLetterPath string        `env:"EVENT_DEAD_LETTER_PATH" envDefault:"deadletter.jsonl"`

	DevMode bool `env:"DEV_MODE" envDefault:"false"`

	OTelEnabled     bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTelEndpoint    string  `env:"OTEL_ENDPOINT"`
	OTelSampleRatio float64 `env:"OTEL_SAMPLE_RATIO" envDefault:"1"`

	FatigueMagnitude float64       `env:"FATIGUE_MAGNITUDE" envDefault:"0.15"`
	FatigueDuration  time.Duration `env:"FATIGUE_DURATION" envDefault:"5m"`
}

// Load reads .env if present, then parses the environment
func Load() (*Config, error) {
	// .env is optional; real env vars win
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf(ErrMsgParseEnv, err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf(ErrMsgInvalidPort, cfg.Port)
	}
	if cfg.OTelSampleRatio < 0 || cfg.OTelSampleRatio > 1 {
		return nil, fmt.Errorf(ErrMsgInvalidSampleRatio, cfg.OTelSampleRatio)
	}
	if cfg.DBMinConns > cfg.DBMaxConns {
		return nil, fmt.Errorf(ErrMsgInvalidPoolSize, cfg.DBMinConns, cfg.DBMaxConns)
	}
	return cfg, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// Logger returns the logger configuration
func (c *Config) Logger() logger.Config {
	return logger.NewConfig(c.LogLevel, c.LogFormat, logger.DefaultServiceName, c.Version, c.Environment, c.Environment == logger.EnvironmentDev)
}

// Cooldown returns the cooldown gate configuration
func (c *Config) Cooldown() cooldown.Config {
	return cooldown.Config{DevMode: c.DevMode}
}

// Fatigue returns the death fatigue settings, keeping the streak defaults
func (c *Config) Fatigue() statuseffect.DeathFatigueConfig {
	f := statuseffect.DefaultDeathFatigueConfig()
	if c.FatigueMagnitude > 0 {
		f.Magnitude = c.FatigueMagnitude
	}
	if c.FatigueDuration > 0 {
		f.Duration = c.FatigueDuration
	}
	return f
}
