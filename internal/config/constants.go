package config

// ExpectedEnvSchemaVersion is the schema version that the application expects
const ExpectedEnvSchemaVersion = "1.0"

// Example values shipped in .env.example that must not reach production
const (
	ExampleDBPassword = "change_this_secure_password"
)

// Error messages
const (
	ErrMsgParseEnv           = "parse env: %w"
	ErrMsgInvalidPort        = "invalid PORT value %d"
	ErrMsgInvalidPoolSize    = "DB_MIN_CONNS (%d) must not exceed DB_MAX_CONNS (%d)"
	ErrMsgInvalidSampleRatio = "OTEL_SAMPLE_RATIO must be between 0 and 1, got %g"
	ErrMsgSchemaMissing      = "ENV_SCHEMA_VERSION is not set - please update your .env file to include this field (expected: %s)"
	ErrMsgSchemaMismatch     = "ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated"
	ErrMsgMissingEnvVars     = "missing required environment variables: %s"
)
