package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidLimit      = "Invalid limit parameter"

	// Operation failures
	ErrMsgResolveActionFailed = "Failed to resolve action"
	ErrMsgGetCooldownsFailed  = "Failed to get cooldowns"
	ErrMsgResetCooldownFailed = "Failed to reset cooldown"
	ErrMsgListDeathsFailed    = "Failed to list death logs"
	ErrMsgSaveMobFailed       = "Failed to save mob override"
	ErrMsgDeleteMobFailed     = "Failed to delete mob override"
	ErrMsgInvalidMobKey       = "Invalid mob key"
)

// Success messages for API responses
const (
	MsgCooldownReset      = "Cooldown reset"
	MsgMobOverrideDeleted = "Mob override deleted"
)

// Log messages
const (
	LogMsgDecodeFailed      = "Failed to decode request"
	LogMsgRequestDecoded    = "Request decoded"
	LogMsgMissingQueryParam = "Missing query parameter"
	LogMsgEncodeFailed      = "Failed to encode JSON response"
	LogMsgWriteFailed       = "Failed to write response buffer"
	LogMsgReadinessFailed   = "Readiness check failed"
	LogMsgBadMobKey         = "Rejected mob key"
)

// Query parameter names
const (
	QueryUserID  = "user_id"
	QueryGuildID = "guild_id"
	QueryAreaKey = "area_key"
	QueryLimit   = "limit"
)

// PathMobKey is the route parameter holding a mob key
const PathMobKey = "key"

// MaxListLimit caps list endpoints
const MaxListLimit = 200

// MaxKeyLength bounds content keys taken from the path
const MaxKeyLength = 64
