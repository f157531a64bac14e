package minigame

// Tracing
const (
	TracerName = "github.com/osse101/ActionEngine_Go/internal/minigame"

	SpanResolveAction = "minigame.ResolveAction"
	SpanCommit        = "minigame.commit"

	AttrUserID  = "user_id"
	AttrGuildID = "guild_id"
	AttrAreaKey = "area_key"
	AttrLevel   = "level"
	AttrOutcome = "outcome"
)

// Death log listing bounds
const (
	DefaultDeathLogLimit = 20
	MaxDeathLogLimit     = 100
)

// RunOutcomeCompleted is stored for actions that involved no combat
const RunOutcomeCompleted = "completed"

// Request limits
const (
	MaxIDLength  = 64
	MaxKeyLength = 64
)

// =============================================================================
// Error Messages
// =============================================================================

const (
	ErrMsgInvalidRequestFmt = "%w: %s"
	ErrMsgMissingUserID     = "user_id is required"
	ErrMsgMissingGuildID    = "guild_id is required"
	ErrMsgMissingAreaKey    = "area_key is required"
	ErrMsgBadLevel          = "level must be at least 1"
	ErrMsgFieldTooLong      = "a request field exceeds the maximum length"
	ErrMsgTransientFmt      = "%w: %w"
	ErrMsgBeginFailed       = "failed to begin action transaction: %w"
	ErrMsgLockFailed        = "failed to lock player: %w"
	ErrMsgSnapshotFailed    = "failed to load player snapshot: %w"
	ErrMsgEffectsFailed     = "failed to load status effects: %w"
	ErrMsgMobFailed         = "failed to resolve mob %s: %w"
	ErrMsgItemFailed        = "failed to resolve reward item %s: %w"
	ErrMsgDurabilityFailed  = "failed to apply tool durability: %w"
	ErrMsgCreditFailed      = "failed to credit %s: %w"
	ErrMsgEncodeRunFailed   = "failed to encode action run: %w"
	ErrMsgCommitFailed      = "failed to commit action: %w"
)

// =============================================================================
// Log Messages
// =============================================================================

const (
	LogMsgActionResolved    = "Action resolved"
	LogMsgActionRejected    = "Action rejected"
	LogMsgUnknownMobSkipped = "Skipping unknown mob in level table"
	LogMsgUnknownItem       = "Skipping reward for unknown item"
	LogMsgPublishFailed     = "Failed to publish event"
	LogMsgPlayerDefeated    = "Player defeated"
	LogMsgToolBroke         = "Tool instance broke"
)
