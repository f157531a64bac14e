package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Content errors
	ErrMsgAreaNotFound     = "area not found"
	ErrMsgLevelNotFound    = "level not found"
	ErrMsgLevelUnavailable = "level is not available right now"
	ErrMsgItemNotFound     = "item not found"
	ErrMsgMobNotFound      = "mob not found"
	ErrMsgInvalidContent   = "invalid content definition"

	// Tool requirement errors
	ErrMsgMissingTool        = "missing required tool"
	ErrMsgWrongToolType      = "wrong tool type"
	ErrMsgInsufficientTier   = "tool tier is too low"
	ErrMsgToolNotAllowlisted = "tool is not allowed for this level"

	// Combat outcomes surfaced as errors
	ErrMsgAutoDefeatNoWeapon = "defeated: no weapon equipped"

	// Cooldown errors
	ErrMsgOnCooldown = "action on cooldown"

	// Integrity errors
	ErrMsgIntegrity = "inventory integrity violation"

	// Database/System errors
	ErrMsgTransient = "temporary storage failure"
	ErrMsgTxClosed  = "tx is closed"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Content errors
	ErrAreaNotFound     = errors.New(ErrMsgAreaNotFound)
	ErrLevelNotFound    = errors.New(ErrMsgLevelNotFound)
	ErrLevelUnavailable = errors.New(ErrMsgLevelUnavailable)
	ErrItemNotFound     = errors.New(ErrMsgItemNotFound)
	ErrMobNotFound      = errors.New(ErrMsgMobNotFound)
	ErrInvalidContent   = errors.New(ErrMsgInvalidContent)

	// Tool requirement errors
	ErrMissingTool      = errors.New(ErrMsgMissingTool)
	ErrWrongToolType    = errors.New(ErrMsgWrongToolType)
	ErrInsufficientTier = errors.New(ErrMsgInsufficientTier)
	ErrNotAllowlisted   = errors.New(ErrMsgToolNotAllowlisted)

	// ErrAutoDefeatNoWeapon marks a committed result where the player lost
	// without dealing damage. It is never returned together with a rollback.
	ErrAutoDefeatNoWeapon = errors.New(ErrMsgAutoDefeatNoWeapon)

	// Cooldown errors
	ErrOnCooldown = errors.New(ErrMsgOnCooldown)

	// ErrIntegrity is returned when persisted inventory state breaks the
	// quantity == len(instances) invariant.
	ErrIntegrity = errors.New(ErrMsgIntegrity)

	// ErrTransient wraps store failures; callers may retry the whole action.
	ErrTransient = errors.New(ErrMsgTransient)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// Error tags surfaced at the API boundary
const (
	ErrorTagAreaNotFound       = "area-not-found"
	ErrorTagLevelNotFound      = "level-not-found"
	ErrorTagLevelUnavailable   = "level-unavailable"
	ErrorTagCooldownActive     = "cooldown-active"
	ErrorTagMissingTool        = "missing-tool"
	ErrorTagWrongToolType      = "wrong-tool-type"
	ErrorTagInsufficientTier   = "insufficient-tier"
	ErrorTagNotAllowlisted     = "not-allowlisted"
	ErrorTagAutoDefeatNoWeapon = "auto-defeat-no-weapon"
	ErrorTagIntegrity          = "integrity-error"
	ErrorTagRetryable          = "retryable"
	ErrorTagInvalidInput       = "invalid-input"
)
