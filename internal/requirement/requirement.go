// Package requirement decides whether an action may start. It never mutates
// state, so it is safe to call once before a transaction and again on the
// locked snapshot inside it.
package requirement

import (
	"time"

	"github.com/osse101/ActionEngine_Go/internal/cooldown"
	"github.com/osse101/ActionEngine_Go/internal/domain"
	"github.com/osse101/ActionEngine_Go/internal/equipment"
)

// Code is the outcome of a validation
type Code string

const (
	CodeOK               Code = "ok"
	CodeLevelUnavailable Code = "level-unavailable"
	CodeCooldownActive   Code = "cooldown-active"
	CodeMissingTool      Code = "missing-tool"
	CodeWrongType        Code = "wrong-type"
	CodeInsufficientTier Code = "insufficient-tier"
	CodeNotAllowlisted   Code = "not-allowlisted"
)

// Input is everything the validator looks at
type Input struct {
	Level         *domain.GameAreaLevel
	ActionKey     string
	Now           time.Time
	CooldownUntil *time.Time
	Tool          *equipment.ToolSelection
}

// Verdict is the result of Validate. Key is the action key for cooldown
// verdicts and the tool key for tool verdicts. Remaining is only set for
// CodeCooldownActive.
type Verdict struct {
	Code      Code
	Key       string
	Remaining time.Duration
}

// OK reports whether the action may proceed
func (v Verdict) OK() bool {
	return v.Code == CodeOK
}

// Err maps the verdict onto the domain error taxonomy
func (v Verdict) Err() error {
	switch v.Code {
	case CodeOK:
		return nil
	case CodeLevelUnavailable:
		return domain.ErrLevelUnavailable
	case CodeCooldownActive:
		return cooldown.ErrOnCooldown{Action: v.Key, Remaining: v.Remaining}
	case CodeMissingTool:
		return domain.ErrMissingTool
	case CodeWrongType:
		return domain.ErrWrongToolType
	case CodeInsufficientTier:
		return domain.ErrInsufficientTier
	case CodeNotAllowlisted:
		return domain.ErrNotAllowlisted
	}
	return domain.ErrInvalidInput
}

// Validate checks the availability window, then the cooldown, then the tool.
// The first failing check wins.
func Validate(in Input) Verdict {
	if in.Level != nil && !in.Level.IsAvailable(in.Now) {
		return Verdict{Code: CodeLevelUnavailable}
	}

	if onCooldown, remaining := cooldown.Check(in.CooldownUntil, in.Now); onCooldown {
		return Verdict{Code: CodeCooldownActive, Remaining: remaining, Key: in.ActionKey}
	}

	return validateTool(in)
}

func validateTool(in Input) Verdict {
	var req *domain.ToolRequirement
	if in.Level != nil {
		req = in.Level.Requirements.Tool
	}
	if !equipment.NeedsTool(req) {
		return Verdict{Code: CodeOK}
	}

	if in.Tool == nil {
		if req.Required {
			return Verdict{Code: CodeMissingTool}
		}
		return Verdict{Code: CodeOK}
	}

	key := in.Tool.Key()
	switch equipment.Qualifies(in.Tool.Item, req) {
	case nil:
		return Verdict{Code: CodeOK, Key: key}
	case domain.ErrWrongToolType:
		return Verdict{Code: CodeWrongType, Key: key}
	case domain.ErrInsufficientTier:
		return Verdict{Code: CodeInsufficientTier, Key: key}
	default:
		return Verdict{Code: CodeNotAllowlisted, Key: key}
	}
}
