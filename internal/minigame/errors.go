package minigame

import (
	"errors"
	"fmt"

	"github.com/osse101/ActionEngine_Go/internal/domain"
)

// caller-facing errors pass through classify untouched; anything else came
// from the store and is reported as retryable
var knownErrors = []error{
	domain.ErrAreaNotFound,
	domain.ErrLevelNotFound,
	domain.ErrLevelUnavailable,
	domain.ErrOnCooldown,
	domain.ErrMissingTool,
	domain.ErrWrongToolType,
	domain.ErrInsufficientTier,
	domain.ErrNotAllowlisted,
	domain.ErrIntegrity,
	domain.ErrInvalidContent,
	domain.ErrInvalidInput,
	domain.ErrTransient,
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range knownErrors {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf(ErrMsgTransientFmt, domain.ErrTransient, err)
}

// ErrorTag maps an error returned by Service onto the tag surfaced to callers
func ErrorTag(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrAreaNotFound):
		return domain.ErrorTagAreaNotFound
	case errors.Is(err, domain.ErrLevelNotFound):
		return domain.ErrorTagLevelNotFound
	case errors.Is(err, domain.ErrLevelUnavailable):
		return domain.ErrorTagLevelUnavailable
	case errors.Is(err, domain.ErrOnCooldown):
		return domain.ErrorTagCooldownActive
	case errors.Is(err, domain.ErrMissingTool):
		return domain.ErrorTagMissingTool
	case errors.Is(err, domain.ErrWrongToolType):
		return domain.ErrorTagWrongToolType
	case errors.Is(err, domain.ErrInsufficientTier):
		return domain.ErrorTagInsufficientTier
	case errors.Is(err, domain.ErrNotAllowlisted):
		return domain.ErrorTagNotAllowlisted
	case errors.Is(err, domain.ErrAutoDefeatNoWeapon):
		return domain.ErrorTagAutoDefeatNoWeapon
	case errors.Is(err, domain.ErrIntegrity), errors.Is(err, domain.ErrInvalidContent):
		return domain.ErrorTagIntegrity
	case errors.Is(err, domain.ErrInvalidInput):
		return domain.ErrorTagInvalidInput
	default:
		return domain.ErrorTagRetryable
	}
}
