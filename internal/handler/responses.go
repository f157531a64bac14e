package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/ActionEngine_Go/internal/cooldown"
	"github.com/osse101/ActionEngine_Go/internal/domain"
	"github.com/osse101/ActionEngine_Go/internal/minigame"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response. ErrorTag is the stable machine
// readable reason; RemainingMs is set for cooldown rejections.
type ErrorResponse struct {
	Error       string `json:"error"`
	ErrorTag    string `json:"error_tag,omitempty"`
	RemainingMs int64  `json:"remaining_ms,omitempty"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// bufferPool is a pool of bytes.Buffer to reduce allocations during JSON encoding
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 1024))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	// encode first so a failure can still produce a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."
	ErrMsgAreaNotFoundError   = "Area not found"
	ErrMsgLevelNotFoundError  = "Level not found"
	ErrMsgMobNotFoundError    = "Mob not found"
	ErrMsgLevelClosedError    = "That level is not open right now"
	ErrMsgOnCooldownError     = "Action is on cooldown. Try again later"
	ErrMsgToolError           = "You don't have a suitable tool"
	ErrMsgIntegrityError      = "Inventory data is inconsistent. An admin has to fix it"
	ErrMsgUnavailableError    = "Server is temporarily unavailable. Please try again later."
)

// mapServiceErrorToUserMessage converts a service error into an HTTP status and response
// body carrying the error tag
func mapServiceErrorToUserMessage(err error) (int, ErrorResponse) {
	tag := minigame.ErrorTag(err)
	resp := ErrorResponse{ErrorTag: tag}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		resp.Error = ErrMsgInvalidRequestError
		return http.StatusBadRequest, resp
	case errors.Is(err, domain.ErrAreaNotFound):
		resp.Error = ErrMsgAreaNotFoundError
		return http.StatusNotFound, resp
	case errors.Is(err, domain.ErrLevelNotFound):
		resp.Error = ErrMsgLevelNotFoundError
		return http.StatusNotFound, resp
	case errors.Is(err, domain.ErrMobNotFound):
		resp.Error = ErrMsgMobNotFoundError
		return http.StatusNotFound, resp
	case errors.Is(err, domain.ErrLevelUnavailable):
		resp.Error = ErrMsgLevelClosedError
		return http.StatusUnprocessableEntity, resp
	case errors.Is(err, domain.ErrOnCooldown):
		resp.Error = ErrMsgOnCooldownError
		if remaining, ok := cooldown.RemainingOf(err); ok {
			resp.RemainingMs = remaining.Milliseconds()
		}
		return http.StatusTooManyRequests, resp
	case errors.Is(err, domain.ErrMissingTool),
		errors.Is(err, domain.ErrWrongToolType),
		errors.Is(err, domain.ErrInsufficientTier),
		errors.Is(err, domain.ErrNotAllowlisted):
		resp.Error = ErrMsgToolError
		return http.StatusUnprocessableEntity, resp
	case errors.Is(err, domain.ErrIntegrity), errors.Is(err, domain.ErrInvalidContent):
		resp.Error = ErrMsgIntegrityError
		return http.StatusInternalServerError, resp
	case errors.Is(err, domain.ErrTransient):
		resp.Error = ErrMsgUnavailableError
		return http.StatusServiceUnavailable, resp
	}

	resp.Error = ErrMsgGenericServerError
	return http.StatusInternalServerError, resp
}

// respondServiceError logs and writes a mapped service error
func respondServiceError(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	status, resp := mapServiceErrorToUserMessage(err)
	if status >= http.StatusInternalServerError {
		log.Error(op, "error", err, "error_tag", resp.ErrorTag)
	} else {
		log.Warn(op, "error", err, "error_tag", resp.ErrorTag)
	}
	respondJSON(w, status, resp)
}
