package handler

import (
	"net/http"

	"github.com/osse101/ActionEngine_Go/internal/domain"
	"github.com/osse101/ActionEngine_Go/internal/logger"
	"github.com/osse101/ActionEngine_Go/internal/minigame"
	"github.com/osse101/ActionEngine_Go/internal/telemetry"
)

// ResolveActionRequest is the body of POST /minigame/actions
type ResolveActionRequest struct {
	UserID  string `json:"user_id" validate:"required,max=64"`
	GuildID string `json:"guild_id" validate:"required,max=64"`
	AreaKey string `json:"area_key" validate:"required,max=64,contentkey"`
	Level   int    `json:"level" validate:"required,min=1"`
	ToolKey string `json:"tool_key,omitempty" validate:"omitempty,max=64,contentkey"`
}

// ActionResponse wraps a committed action. ErrorTag is set when the committed
// result still counts as a failure for the player (auto-defeat).
type ActionResponse struct {
	*domain.ActionResult
	ErrorTag string `json:"error_tag,omitempty"`
}

// CooldownsResponse lists a player's active cooldowns
type CooldownsResponse struct {
	Cooldowns []domain.ActionCooldown `json:"cooldowns"`
}

// DeathLogsResponse lists a player's newest death penalties
type DeathLogsResponse struct {
	Deaths []domain.DeathLog `json:"deaths"`
}

// ToolBreaksResponse lists buffered tool break events
type ToolBreaksResponse struct {
	Events []domain.ToolBreakEvent `json:"events"`
}

// MinigameHandler serves the action engine endpoints
type MinigameHandler struct {
	svc minigame.Service
}

// NewMinigameHandler creates a new minigame handler
func NewMinigameHandler(svc minigame.Service) *MinigameHandler {
	return &MinigameHandler{svc: svc}
}

// HandleResolveAction resolves one action
// @Summary Resolve an action
// @Description Validates, resolves and commits one player action in an area level
// @Tags minigame
// @Accept json
// @Produce json
// @Param request body ResolveActionRequest true "Action request"
// @Success 200 {object} ActionResponse
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Area or level not found"
// @Failure 422 {object} ErrorResponse "Tool requirement not met"
// @Failure 429 {object} ErrorResponse "On cooldown"
// @Failure 500 {object} ErrorResponse "Integrity error"
// @Failure 503 {object} ErrorResponse "Retryable storage failure"
// @Router /minigame/actions [post]
func (h *MinigameHandler) HandleResolveAction(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req ResolveActionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Resolve action"); err != nil {
		return
	}

	res, err := h.svc.ResolveAction(r.Context(), minigame.ActionRequest{
		UserID:  req.UserID,
		GuildID: req.GuildID,
		AreaKey: req.AreaKey,
		Level:   req.Level,
		ToolKey: req.ToolKey,
	})
	if err != nil {
		respondServiceError(w, log, ErrMsgResolveActionFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, ActionResponse{ActionResult: res, ErrorTag: minigame.ErrorTag(res.Err())})
}

// HandleGetCooldowns lists a player's cooldowns
// @Summary List cooldowns
// @Tags minigame
// @Produce json
// @Param user_id query string true "User ID"
// @Param guild_id query string true "Guild ID"
// @Success 200 {object} CooldownsResponse
// @Failure 400 {object} ErrorResponse
// @Router /minigame/cooldowns [get]
func (h *MinigameHandler) HandleGetCooldowns(w http.ResponseWriter, r *http.Request) {
	userID, guildID, ok := getPlayerParams(r, w)
	if !ok {
		return
	}

	cds, err := h.svc.GetCooldowns(r.Context(), userID, guildID)
	if err != nil {
		respondServiceError(w, logger.FromContext(r.Context()), ErrMsgGetCooldownsFailed, err)
		return
	}
	if cds == nil {
		cds = []domain.ActionCooldown{}
	}
	respondJSON(w, http.StatusOK, CooldownsResponse{Cooldowns: cds})
}

// HandleResetCooldown clears one area cooldown
// @Summary Reset a cooldown
// @Tags minigame
// @Produce json
// @Param user_id query string true "User ID"
// @Param guild_id query string true "Guild ID"
// @Param area_key query string true "Area key"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /minigame/cooldowns [delete]
func (h *MinigameHandler) HandleResetCooldown(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	userID, guildID, ok := getPlayerParams(r, w)
	if !ok {
		return
	}
	areaKey, ok := GetQueryParam(r, w, QueryAreaKey)
	if !ok {
		return
	}

	if err := h.svc.ResetCooldown(r.Context(), userID, guildID, areaKey); err != nil {
		respondServiceError(w, log, ErrMsgResetCooldownFailed, err)
		return
	}

	log.Info(MsgCooldownReset, "user_id", userID, "guild_id", guildID, "area_key", areaKey)
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgCooldownReset})
}

// HandleListDeaths lists a player's newest death penalties
// @Summary List death logs
// @Tags minigame
// @Produce json
// @Param user_id query string true "User ID"
// @Param guild_id query string true "Guild ID"
// @Param limit query int false "Maximum entries (default 20)"
// @Success 200 {object} DeathLogsResponse
// @Failure 400 {object} ErrorResponse
// @Router /minigame/deaths [get]
func (h *MinigameHandler) HandleListDeaths(w http.ResponseWriter, r *http.Request) {
	userID, guildID, ok := getPlayerParams(r, w)
	if !ok {
		return
	}
	limit, ok := getLimit(r, w)
	if !ok {
		return
	}

	logs, err := h.svc.ListDeathLogs(r.Context(), userID, guildID, limit)
	if err != nil {
		respondServiceError(w, logger.FromContext(r.Context()), ErrMsgListDeathsFailed, err)
		return
	}
	if logs == nil {
		logs = []domain.DeathLog{}
	}
	respondJSON(w, http.StatusOK, DeathLogsResponse{Deaths: logs})
}

// HandleToolBreaks queries the in-memory tool break buffer
// @Summary Recent tool breaks
// @Description Best-effort telemetry; resets on restart
// @Tags telemetry
// @Produce json
// @Param limit query int false "Maximum entries"
// @Param guild_id query string false "Guild filter"
// @Param user_id query string false "User filter"
// @Success 200 {object} ToolBreaksResponse
// @Failure 400 {object} ErrorResponse
// @Router /telemetry/tool-breaks [get]
func (h *MinigameHandler) HandleToolBreaks(w http.ResponseWriter, r *http.Request) {
	limit, ok := getLimit(r, w)
	if !ok {
		return
	}

	events := h.svc.ToolBreaks(limit, telemetry.Filter{
		GuildID: GetOptionalQueryParam(r, QueryGuildID, ""),
		UserID:  GetOptionalQueryParam(r, QueryUserID, ""),
	})
	respondJSON(w, http.StatusOK, ToolBreaksResponse{Events: events})
}
