package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/ActionEngine_Go/internal/domain"
	"github.com/osse101/ActionEngine_Go/internal/logger"
	"github.com/osse101/ActionEngine_Go/internal/mob"
)

// MobOverrideRequest is the body of PUT /mobs/{key}. Definition holds only
// the fields that differ from the built-in mob with the same key.
type MobOverrideRequest struct {
	GuildID    string          `json:"guild_id" validate:"required,max=64"`
	Definition json.RawMessage `json:"definition" validate:"required" swaggertype:"object"`
}

// MobKeysResponse lists the built-in mob keys
type MobKeysResponse struct {
	Keys []string `json:"keys"`
}

// MobResponse wraps a merged mob definition
type MobResponse struct {
	Mob *domain.MobDefinition `json:"mob"`
}

// MobHandler serves mob catalog administration
type MobHandler struct {
	mobs mob.Repository
}

// NewMobHandler creates a new mob handler
func NewMobHandler(mobs mob.Repository) *MobHandler {
	return &MobHandler{mobs: mobs}
}

// mobKeyParam reads and checks the {key} path segment
func mobKeyParam(r *http.Request, w http.ResponseWriter) (string, bool) {
	key := chi.URLParam(r, PathMobKey)
	if len(key) > MaxKeyLength || !contentKeyPattern.MatchString(key) {
		logger.FromContext(r.Context()).Warn(LogMsgBadMobKey, "key", key)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidMobKey)
		return "", false
	}
	return key, true
}

// HandleListMobKeys lists the built-in mobs guild overrides can build on
// @Summary List built-in mobs
// @Tags mobs
// @Produce json
// @Success 200 {object} MobKeysResponse
// @Router /mobs [get]
func (h *MobHandler) HandleListMobKeys(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, MobKeysResponse{Keys: h.mobs.DefaultKeys()})
}

// HandleSaveOverride stores a guild mob override
// @Summary Save a guild mob override
// @Description Merges the definition over the built-in mob, validates it and stores it for the guild
// @Tags mobs
// @Accept json
// @Produce json
// @Param key path string true "Mob key"
// @Param request body MobOverrideRequest true "Override"
// @Success 200 {object} MobResponse
// @Failure 400 {object} ErrorResponse
// @Router /mobs/{key} [put]
func (h *MobHandler) HandleSaveOverride(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	key, ok := mobKeyParam(r, w)
	if !ok {
		return
	}
	var req MobOverrideRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Save mob override"); err != nil {
		return
	}

	def, err := h.mobs.SaveOverride(r.Context(), req.GuildID, key, req.Definition)
	if err != nil {
		respondServiceError(w, log, ErrMsgSaveMobFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, MobResponse{Mob: def})
}

// HandleDeleteOverride removes a guild mob override
// @Summary Delete a guild mob override
// @Tags mobs
// @Produce json
// @Param key path string true "Mob key"
// @Param guild_id query string true "Guild ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse "No override stored"
// @Router /mobs/{key} [delete]
func (h *MobHandler) HandleDeleteOverride(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	key, ok := mobKeyParam(r, w)
	if !ok {
		return
	}
	guildID, ok := GetQueryParam(r, w, QueryGuildID)
	if !ok {
		return
	}

	if err := h.mobs.DeleteOverride(r.Context(), guildID, key); err != nil {
		respondServiceError(w, log, ErrMsgDeleteMobFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgMobOverrideDeleted})
}
