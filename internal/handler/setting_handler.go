package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pta-server/internal/service"
	"pta-server/shared/models"
)

// loadSetting fetches the encounter behind a path parameter.
func (h *Handler) loadSetting(c *gin.Context) (*models.Setting, bool) {
	settingID, ok := parseUUIDParam(c, "setting_id")
	if !ok {
		return nil, false
	}
	setting, err := h.settings.GetSetting(c.Request.Context(), settingID)
	if err != nil {
		handleServiceError(c, err)
		return nil, false
	}
	return setting, true
}

func (h *Handler) createSetting(c *gin.Context) {
	gameID, ok := parseUUIDParam(c, "game_id")
	if !ok {
		return
	}
	if !h.requireGM(c, gameID) {
		return
	}
	var req createSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			models.ErrorResponse{Error: "Invalid request data: " + err.Error()})
		return
	}

	setting, err := h.settings.CreateSetting(c.Request.Context(), gameID, req.Name, models.SettingType(req.Type))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, setting)
}

func (h *Handler) getSetting(c *gin.Context) {
	setting, ok := h.loadSetting(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, setting)
}

func (h *Handler) listSettings(c *gin.Context) {
	gameID, ok := parseUUIDParam(c, "game_id")
	if !ok {
		return
	}
	settings, err := h.settings.ListByGame(c.Request.Context(), gameID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *Handler) activeSetting(c *gin.Context) {
	gameID, ok := parseUUIDParam(c, "game_id")
	if !ok {
		return
	}
	setting, err := h.settings.GetActiveSetting(c.Request.Context(), gameID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, setting)
}

func (h *Handler) activateSetting(c *gin.Context) {
	setting, ok := h.loadSetting(c)
	if !ok {
		return
	}
	if !h.requireGM(c, setting.GameID) {
		return
	}
	updated, err := h.settings.SetActive(c.Request.Context(), setting.SettingID, h.actorName(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) deactivateSetting(c *gin.Context) {
	setting, ok := h.loadSetting(c)
	if !ok {
		return
	}
	if !h.requireGM(c, setting.GameID) {
		return
	}
	updated, err := h.settings.SetInactive(c.Request.Context(), setting.SettingID, h.actorName(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// joinSetting resolves the participant source record and places it on the
// grid. Trainers join themselves; npc and enemy placements are GM calls.
func (h *Handler) joinSetting(c *gin.Context) {
	setting, ok := h.loadSetting(c)
	if !ok {
		return
	}
	var req joinSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			models.ErrorResponse{Error: "Invalid request data: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	var participant models.SettingParticipant

	switch req.Type {
	case models.ParticipantTrainer:
		trainer, err := h.trainers.GetTrainer(ctx, req.ParticipantID)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		if trainer.UserID != currentUserID(c) && !h.requireGM(c, setting.GameID) {
			return
		}
		participant = service.ParticipantFromTrainer(trainer, req.Position)
	case models.ParticipantPokemon, models.ParticipantEnemyPokemon, models.ParticipantNeutralPokemon:
		pokemon, err := h.pokemon.GetPokemon(ctx, req.ParticipantID)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		if !h.requirePokemonOwnerOrGM(c, pokemon) {
			return
		}
		participant = service.ParticipantFromPokemon(pokemon, req.Type, req.Position)
	case models.ParticipantEnemyNpc, models.ParticipantNeutralNpc:
		if !h.requireGM(c, setting.GameID) {
			return
		}
		npc, err := h.games.GetNPC(ctx, req.ParticipantID)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		participant = service.ParticipantFromNPC(npc, req.Type, req.Position)
	default:
		c.AbortWithStatusJSON(http.StatusBadRequest,
			models.ErrorResponse{Error: "unknown participant type"})
		return
	}

	updated, err := h.settings.Join(ctx, setting.SettingID, participant)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) moveParticipant(c *gin.Context) {
	setting, ok := h.loadSetting(c)
	if !ok {
		return
	}
	participantID, ok := parseUUIDParam(c, "participant_id")
	if !ok {
		return
	}
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			models.ErrorResponse{Error: "Invalid request data: " + err.Error()})
		return
	}

	// The GM repositions any piece freely. A player is pinned to their own
	// trainer or pokemon and bound by its speed.
	actorID := uuid.Nil
	if !h.guard.IsGM(c.Request.Context(), currentUserID(c), setting.GameID) {
		actor, err := h.guard.TrainerInGame(c.Request.Context(), currentUserID(c), setting.GameID)
		if err != nil {
			handleServiceError(c, fmt.Errorf("no trainer in this game: %w", models.ErrForbidden))
			return
		}
		actorID = actor.TrainerID
	}
	dest := models.MapPosition{X: req.X, Y: req.Y}

	updated, err := h.settings.Move(c.Request.Context(), setting.SettingID, participantID, dest, actorID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) leaveSetting(c *gin.Context) {
	setting, ok := h.loadSetting(c)
	if !ok {
		return
	}
	participantID, ok := parseUUIDParam(c, "participant_id")
	if !ok {
		return
	}
	if !h.requireGM(c, setting.GameID) {
		return
	}
	updated, err := h.settings.Leave(c.Request.Context(), setting.SettingID, participantID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) refreshSettingHP(c *gin.Context) {
	setting, ok := h.loadSetting(c)
	if !ok {
		return
	}
	if !h.requireGM(c, setting.GameID) {
		return
	}
	updated, err := h.settings.RefreshHP(c.Request.Context(), setting.SettingID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) setEnvironment(c *gin.Context) {
	setting, ok := h.loadSetting(c)
	if !ok {
		return
	}
	if !h.requireGM(c, setting.GameID) {
		return
	}
	var req environmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			models.ErrorResponse{Error: "Invalid request data: " + err.Error()})
		return
	}

	updated, err := h.settings.SetEnvironment(c.Request.Context(), setting.SettingID, req.Tags)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) deleteSetting(c *gin.Context) {
	setting, ok := h.loadSetting(c)
	if !ok {
		return
	}
	if !h.requireGM(c, setting.GameID) {
		return
	}
	if err := h.settings.DeleteSetting(c.Request.Context(), setting.SettingID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "encounter deleted"})
}
