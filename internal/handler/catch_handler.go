package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pta-server/internal/catalog"
	"pta-server/shared/models"
)

func (h *Handler) catchPokemon(c *gin.Context) {
	trainer, ok := h.loadTrainer(c)
	if !ok {
		return
	}
	if trainer.UserID != currentUserID(c) {
		c.AbortWithStatusJSON(http.StatusForbidden,
			models.ErrorResponse{Error: "only the trainer's owner may throw a ball"})
		return
	}
	var req catchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			models.ErrorResponse{Error: "Invalid request data: " + err.Error()})
		return
	}

	result, err := h.catch.Catch(c.Request.Context(), trainer.TrainerID, req.PokemonID, req.Ball, req.Nickname, *req.CatchRate)
	if err != nil {
		catchAttemptsTotal.WithLabelValues("error").Inc()
		handleServiceError(c, err)
		return
	}

	if result.Success {
		catchAttemptsTotal.WithLabelValues("success").Inc()
	} else {
		catchAttemptsTotal.WithLabelValues("failure").Inc()
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) spawnWild(c *gin.Context) {
	gameID, ok := parseUUIDParam(c, "game_id")
	if !ok {
		return
	}
	if !h.requireGM(c, gameID) {
		return
	}
	var req spawnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			models.ErrorResponse{Error: "Invalid request data: " + err.Error()})
		return
	}

	opts := catalog.SpawnOptions{
		Nickname:   req.Nickname,
		Gender:     req.Gender,
		Nature:     req.Nature,
		Status:     req.Status,
		ForceShiny: req.ForceShiny,
	}
	pokemon, err := h.catch.SpawnWild(c.Request.Context(), gameID, req.Species, opts)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pokemon)
}
