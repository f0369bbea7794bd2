package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pta-server/shared/models"
)

func (h *Handler) createGame(c *gin.Context) {
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			models.ErrorResponse{Error: "Invalid request data: " + err.Error()})
		return
	}

	game, gm, err := h.games.CreateGame(c.Request.Context(), currentUserID(c), req.Nickname, req.Password, req.GMName)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	gamesCreatedTotal.Inc()
	c.JSON(http.StatusCreated, createGameResponse{Game: game, GM: gm})
}

func (h *Handler) getGame(c *gin.Context) {
	gameID, ok := parseUUIDParam(c, "game_id")
	if !ok {
		return
	}
	game, err := h.games.GetGame(c.Request.Context(), gameID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

func (h *Handler) listOnlineGames(c *gin.Context) {
	games, err := h.games.ListOnline(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

func (h *Handler) joinGame(c *gin.Context) {
	gameID, ok := parseUUIDParam(c, "game_id")
	if !ok {
		return
	}
	var req joinGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			models.ErrorResponse{Error: "Invalid request data: " + err.Error()})
		return
	}

	trainer, err := h.games.JoinGame(c.Request.Context(), currentUserID(c), gameID, req.Password, req.TrainerName)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trainer)
}

func (h *Handler) setGameOnline(c *gin.Context) {
	gameID, ok := parseUUIDParam(c, "game_id")
	if !ok {
		return
	}
	if !h.requireGM(c, gameID) {
		return
	}
	var req onlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			models.ErrorResponse{Error: "Invalid request data: " + err.Error()})
		return
	}

	if err := h.games.SetOnline(c.Request.Context(), gameID, *req.Online); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "game updated"})
}

func (h *Handler) deleteGame(c *gin.Context) {
	gameID, ok := parseUUIDParam(c, "game_id")
	if !ok {
		return
	}
	if !h.requireGM(c, gameID) {
		return
	}
	if err := h.games.DeleteGame(c.Request.Context(), gameID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "game deleted"})
}

func (h *Handler) gameLogs(c *gin.Context) {
	gameID, ok := parseUUIDParam(c, "game_id")
	if !ok {
		return
	}
	if !h.requireGM(c, gameID) {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				models.ErrorResponse{Error: "malformed limit parameter"})
			return
		}
		limit = parsed
	}

	logs, err := h.games.Logs(c.Request.Context(), gameID, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (h *Handler) createNPC(c *gin.Context) {
	gameID, ok := parseUUIDParam(c, "game_id")
	if !ok {
		return
	}
	if !h.requireGM(c, gameID) {
		return
	}
	var req createNPCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			models.ErrorResponse{Error: "Invalid request data: " + err.Error()})
		return
	}

	npc := &models.NPC{
		GameID:         gameID,
		TrainerName:    req.TrainerName,
		TrainerClasses: req.TrainerClasses,
		Feats:          req.Feats,
		TrainerStats:   req.TrainerStats,
	}
	if err := h.games.CreateNPC(c.Request.Context(), npc); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, npc)
}

func (h *Handler) listNPCs(c *gin.Context) {
	gameID, ok := parseUUIDParam(c, "game_id")
	if !ok {
		return
	}
	npcs, err := h.games.ListNPCs(c.Request.Context(), gameID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, npcs)
}

func (h *Handler) deleteNPC(c *gin.Context) {
	gameID, ok := parseUUIDParam(c, "game_id")
	if !ok {
		return
	}
	npcID, ok := parseUUIDParam(c, "npc_id")
	if !ok {
		return
	}
	if !h.requireGM(c, gameID) {
		return
	}
	if err := h.games.DeleteNPC(c.Request.Context(), npcID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "npc deleted"})
}
