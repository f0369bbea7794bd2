package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pta-server/shared/models"
)

// loadTrainer fetches the trainer behind a path parameter, mapping lookup
// failures to the standard error responses.
func (h *Handler) loadTrainer(c *gin.Context) (*models.Trainer, bool) {
	trainerID, ok := parseUUIDParam(c, "trainer_id")
	if !ok {
		return nil, false
	}
	trainer, err := h.trainers.GetTrainer(c.Request.Context(), trainerID)
	if err != nil {
		handleServiceError(c, err)
		return nil, false
	}
	return trainer, true
}

// requireOwnerOrGM aborts unless the caller owns the trainer or runs its game.
func (h *Handler) requireOwnerOrGM(c *gin.Context, trainer *models.Trainer) bool {
	if trainer.UserID == currentUserID(c) {
		return true
	}
	return h.requireGM(c, trainer.GameID)
}

func (h *Handler) getTrainer(c *gin.Context) {
	trainer, ok := h.loadTrainer(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, trainer)
}

func (h *Handler) listTrainers(c *gin.Context) {
	gameID, ok := parseUUIDParam(c, "game_id")
	if !ok {
		return
	}
	trainers, err := h.trainers.ListByGame(c.Request.Context(), gameID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, trainers)
}

func (h *Handler) addItems(c *gin.Context) {
	trainer, ok := h.loadTrainer(c)
	if !ok {
		return
	}
	if !h.requireGM(c, trainer.GameID) {
		return
	}
	var req addItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			models.ErrorResponse{Error: "Invalid request data: " + err.Error()})
		return
	}

	updated, err := h.trainers.AddItems(c.Request.Context(), trainer.TrainerID, req.Items)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) removeItems(c *gin.Context) {
	trainer, ok := h.loadTrainer(c)
	if !ok {
		return
	}
	if !h.requireOwnerOrGM(c, trainer) {
		return
	}
	var req removeItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			models.ErrorResponse{Error: "Invalid request data: " + err.Error()})
		return
	}

	updated, err := h.trainers.RemoveItems(c.Request.Context(), trainer.TrainerID, req.Items)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) grantHonor(c *gin.Context) {
	trainer, ok := h.loadTrainer(c)
	if !ok {
		return
	}
	if !h.requireGM(c, trainer.GameID) {
		return
	}
	var req honorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			models.ErrorResponse{Error: "Invalid request data: " + err.Error()})
		return
	}

	if err := h.trainers.GrantHonor(c.Request.Context(), trainer.TrainerID, req.Honor, h.actorName(c)); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "honor granted"})
}

func (h *Handler) grantGroupHonor(c *gin.Context) {
	gameID, ok := parseUUIDParam(c, "game_id")
	if !ok {
		return
	}
	if !h.requireGM(c, gameID) {
		return
	}
	var req honorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			models.ErrorResponse{Error: "Invalid request data: " + err.Error()})
		return
	}

	if err := h.trainers.GrantGroupHonor(c.Request.Context(), gameID, req.Honor); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "honor granted to the party"})
}

func (h *Handler) adjustMoney(c *gin.Context) {
	trainer, ok := h.loadTrainer(c)
	if !ok {
		return
	}
	if !h.requireGM(c, trainer.GameID) {
		return
	}
	var req moneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			models.ErrorResponse{Error: "Invalid request data: " + err.Error()})
		return
	}

	updated, err := h.trainers.AdjustMoney(c.Request.Context(), trainer.TrainerID, *req.Delta)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) setTrainerOnline(c *gin.Context) {
	trainer, ok := h.loadTrainer(c)
	if !ok {
		return
	}
	if !h.requireOwnerOrGM(c, trainer) {
		return
	}
	var req onlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			models.ErrorResponse{Error: "Invalid request data: " + err.Error()})
		return
	}

	if err := h.trainers.SetOnline(c.Request.Context(), trainer.TrainerID, *req.Online); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "trainer updated"})
}

func (h *Handler) approveTrainer(c *gin.Context) {
	trainer, ok := h.loadTrainer(c)
	if !ok {
		return
	}
	if !h.requireGM(c, trainer.GameID) {
		return
	}
	if err := h.trainers.Approve(c.Request.Context(), trainer.TrainerID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "trainer approved"})
}

func (h *Handler) deleteTrainer(c *gin.Context) {
	trainer, ok := h.loadTrainer(c)
	if !ok {
		return
	}
	if !h.requireOwnerOrGM(c, trainer) {
		return
	}
	if err := h.trainers.DeleteTrainer(c.Request.Context(), trainer.TrainerID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "trainer deleted"})
}
