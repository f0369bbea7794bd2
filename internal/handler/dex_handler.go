package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pta-server/shared/models"
)

func (h *Handler) listDex(c *gin.Context) {
	trainer, ok := h.loadTrainer(c)
	if !ok {
		return
	}
	entries, err := h.dex.List(c.Request.Context(), trainer.TrainerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *Handler) markSeen(c *gin.Context) {
	trainer, ok := h.loadTrainer(c)
	if !ok {
		return
	}
	if !h.requireOwnerOrGM(c, trainer) {
		return
	}
	dexNo, ok := parseIntParam(c, "dex_no")
	if !ok {
		return
	}

	message, err := h.dex.MarkSeen(c.Request.Context(), trainer.TrainerID, dexNo)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: message})
}

func (h *Handler) markCaught(c *gin.Context) {
	trainer, ok := h.loadTrainer(c)
	if !ok {
		return
	}
	if !h.requireOwnerOrGM(c, trainer) {
		return
	}
	dexNo, ok := parseIntParam(c, "dex_no")
	if !ok {
		return
	}

	message, err := h.dex.MarkCaught(c.Request.Context(), trainer.TrainerID, dexNo)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: message})
}
