package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pta-server/shared/models"
)

// loadShop fetches the shop behind a path parameter.
func (h *Handler) loadShop(c *gin.Context) (*models.Shop, bool) {
	shopID, ok := parseUUIDParam(c, "shop_id")
	if !ok {
		return nil, false
	}
	shop, err := h.exchange.GetShop(c.Request.Context(), shopID)
	if err != nil {
		handleServiceError(c, err)
		return nil, false
	}
	return shop, true
}

func (h *Handler) createShop(c *gin.Context) {
	gameID, ok := parseUUIDParam(c, "game_id")
	if !ok {
		return
	}
	if !h.requireGM(c, gameID) {
		return
	}
	var req createShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			models.ErrorResponse{Error: "Invalid request data: " + err.Error()})
		return
	}

	shop, err := h.exchange.CreateShop(c.Request.Context(), gameID, req.Name, req.Inventory)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, shop)
}

func (h *Handler) getShop(c *gin.Context) {
	shop, ok := h.loadShop(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, shop)
}

func (h *Handler) listShops(c *gin.Context) {
	gameID, ok := parseUUIDParam(c, "game_id")
	if !ok {
		return
	}
	shops, err := h.exchange.ListShops(c.Request.Context(), gameID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shops)
}

func (h *Handler) updateShop(c *gin.Context) {
	shop, ok := h.loadShop(c)
	if !ok {
		return
	}
	if !h.requireGM(c, shop.GameID) {
		return
	}
	var req updateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			models.ErrorResponse{Error: "Invalid request data: " + err.Error()})
		return
	}

	if req.Name != "" {
		shop.Name = req.Name
	}
	if req.IsActive != nil {
		shop.IsActive = *req.IsActive
	}
	if req.Inventory != nil {
		shop.Inventory = req.Inventory
	}
	if err := h.exchange.UpdateShop(c.Request.Context(), shop); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shop)
}

func (h *Handler) deleteShop(c *gin.Context) {
	shop, ok := h.loadShop(c)
	if !ok {
		return
	}
	if !h.requireGM(c, shop.GameID) {
		return
	}
	if err := h.exchange.DeleteShop(c.Request.Context(), shop.ShopID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "shop deleted"})
}

func (h *Handler) purchase(c *gin.Context) {
	shop, ok := h.loadShop(c)
	if !ok {
		return
	}
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			models.ErrorResponse{Error: "Invalid request data: " + err.Error()})
		return
	}

	trainer, err := h.trainers.GetTrainer(c.Request.Context(), req.TrainerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if trainer.UserID != currentUserID(c) {
		c.AbortWithStatusJSON(http.StatusForbidden,
			models.ErrorResponse{Error: "only the trainer's owner may buy from a shop"})
		return
	}

	updated, err := h.exchange.Purchase(c.Request.Context(), shop.ShopID, trainer.TrainerID, req.Wares)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) trade(c *gin.Context) {
	gameID, ok := parseUUIDParam(c, "game_id")
	if !ok {
		return
	}
	if !h.requireGM(c, gameID) {
		return
	}
	var req tradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			models.ErrorResponse{Error: "Invalid request data: " + err.Error()})
		return
	}

	if err := h.exchange.Trade(c.Request.Context(), req.LeftPokemonID, req.RightPokemonID, h.actorName(c)); err != nil {
		handleServiceError(c, err)
		return
	}

	tradesTotal.Inc()
	c.JSON(http.StatusOK, models.MessageResponse{Message: "trade completed"})
}
