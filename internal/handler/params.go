package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pta-server/shared/models"
)

// parseUUIDParam reads a path parameter as a UUID, aborting with 400 on
// malformed input.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			models.ErrorResponse{Error: "malformed " + name + " parameter"})
		return uuid.Nil, false
	}
	return id, true
}

func parseIntParam(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			models.ErrorResponse{Error: "malformed " + name + " parameter"})
		return 0, false
	}
	return n, true
}

// actorName resolves the authenticated user's name for audit lines.
func (h *Handler) actorName(c *gin.Context) string {
	user, err := h.users.GetUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		return "GM"
	}
	return user.Username
}
