package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"pta-server/shared/models"
)

// Request headers checked by the session middleware. The refreshed
// activity token is returned on the same header it arrived on.
const (
	HeaderUserID        = "pta-user-id"
	HeaderActivityToken = "pta-activity-token"
	HeaderSessionAuth   = "pta-session-auth"
)

const contextUserID = "user_id"

// SessionMiddleware authenticates the caller from the session headers and
// rotates the activity token. The fresh token is set on the response
// before the handler runs so it survives body writes.
func (h *Handler) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := uuid.Parse(c.GetHeader(HeaderUserID))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				models.ErrorResponse{Error: "missing or malformed user id header"})
			return
		}

		token := c.GetHeader(HeaderActivityToken)
		sessionSecret := c.GetHeader(HeaderSessionAuth)

		if err := h.guard.Authenticate(c.Request.Context(), userID, token, sessionSecret); err != nil {
			handleServiceError(c, err)
			return
		}

		refreshed, err := h.guard.RefreshToken(c.Request.Context(), userID)
		if err != nil {
			h.logger.Error("Failed to refresh activity token",
				zap.String("userID", userID.String()), zap.Error(err))
			handleServiceError(c, models.ErrInternalServer)
			return
		}
		c.Header(HeaderActivityToken, refreshed)

		c.Set(contextUserID, userID)
		c.Next()
	}
}

// currentUserID reads the authenticated user set by SessionMiddleware.
func currentUserID(c *gin.Context) uuid.UUID {
	val, ok := c.Get(contextUserID)
	if !ok {
		return uuid.Nil
	}
	id, _ := val.(uuid.UUID)
	return id
}

// requireGM aborts unless the caller is the game's GM or a site admin.
func (h *Handler) requireGM(c *gin.Context, gameID uuid.UUID) bool {
	userID := currentUserID(c)
	if h.guard.IsGM(c.Request.Context(), userID, gameID) {
		return true
	}
	c.AbortWithStatusJSON(http.StatusForbidden,
		models.ErrorResponse{Error: "game master privileges required"})
	return false
}

// requireAdmin aborts unless the caller holds the admin site role.
func (h *Handler) requireAdmin(c *gin.Context) bool {
	userID := currentUserID(c)
	if h.guard.IsAdmin(c.Request.Context(), userID) {
		return true
	}
	c.AbortWithStatusJSON(http.StatusForbidden,
		models.ErrorResponse{Error: "admin privileges required"})
	return false
}
