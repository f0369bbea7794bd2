package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pta-server/shared/models"
)

// 411 Length Required doubles as the "moved too far" reply so clients can
// tell a movement rejection apart from a plain bad request.
const statusMovementRange = http.StatusLengthRequired

func handleServiceError(c *gin.Context, err error) {
	var statusCode int

	switch {
	case errors.Is(err, models.ErrUnauthorized),
		errors.Is(err, models.ErrTokenInvalid),
		errors.Is(err, models.ErrTokenExpired):
		statusCode = http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		statusCode = http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		statusCode = http.StatusNotFound
	case errors.Is(err, models.ErrConflict),
		errors.Is(err, models.ErrUserExists),
		errors.Is(err, models.ErrNameTaken),
		errors.Is(err, models.ErrSelfTrade):
		statusCode = http.StatusConflict
	case errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrInsufficientFunds):
		statusCode = http.StatusBadRequest
	case errors.Is(err, models.ErrMovementRange):
		statusCode = statusMovementRange
	default:
		zap.L().Error("Unhandled internal error in handleServiceError", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			models.ErrorResponse{Error: "An unexpected internal error occurred"})
		return
	}

	c.AbortWithStatusJSON(statusCode, models.ErrorResponse{Error: err.Error()})
}
