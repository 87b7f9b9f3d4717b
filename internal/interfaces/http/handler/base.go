package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/commerce/backend/internal/domain/shared"
	"github.com/commerce/backend/internal/infrastructure/logger"
	"github.com/commerce/backend/internal/interfaces/http/dto"
)

// BaseHandler provides response helpers shared by all handlers
type BaseHandler struct{}

// Success writes a success envelope with the given status
func (h *BaseHandler) Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, dto.SuccessResponse(data))
}

// BadRequest writes a 400 with an INVALID_INPUT error envelope
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse("INVALID_INPUT", message))
}

// HandleDomainError maps domain errors to HTTP responses. Errors that
// are not domain errors are logged and hidden behind a generic 500.
func (h *BaseHandler) HandleDomainError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.HTTPStatusForCode(domainErr.Code)
		c.JSON(status, dto.ErrorResponse(domainErr.Code, domainErr.Message))
		return
	}

	logger.GetGinLogger(c).Error("Unhandled error", zap.Error(err))
	c.JSON(http.StatusInternalServerError,
		dto.ErrorResponse("INTERNAL_ERROR", "An internal error occurred"))
}
