// Package api holds the gin handlers. Every response, success or failure,
// uses the same JSON envelope, and every error goes through respondError.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/lawdesk/internal/apperr"
	"github.com/lalith-99/lawdesk/internal/middleware"
	"github.com/lalith-99/lawdesk/internal/models"
)

// envelope is the body of every JSON response.
type envelope struct {
	Success    bool                `json:"success"`
	Data       any                 `json:"data,omitempty"`
	Message    string              `json:"message,omitempty"`
	Pagination *models.Pagination  `json:"pagination,omitempty"`
	Errors     []apperr.FieldError `json:"errors,omitempty"`
}

func respond(c *gin.Context, status int, data any, message string) {
	c.JSON(status, envelope{Success: true, Data: data, Message: message})
}

func respondList[T any](c *gin.Context, list models.List[T]) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: list.Items, Pagination: &list.Pagination})
}

// respondError maps err onto a status code and writes the failure envelope.
// Anything it does not recognise is logged and answered with a bare 500.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, envelope{Message: "Request timed out"})
		return
	}

	var verr *apperr.ValidationError
	if errors.As(err, &verr) {
		c.AbortWithStatusJSON(http.StatusBadRequest, envelope{Message: "Validation failed", Errors: verr.Errors})
		return
	}

	status, fallback := classify(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(status, envelope{Message: fallback})
		return
	}

	msg, ok := apperr.UserMessage(err)
	if !ok {
		msg = fallback
	}
	c.AbortWithStatusJSON(status, envelope{Message: msg})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest, "Invalid input format"
	case errors.Is(err, apperr.ErrInvalidState):
		return http.StatusBadRequest, "Operation not allowed"
	case errors.Is(err, apperr.ErrInvalidReference):
		return http.StatusBadRequest, "Referenced resource does not exist"
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized access"
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, "Resource not found"
	case errors.Is(err, apperr.ErrAlreadyExists):
		return http.StatusConflict, "Resource already exists"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
