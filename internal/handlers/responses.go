package handlers

import (
	"errors"
	"net/http"

	"stargate/internal/apperrors"
	"stargate/pkg/logger"

	"github.com/gin-gonic/gin"
)

// BaseResponse is the envelope every endpoint returns.
type BaseResponse struct {
	Success      bool        `json:"success"`
	Message      string      `json:"message"`
	ResponseCode int         `json:"responseCode"`
	Data         interface{} `json:"data,omitempty"`
}

func respondOK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, BaseResponse{
		Success:      true,
		Message:      message,
		ResponseCode: status,
		Data:         data,
	})
}

// respondError maps service error kinds onto HTTP status codes
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrInvalidInput):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		logger.WithError(err).Error("Unhandled service error")
	}

	c.JSON(status, BaseResponse{
		Success:      false,
		Message:      err.Error(),
		ResponseCode: status,
	})
}
