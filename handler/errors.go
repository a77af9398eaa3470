package handler

import (
	"errors"
	"net/http"

	"github.com/Aashish23092/expense-insights/dto"
	"github.com/Aashish23092/expense-insights/service"
	"github.com/Aashish23092/expense-insights/utils"
	"github.com/Aashish23092/expense-insights/utils/invoice"
	"github.com/gin-gonic/gin"
)

const genericExtractionMessage = "Failed to process document"

// sendError writes a structured error response and logs the cause.
func sendError(c *gin.Context, statusCode int, code, message string, err error) {
	fields := map[string]interface{}{
		"path":   c.FullPath(),
		"status": statusCode,
	}
	if statusCode >= http.StatusInternalServerError {
		utils.LogError(message, err, fields)
	} else if err != nil {
		fields["error"] = err.Error()
		utils.LogWarn(message, fields)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   code,
		Message: message,
		Code:    statusCode,
	})
}

func badRequest(c *gin.Context, err error) {
	sendError(c, http.StatusBadRequest, dto.ErrCodeInvalidRequest, err.Error(), err)
}

// sendServiceError maps service failures onto HTTP statuses.
func sendServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, invoice.ErrMalformedDocument):
		sendError(c, http.StatusInternalServerError, dto.ErrCodeExtractionFailed, genericExtractionMessage, err)
	case errors.Is(err, service.ErrEmployeeNotFound):
		sendError(c, http.StatusNotFound, dto.ErrCodeNotFound, "Employee not found", err)
	case errors.Is(err, service.ErrSummaryNotFound),
		errors.Is(err, service.ErrInvalidMonth),
		errors.Is(err, service.ErrInsufficientDebtBudget),
		errors.Is(err, service.ErrNoData),
		errors.Is(err, service.ErrInsufficientData),
		errors.Is(err, service.ErrIncompleteRecord),
		errors.Is(err, service.ErrClassifyInput):
		sendError(c, http.StatusBadRequest, dto.ErrCodeInvalidRequest, err.Error(), err)
	case errors.Is(err, service.ErrUnsupportedFile):
		sendError(c, http.StatusUnsupportedMediaType, dto.ErrCodeInvalidRequest, err.Error(), err)
	case errors.Is(err, service.ErrUpstream):
		sendError(c, http.StatusBadGateway, dto.ErrCodeUpstreamFailed, "Language model request failed", err)
	default:
		sendError(c, http.StatusInternalServerError, dto.ErrCodeInternal, "Internal server error", err)
	}
}
