package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Common error messages
const (
	ErrInvalidInput     = "Invalid input format"
	ErrInvalidAmount    = "Invalid amount"
	ErrInvalidInvoice   = "Invoice failed validation"
	ErrCannotDerive     = "Cannot derive line item price"
	ErrInternalServer   = "Internal server error"
	ErrRenderingFailure = "Failed to render invoice PDF"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, message string, details ...ErrorDetail) {
	c.JSON(statusCode, ErrorResponse{
		Status:  http.StatusText(statusCode),
		Message: message,
		Details: details,
	})
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...ErrorDetail) {
	respondWithError(c, http.StatusBadRequest, message, details...)
}

// respondUnprocessableEntity sends a 422 Unprocessable Entity response
func respondUnprocessableEntity(c *gin.Context, message string, details ...ErrorDetail) {
	respondWithError(c, http.StatusUnprocessableEntity, message, details...)
}

// respondInternalServerError sends a 500 Internal Server Error response
func respondInternalServerError(c *gin.Context, message string) {
	respondWithError(c, http.StatusInternalServerError, message)
}

// respondOK sends a 200 OK response with data
func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// newErrorDetail creates a new error detail
func newErrorDetail(field, message string) ErrorDetail {
	return ErrorDetail{
		Field:   field,
		Message: message,
	}
}
