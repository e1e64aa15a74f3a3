package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"vexport/internal/domain"
)

// APIResponse is the standard envelope for JSON API responses. Successful
// conversions return raw payload bytes instead, so this envelope only
// appears on errors and on export metadata.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrUnknownGrammar):
		return http.StatusBadRequest, "UNKNOWN_GRAMMAR", "unknown grammar; allowed: vega, vega-lite"
	case errors.Is(err, domain.ErrUnknownFormat):
		return http.StatusBadRequest, "UNKNOWN_FORMAT", "unknown format; allowed: svg, html, png, jpeg, pdf, vega"
	case errors.Is(err, domain.ErrSpecTooLarge):
		return http.StatusRequestEntityTooLarge, "SPEC_TOO_LARGE", "spec exceeds maximum allowed size"
	case errors.Is(err, domain.ErrConversionFailed):
		return http.StatusUnprocessableEntity, "CONVERSION_FAILED", err.Error()
	case errors.Is(err, domain.ErrStorageDisabled):
		return http.StatusNotImplemented, "STORAGE_DISABLED", "artifact storage is not configured"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusBadGateway, "UPLOAD_FAILED", "artifact upload to storage failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
