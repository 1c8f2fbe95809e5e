package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeInvalidQuery     ErrorCode = "INVALID_QUERY"
	ErrorCodeDocumentNotFound ErrorCode = "DOCUMENT_NOT_FOUND"

	// Server Error Codes (5xx)
	ErrorCodeInternalError ErrorCode = "INTERNAL_ERROR"
	ErrorCodeSearchFailed  ErrorCode = "SEARCH_FAILED"
)

// APIError represents a standardized API error response
type APIError struct {
	Error     string    `json:"error"`
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// APIErrorResponse creates a standardized error response
func APIErrorResponse(code ErrorCode, message string) *APIError {
	return &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string) {
	c.JSON(statusCode, APIErrorResponse(code, message))
}

// SendInvalidQueryError sends a standardized invalid query error
func SendInvalidQueryError(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidQuery, message)
}

// SendDocumentNotFoundError sends a standardized document not found error
func SendDocumentNotFoundError(c *gin.Context, documentID string) {
	SendError(c, http.StatusNotFound, ErrorCodeDocumentNotFound,
		"Document '"+documentID+"' not found")
}

// SendSearchError sends a standardized search failure. The cause is logged
// server-side only; clients get an opaque message.
func SendSearchError(c *gin.Context, operation string, err error) {
	log.Printf("search failed (%s): %v", operation, err)
	SendError(c, http.StatusInternalServerError, ErrorCodeSearchFailed,
		"Search failed during "+operation)
}
