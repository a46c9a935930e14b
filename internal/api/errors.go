package api

import (
	"errors"   // Error kind matching
	"net/http" // HTTP status codes

	"sharewallet/internal/ledger"     // Ledger error kinds
	"sharewallet/internal/middleware" // Request ids

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Error codes returned in APIError.Error
const (
	CodeAmountMismatch       = "amount_mismatch"
	CodeDuplicateParticipant = "duplicate_participant"
	CodeValidation           = "validation_error"
	CodeNotFound             = "not_found"
	CodeInternal             = "internal_error"
)

// APIError is the body of every error response
type APIError struct {
	Error   string `json:"error"`   // Machine readable code
	Message string `json:"message"` // Human readable explanation
}

// classify maps an error to its HTTP status and code
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ledger.ErrAmountMismatch):
		return http.StatusBadRequest, CodeAmountMismatch
	case errors.Is(err, ledger.ErrDuplicateParticipant):
		return http.StatusUnprocessableEntity, CodeDuplicateParticipant
	case errors.Is(err, ledger.ErrNoSplits),
		errors.Is(err, ledger.ErrInvalidRequest),
		errors.Is(err, ledger.ErrInvalidWindow):
		return http.StatusUnprocessableEntity, CodeValidation
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// respondError writes the error payload for err. Internal errors are logged
// and their details kept out of the response.
func respondError(c *gin.Context, err error) {
	status, code := classify(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"request_id": middleware.GetRequestID(c), // Request id
			"path":       c.Request.URL.Path,         // Request path
			"error":      err.Error(),                // Error message
		}).Error("Request failed") // Log store failure
		message = "internal server error"
	}
	c.AbortWithStatusJSON(status, APIError{Error: code, Message: message})
}
