// utils/respond.go
package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mercury-backend/ledger"
)

// RespondWithError aborts the request with a JSON error body.
func RespondWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// StatusOf maps a ledger error to an HTTP status.
func StatusOf(err error) int {
	var verr *ledger.ValidationError
	switch {
	case errors.Is(err, ledger.ErrRemote):
		return http.StatusBadGateway
	case errors.Is(err, ledger.ErrDuplicateName):
		return http.StatusConflict
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrCustomerNotFound), errors.Is(err, ledger.ErrWorkNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrNothingToExport):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// RespondWithLedgerError responds with the status StatusOf picks for err.
func RespondWithLedgerError(c *gin.Context, err error) {
	RespondWithError(c, StatusOf(err), err.Error())
}
