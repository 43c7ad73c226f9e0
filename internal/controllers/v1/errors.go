package v1

import (
	"errors"
	"net/http"

	"github.com/splithaus/backend/internal/ledger"
	"github.com/splithaus/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"there is no expense matching your query"`
}

// status returns the appropriate HTTP status for an error from the
// models or ledger packages
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, ledger.ErrNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, ledger.ErrConflict) {
		return http.StatusConflict
	}

	return http.StatusBadRequest
}

// Report errors
var (
	errReportWindowRequired = errors.New("the from and until query parameters must be set")
	errReportWindowInverted = errors.New("the until date must not be before the from date")
)
