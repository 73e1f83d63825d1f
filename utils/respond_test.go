package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"mercury-backend/ledger"
)

func TestStatusOf(t *testing.T) {
	notFound := &ledger.NotFoundError{Entity: ledger.EntityCustomer, ID: uuid.New()}

	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"Empty name", &ledger.ValidationError{Field: "name", Reason: ledger.ErrEmptyName}, http.StatusBadRequest},
		{"Duplicate name", &ledger.ValidationError{Field: "name", Reason: ledger.ErrDuplicateName}, http.StatusConflict},
		{"Invalid input", &ledger.ValidationError{Field: "quantity", Reason: ledger.ErrInvalidInput}, http.StatusBadRequest},
		{"Dangling reference", &ledger.ValidationError{Field: "works[0].customerId", Reason: errors.Join(ledger.ErrInvalidInput, ledger.ErrCustomerNotFound)}, http.StatusBadRequest},
		{"Unknown customer", notFound, http.StatusNotFound},
		{"Unknown work", &ledger.NotFoundError{Entity: ledger.EntityWork, ID: uuid.New()}, http.StatusNotFound},
		{"Remote failure", &ledger.RemoteError{Op: "create-customer", Err: errors.New("disk full")}, http.StatusBadGateway},
		{"Remote not found", &ledger.RemoteError{Op: "delete-work", Err: notFound}, http.StatusBadGateway},
		{"Nothing to export", fmt.Errorf("export: %w", ledger.ErrNothingToExport), http.StatusNotFound},
		{"Unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StatusOf(tc.err); got != tc.want {
				t.Errorf("StatusOf(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}
