package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"mercury-backend/models"
)

var testNow = time.Date(2024, time.March, 10, 9, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestStore() *Store {
	return NewStore(WithClock(func() time.Time { return testNow }))
}

func mustCustomer(t *testing.T, s *Store, name string) models.Customer {
	t.Helper()
	c, err := s.AddCustomer(CustomerInput{Name: name})
	if err != nil {
		t.Fatalf("AddCustomer(%q) failed: %v", name, err)
	}
	return c
}

func workInput(customerID uuid.UUID, date string, quantity int, unitPrice string) WorkInput {
	return WorkInput{
		CustomerID:   customerID,
		Date:         models.MustParseDate(date),
		MaterialType: "Ahşap",
		PaintType:    "Vernik",
		Description:  "Kapı boyama",
		Quantity:     quantity,
		UnitPrice:    dec(unitPrice),
	}
}

func mustWork(t *testing.T, s *Store, customerID uuid.UUID, date string, quantity int, unitPrice string) models.WorkItem {
	t.Helper()
	w, err := s.AddWorkItem(workInput(customerID, date, quantity, unitPrice))
	if err != nil {
		t.Fatalf("AddWorkItem failed: %v", err)
	}
	return w
}

func mustPayment(t *testing.T, s *Store, customerID uuid.UUID, date, amount string) models.Payment {
	t.Helper()
	p, err := s.AddPayment(PaymentInput{
		CustomerID: customerID,
		Date:       models.MustParseDate(date),
		Amount:     dec(amount),
		Method:     "Nakit",
	})
	if err != nil {
		t.Fatalf("AddPayment failed: %v", err)
	}
	return p
}

func customerNames(customers []models.Customer) []string {
	names := make([]string, len(customers))
	for i, c := range customers {
		names[i] = c.Name
	}
	return names
}
