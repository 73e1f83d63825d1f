package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"mercury-backend/models"
)

// Balance is what a customer was billed, what they paid, and the difference.
// Remaining is negative for an overpaid customer.
type Balance struct {
	TotalBilled decimal.Decimal `json:"totalBilled"`
	TotalPaid   decimal.Decimal `json:"totalPaid"`
	Remaining   decimal.Decimal `json:"remaining"`
}

// CustomerStats aggregates everything the views need about one customer.
type CustomerStats struct {
	Balance
	WorkCount    int         `json:"workCount"`
	PaymentCount int         `json:"paymentCount"`
	LastWorkDate models.Date `json:"lastWorkDate"`
}

// HasWork reports whether the customer has at least one work item.
func (s CustomerStats) HasWork() bool { return s.WorkCount > 0 }

// Summary holds the global aggregates of a snapshot.
type Summary struct {
	CustomerCount         int             `json:"customerCount"`
	WorkCount             int             `json:"workCount"`
	TotalBilled           decimal.Decimal `json:"totalBilled"`
	TotalPaid             decimal.Decimal `json:"totalPaid"`
	TotalDebt             decimal.Decimal `json:"totalDebt"`
	AverageWorkAmount     decimal.Decimal `json:"averageWorkAmount"`
	CurrentMonthWorkCount int             `json:"currentMonthWorkCount"`
	CurrentMonthAmount    decimal.Decimal `json:"currentMonthAmount"`
}

// Accounts derives balances from one snapshot. Nothing is cached beyond the
// snapshot it was built from.
type Accounts struct {
	snap  *models.Snapshot
	stats map[uuid.UUID]*CustomerStats
}

// NewAccounts computes per-customer stats for snap in one pass.
func NewAccounts(snap *models.Snapshot) *Accounts {
	a := &Accounts{
		snap:  snap,
		stats: make(map[uuid.UUID]*CustomerStats, len(snap.Customers)),
	}
	for _, c := range snap.Customers {
		a.stats[c.ID] = &CustomerStats{}
	}
	for _, w := range snap.Works {
		st, ok := a.stats[w.CustomerID]
		if !ok {
			continue
		}
		st.TotalBilled = st.TotalBilled.Add(w.Price)
		st.WorkCount++
		if st.LastWorkDate.IsZero() || w.Date.After(st.LastWorkDate) {
			st.LastWorkDate = w.Date
		}
	}
	for _, p := range snap.Payments {
		st, ok := a.stats[p.CustomerID]
		if !ok {
			continue
		}
		st.TotalPaid = st.TotalPaid.Add(p.Amount)
		st.PaymentCount++
	}
	for _, st := range a.stats {
		st.Remaining = st.TotalBilled.Sub(st.TotalPaid)
	}
	return a
}

// Snapshot returns the snapshot the accounts were computed from.
func (a *Accounts) Snapshot() *models.Snapshot { return a.snap }

// Balance returns the balance of a customer, zero for one without records.
func (a *Accounts) Balance(customerID uuid.UUID) Balance {
	return a.Stats(customerID).Balance
}

// Stats returns the aggregates of a customer.
func (a *Accounts) Stats(customerID uuid.UUID) CustomerStats {
	if st, ok := a.stats[customerID]; ok {
		return *st
	}
	return CustomerStats{}
}

// Summary returns the global aggregates. The current month is the month of
// ref.
func (a *Accounts) Summary(ref models.Date) Summary {
	s := Summary{
		CustomerCount: len(a.snap.Customers),
		WorkCount:     len(a.snap.Works),
	}
	for _, w := range a.snap.Works {
		s.TotalBilled = s.TotalBilled.Add(w.Price)
		if w.Date.SameMonth(ref) {
			s.CurrentMonthWorkCount++
			s.CurrentMonthAmount = s.CurrentMonthAmount.Add(w.Price)
		}
	}
	for _, p := range a.snap.Payments {
		s.TotalPaid = s.TotalPaid.Add(p.Amount)
	}
	s.TotalDebt = s.TotalBilled.Sub(s.TotalPaid)
	if s.WorkCount > 0 {
		s.AverageWorkAmount = s.TotalBilled.Div(decimal.NewFromInt(int64(s.WorkCount)))
	}
	return s
}
