package ledger

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"mercury-backend/models"
)

// DebtFilter selects customers by the sign of their remaining debt.
type DebtFilter string

const (
	DebtAll      DebtFilter = "all"
	DebtOwing    DebtFilter = "debt"     // remaining > 0
	DebtSettled  DebtFilter = "no-debt"  // remaining <= 0
	DebtOverpaid DebtFilter = "overpaid" // remaining < 0
)

// ParseDebtFilter parses a filter name; the empty string means DebtAll.
func ParseDebtFilter(s string) (DebtFilter, error) {
	switch f := DebtFilter(s); f {
	case "":
		return DebtAll, nil
	case DebtAll, DebtOwing, DebtSettled, DebtOverpaid:
		return f, nil
	}
	return "", &ValidationError{Field: "filter", Reason: fmt.Errorf("%w: unknown debt filter %q", ErrInvalidInput, s)}
}

func (f DebtFilter) match(b Balance) bool {
	switch f {
	case DebtOwing:
		return b.Remaining.IsPositive()
	case DebtSettled:
		return !b.Remaining.IsPositive()
	case DebtOverpaid:
		return b.Remaining.IsNegative()
	}
	return true
}

// SortKey orders a customer list.
type SortKey string

const (
	SortByName   SortKey = "name"
	SortByDebt   SortKey = "debt"
	SortByWorks  SortKey = "works"
	SortByRecent SortKey = "recent"
)

// ParseSortKey parses a sort key; the empty string means SortByName.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case "":
		return SortByName, nil
	case SortByName, SortByDebt, SortByWorks, SortByRecent:
		return k, nil
	}
	return "", &ValidationError{Field: "sort", Reason: fmt.Errorf("%w: unknown sort key %q", ErrInvalidInput, s)}
}

// FilterCustomers keeps the customers whose name, phone or address contains
// search (case-insensitively) and whose balance matches filter.
func (a *Accounts) FilterCustomers(customers []models.Customer, search string, filter DebtFilter) []models.Customer {
	f := newFolder()
	needle := f.fold(strings.TrimSpace(search))
	out := make([]models.Customer, 0, len(customers))
	for _, c := range customers {
		if needle != "" && !f.contains(c.Name, needle) && !f.contains(c.Phone, needle) && !f.contains(c.Address, needle) {
			continue
		}
		if !filter.match(a.Balance(c.ID)) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// SortCustomers returns a stably sorted copy of customers.
func (a *Accounts) SortCustomers(customers []models.Customer, key SortKey) []models.Customer {
	out := slices.Clone(customers)
	switch key {
	case SortByName:
		col := newCollator()
		slices.SortStableFunc(out, func(x, y models.Customer) int {
			return col.CompareString(x.Name, y.Name)
		})
	case SortByDebt:
		slices.SortStableFunc(out, func(x, y models.Customer) int {
			return a.Balance(y.ID).Remaining.Cmp(a.Balance(x.ID).Remaining)
		})
	case SortByWorks:
		slices.SortStableFunc(out, func(x, y models.Customer) int {
			return a.Stats(y.ID).WorkCount - a.Stats(x.ID).WorkCount
		})
	case SortByRecent:
		slices.SortStableFunc(out, func(x, y models.Customer) int {
			sx, sy := a.Stats(x.ID), a.Stats(y.ID)
			switch {
			case !sx.HasWork() && !sy.HasWork():
				return 0
			case !sx.HasWork():
				return 1
			case !sy.HasWork():
				return -1
			}
			return sy.LastWorkDate.Compare(sx.LastWorkDate)
		})
	}
	return out
}

// FilterWorkItems keeps the work items whose customer name or description
// contains search. An empty search returns works unchanged.
func FilterWorkItems(works []models.WorkItem, search string) []models.WorkItem {
	search = strings.TrimSpace(search)
	if search == "" {
		return works
	}
	f := newFolder()
	needle := f.fold(search)
	out := make([]models.WorkItem, 0, len(works))
	for _, w := range works {
		if f.contains(w.CustomerName, needle) || f.contains(w.Description, needle) {
			out = append(out, w)
		}
	}
	return out
}

// Query is the per-session list state: search text, debt filter, sort key
// and the selected customer (uuid.Nil for none).
type Query struct {
	Search   string     `form:"search" json:"search"`
	Debt     DebtFilter `form:"filter" json:"filter"`
	Sort     SortKey    `form:"sort" json:"sort"`
	Selected uuid.UUID  `form:"-" json:"selected"`
}

// CustomerRow is a customer with its aggregates.
type CustomerRow struct {
	models.Customer
	CustomerStats
	Selected bool `json:"selected"`
}

// CustomerDetail is one customer with its full history, most recent first.
type CustomerDetail struct {
	Customer models.Customer   `json:"customer"`
	Stats    CustomerStats     `json:"stats"`
	Works    []models.WorkItem `json:"works"`
	Payments []models.Payment  `json:"payments"`
}

// View is everything a renderer needs after a mutation.
type View struct {
	Summary   Summary           `json:"summary"`
	Customers []CustomerRow     `json:"customers"`
	Filtered  bool              `json:"filtered"`
	Works     []models.WorkItem `json:"works"`
	Selected  *CustomerDetail   `json:"selected,omitempty"`
	DebtInfo  *CustomerDetail   `json:"debtInfo,omitempty"`
}

// Render builds the view of the snapshot for q. The current month is the
// month of ref. An empty sort key sorts by name.
func (a *Accounts) Render(q Query, ref models.Date) View {
	if q.Sort == "" {
		q.Sort = SortByName
	}
	customers := a.SortCustomers(a.FilterCustomers(a.snap.Customers, q.Search, q.Debt), q.Sort)
	rows := make([]CustomerRow, len(customers))
	for i, c := range customers {
		rows[i] = CustomerRow{Customer: c, CustomerStats: a.Stats(c.ID), Selected: c.ID == q.Selected}
	}
	v := View{
		Summary:   a.Summary(ref),
		Customers: rows,
		Filtered:  strings.TrimSpace(q.Search) != "" || (q.Debt != "" && q.Debt != DebtAll),
		Works:     FilterWorkItems(a.snap.Works, q.Search),
	}
	if q.Selected != uuid.Nil {
		if d, ok := a.Detail(q.Selected); ok {
			v.Selected = &d
		}
	}
	if c, ok := a.DebtInfoCustomer(q); ok {
		if v.Selected != nil && v.Selected.Customer.ID == c.ID {
			v.DebtInfo = v.Selected
		} else if d, ok := a.Detail(c.ID); ok {
			v.DebtInfo = &d
		}
	}
	return v
}

// DebtInfoCustomer picks the customer whose debt panel is shown: the selected
// one, otherwise the first whose name contains a search of two runes or more.
func (a *Accounts) DebtInfoCustomer(q Query) (models.Customer, bool) {
	if q.Selected != uuid.Nil {
		if i := customerIndex(a.snap, q.Selected); i >= 0 {
			return a.snap.Customers[i], true
		}
	}
	search := strings.TrimSpace(q.Search)
	if utf8.RuneCountInString(search) < 2 {
		return models.Customer{}, false
	}
	f := newFolder()
	needle := f.fold(search)
	for _, c := range a.snap.Customers {
		if f.contains(c.Name, needle) {
			return c, true
		}
	}
	return models.Customer{}, false
}

// Detail returns a customer with its works and payments sorted by date,
// most recent first.
func (a *Accounts) Detail(customerID uuid.UUID) (CustomerDetail, bool) {
	i := customerIndex(a.snap, customerID)
	if i < 0 {
		return CustomerDetail{}, false
	}
	d := CustomerDetail{
		Customer: a.snap.Customers[i],
		Stats:    a.Stats(customerID),
		Works:    []models.WorkItem{},
		Payments: []models.Payment{},
	}
	for _, w := range a.snap.Works {
		if w.CustomerID == customerID {
			d.Works = append(d.Works, w)
		}
	}
	for _, p := range a.snap.Payments {
		if p.CustomerID == customerID {
			d.Payments = append(d.Payments, p)
		}
	}
	slices.SortStableFunc(d.Works, func(x, y models.WorkItem) int { return y.Date.Compare(x.Date) })
	slices.SortStableFunc(d.Payments, func(x, y models.Payment) int { return y.Date.Compare(x.Date) })
	return d, true
}
