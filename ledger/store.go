package ledger

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"mercury-backend/models"
)

// CustomerInput holds the fields of a new customer.
type CustomerInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// WorkInput holds the user-editable fields of a work item.
type WorkInput struct {
	CustomerID   uuid.UUID       `json:"customerId" validate:"required"`
	Date         models.Date     `json:"date"`
	MaterialType string          `json:"materialType" validate:"required"`
	PaintType    string          `json:"paintType" validate:"required"`
	Description  string          `json:"description" validate:"required"`
	Quantity     int             `json:"quantity" validate:"gt=0"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
}

// PaymentInput holds the fields of a new payment.
type PaymentInput struct {
	CustomerID uuid.UUID       `json:"customerId" validate:"required"`
	Date       models.Date     `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method" validate:"required"`
	Note       string          `json:"note"`
}

// Store keeps customers, work items and payments mutually consistent.
//
// Readers get the latest committed snapshot without locking. Writers are
// serialized; each mutation builds a new snapshot and publishes it at once,
// so no reader ever sees a half-applied cascade.
type Store struct {
	mu       sync.Mutex
	current  atomic.Pointer[models.Snapshot]
	validate *validator.Validate
	now      func() time.Time
	newID    func() uuid.UUID
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for createdAt of locally created records.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs sets the id generator used for locally created records.
func WithIDs(gen func() uuid.UUID) Option {
	return func(s *Store) { s.newID = gen }
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	s := &Store{
		validate: v,
		now:      time.Now,
		newID:    uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	empty := models.Empty()
	s.current.Store(&empty)
	return s
}

// Snapshot returns the latest committed state. It must not be modified.
func (s *Store) Snapshot() *models.Snapshot {
	return s.current.Load()
}

// Accounts returns the balance and query view of the latest snapshot.
func (s *Store) Accounts() *Accounts {
	return NewAccounts(s.Snapshot())
}

// CustomerBalance returns the balance of one customer in the latest snapshot.
func (s *Store) CustomerBalance(id uuid.UUID) Balance {
	return s.Accounts().Balance(id)
}

// Customer returns the customer with the given id.
func (s *Store) Customer(id uuid.UUID) (models.Customer, bool) {
	snap := s.Snapshot()
	if i := customerIndex(snap, id); i >= 0 {
		return snap.Customers[i], true
	}
	return models.Customer{}, false
}

// WorkItem returns the work item with the given id.
func (s *Store) WorkItem(id uuid.UUID) (models.WorkItem, bool) {
	snap := s.Snapshot()
	if i := workIndex(snap, id); i >= 0 {
		return snap.Works[i], true
	}
	return models.WorkItem{}, false
}

func (s *Store) publish(next models.Snapshot) {
	if next.LastUpdated.IsZero() {
		next.LastUpdated = s.now()
	}
	s.current.Store(&next)
}

// AddCustomer validates and appends a new customer.
func (s *Store) AddCustomer(in CustomerInput) (models.Customer, error) {
	return s.addCustomer(in, nil)
}

func (s *Store) addCustomer(in CustomerInput, confirm func(models.Customer) (models.Customer, error)) (models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.Snapshot()
	c, err := buildCustomer(snap, in)
	if err != nil {
		return models.Customer{}, err
	}
	if confirm != nil {
		if c, err = confirm(c); err != nil {
			return models.Customer{}, err
		}
	} else {
		c.ID, c.CreatedAt = s.newID(), s.now()
	}

	next := snap.Clone()
	next.LastUpdated = time.Time{}
	next.Customers = append(next.Customers, c)
	s.publish(next)
	return c, nil
}

func buildCustomer(snap *models.Snapshot, in CustomerInput) (models.Customer, error) {
	c := models.Customer{
		Name:    strings.TrimSpace(in.Name),
		Phone:   strings.TrimSpace(in.Phone),
		Address: strings.TrimSpace(in.Address),
	}
	return c, checkName(snap.Customers, c.Name)
}

// checkName rejects an empty name or one already taken in existing,
// ignoring case.
func checkName(existing []models.Customer, name string) error {
	if name == "" {
		return &ValidationError{Field: "name", Reason: ErrEmptyName}
	}
	for _, c := range existing {
		if sameName(c.Name, name) {
			return &ValidationError{Field: "name", Reason: ErrDuplicateName}
		}
	}
	return nil
}

// checkMoney requires a positive amount with at most two decimal places,
// the precision of the database columns.
func checkMoney(field string, d decimal.Decimal) error {
	if !d.IsPositive() {
		return invalid(field)
	}
	if !d.Equal(d.Round(2)) {
		return &ValidationError{Field: field, Reason: fmt.Errorf("%w: more than two decimal places", ErrInvalidInput)}
	}
	return nil
}

// AddWorkItem validates and inserts a work item at the head of the sequence.
func (s *Store) AddWorkItem(in WorkInput) (models.WorkItem, error) {
	return s.addWork(in, nil)
}

func (s *Store) addWork(in WorkInput, confirm func(models.WorkItem) (models.WorkItem, error)) (models.WorkItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.Snapshot()
	w, err := s.buildWork(snap, in)
	if err != nil {
		return models.WorkItem{}, err
	}
	if confirm != nil {
		if w, err = confirm(w); err != nil {
			return models.WorkItem{}, err
		}
		w.Price = w.Total()
	} else {
		w.ID, w.CreatedAt = s.newID(), s.now()
	}

	next := snap.Clone()
	next.LastUpdated = time.Time{}
	next.Works = slices.Insert(next.Works, 0, w)
	s.publish(next)
	return w, nil
}

// UpdateWorkItem re-validates all fields of the work item and replaces it in
// place. The id, createdAt and position in the sequence are kept.
func (s *Store) UpdateWorkItem(id uuid.UUID, in WorkInput) (models.WorkItem, error) {
	return s.updateWork(id, in, nil)
}

func (s *Store) updateWork(id uuid.UUID, in WorkInput, confirm func(models.WorkItem) error) (models.WorkItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.Snapshot()
	i := workIndex(snap, id)
	if i < 0 {
		return models.WorkItem{}, &NotFoundError{Entity: EntityWork, ID: id}
	}
	w, err := s.buildWork(snap, in)
	if err != nil {
		return models.WorkItem{}, err
	}
	w.ID = snap.Works[i].ID
	w.CreatedAt = snap.Works[i].CreatedAt
	if confirm != nil {
		if err := confirm(w); err != nil {
			return models.WorkItem{}, err
		}
	}

	next := snap.Clone()
	next.LastUpdated = time.Time{}
	next.Works[i] = w
	s.publish(next)
	return w, nil
}

// checkWork trims the text fields of in and reports the first invalid one.
func (s *Store) checkWork(in *WorkInput) error {
	in.MaterialType = strings.TrimSpace(in.MaterialType)
	in.PaintType = strings.TrimSpace(in.PaintType)
	in.Description = strings.TrimSpace(in.Description)
	if err := s.check(*in); err != nil {
		return err
	}
	if in.Date.IsZero() {
		return invalid("date")
	}
	return checkMoney("unitPrice", in.UnitPrice)
}

func (s *Store) buildWork(snap *models.Snapshot, in WorkInput) (models.WorkItem, error) {
	if err := s.checkWork(&in); err != nil {
		return models.WorkItem{}, err
	}
	ci := customerIndex(snap, in.CustomerID)
	if ci < 0 {
		return models.WorkItem{}, &NotFoundError{Entity: EntityCustomer, ID: in.CustomerID}
	}
	w := models.WorkItem{
		CustomerID:   in.CustomerID,
		CustomerName: snap.Customers[ci].Name,
		Date:         in.Date,
		MaterialType: in.MaterialType,
		PaintType:    in.PaintType,
		Description:  in.Description,
		Quantity:     in.Quantity,
		UnitPrice:    in.UnitPrice,
	}
	w.Price = w.Total()
	return w, nil
}

// AddPayment validates and inserts a payment at the head of the sequence.
func (s *Store) AddPayment(in PaymentInput) (models.Payment, error) {
	return s.addPayment(in, nil)
}

func (s *Store) addPayment(in PaymentInput, confirm func(models.Payment) (models.Payment, error)) (models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.Snapshot()
	p, err := s.buildPayment(snap, in)
	if err != nil {
		return models.Payment{}, err
	}
	if confirm != nil {
		if p, err = confirm(p); err != nil {
			return models.Payment{}, err
		}
	} else {
		p.ID, p.CreatedAt = s.newID(), s.now()
	}

	next := snap.Clone()
	next.LastUpdated = time.Time{}
	next.Payments = slices.Insert(next.Payments, 0, p)
	s.publish(next)
	return p, nil
}

// checkPayment trims the text fields of in and reports the first invalid one.
func (s *Store) checkPayment(in *PaymentInput) error {
	in.Method = strings.TrimSpace(in.Method)
	in.Note = strings.TrimSpace(in.Note)
	if err := s.check(*in); err != nil {
		return err
	}
	if in.Date.IsZero() {
		return invalid("date")
	}
	return checkMoney("amount", in.Amount)
}

func (s *Store) buildPayment(snap *models.Snapshot, in PaymentInput) (models.Payment, error) {
	if err := s.checkPayment(&in); err != nil {
		return models.Payment{}, err
	}
	ci := customerIndex(snap, in.CustomerID)
	if ci < 0 {
		return models.Payment{}, &NotFoundError{Entity: EntityCustomer, ID: in.CustomerID}
	}
	return models.Payment{
		CustomerID:   in.CustomerID,
		CustomerName: snap.Customers[ci].Name,
		Date:         in.Date,
		Amount:       in.Amount,
		Method:       in.Method,
		Note:         in.Note,
	}, nil
}

// DeleteWorkItem removes one work item.
func (s *Store) DeleteWorkItem(id uuid.UUID) error {
	return s.deleteWork(id, nil)
}

func (s *Store) deleteWork(id uuid.UUID, confirm func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.Snapshot()
	i := workIndex(snap, id)
	if i < 0 {
		return &NotFoundError{Entity: EntityWork, ID: id}
	}
	if confirm != nil {
		if err := confirm(); err != nil {
			return err
		}
	}

	next := snap.Clone()
	next.LastUpdated = time.Time{}
	next.Works = slices.Delete(next.Works, i, i+1)
	s.publish(next)
	return nil
}

// DeleteCustomer removes a customer together with all of its work items and
// payments.
func (s *Store) DeleteCustomer(id uuid.UUID) error {
	return s.deleteCustomer(id, nil)
}

func (s *Store) deleteCustomer(id uuid.UUID, confirm func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.Snapshot()
	if customerIndex(snap, id) < 0 {
		return &NotFoundError{Entity: EntityCustomer, ID: id}
	}
	if confirm != nil {
		if err := confirm(); err != nil {
			return err
		}
	}

	next := models.Snapshot{
		Customers: slices.DeleteFunc(slices.Clone(snap.Customers), func(c models.Customer) bool { return c.ID == id }),
		Works:     slices.DeleteFunc(slices.Clone(snap.Works), func(w models.WorkItem) bool { return w.CustomerID == id }),
		Payments:  slices.DeleteFunc(slices.Clone(snap.Payments), func(p models.Payment) bool { return p.CustomerID == id }),
	}
	s.publish(next)
	return nil
}

// Replace loads a whole snapshot, typically fetched from the remote. Every
// record is validated like a new one. Prices are recomputed and denormalized
// customer names refreshed; dangling references and duplicate ids are
// rejected.
func (s *Store) Replace(snap models.Snapshot) error {
	return s.replace(snap, nil)
}

func (s *Store) replace(snap models.Snapshot, confirm func(models.Snapshot) error) error {
	next, err := s.normalize(snap)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if confirm != nil {
		if err := confirm(next); err != nil {
			return err
		}
	}
	s.publish(next)
	return nil
}

// at prefixes the field of a ValidationError with the record it belongs to.
func at(record string, err error) error {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	field := record
	if verr.Field != "" {
		field += "." + verr.Field
	}
	return &ValidationError{Field: field, Reason: verr.Reason}
}

func (s *Store) normalize(snap models.Snapshot) (models.Snapshot, error) {
	next := snap.Clone()
	if next.Customers == nil {
		next.Customers = []models.Customer{}
	}
	if next.Works == nil {
		next.Works = []models.WorkItem{}
	}
	if next.Payments == nil {
		next.Payments = []models.Payment{}
	}

	ids := make(map[uuid.UUID]struct{}, len(next.Customers)+len(next.Works)+len(next.Payments))
	names := make(map[uuid.UUID]string, len(next.Customers))
	seen := func(field string, id uuid.UUID) error {
		if id == uuid.Nil {
			return invalid(field + ".id")
		}
		if _, dup := ids[id]; dup {
			return &ValidationError{Field: field + ".id", Reason: fmt.Errorf("%w: duplicate id %s", ErrInvalidInput, id)}
		}
		ids[id] = struct{}{}
		return nil
	}

	for i := range next.Customers {
		c := &next.Customers[i]
		field := fmt.Sprintf("customers[%d]", i)
		if err := seen(field, c.ID); err != nil {
			return next, err
		}
		c.Name = strings.TrimSpace(c.Name)
		c.Phone = strings.TrimSpace(c.Phone)
		c.Address = strings.TrimSpace(c.Address)
		if err := checkName(next.Customers[:i], c.Name); err != nil {
			return next, at(field, err)
		}
		names[c.ID] = c.Name
	}
	for i := range next.Works {
		w := &next.Works[i]
		field := fmt.Sprintf("works[%d]", i)
		if err := seen(field, w.ID); err != nil {
			return next, err
		}
		name, ok := names[w.CustomerID]
		if !ok {
			return next, &ValidationError{Field: field + ".customerId", Reason: errors.Join(ErrInvalidInput, ErrCustomerNotFound)}
		}
		in := WorkInput{
			CustomerID: w.CustomerID, Date: w.Date,
			MaterialType: w.MaterialType, PaintType: w.PaintType, Description: w.Description,
			Quantity: w.Quantity, UnitPrice: w.UnitPrice,
		}
		if err := s.checkWork(&in); err != nil {
			return next, at(field, err)
		}
		w.MaterialType, w.PaintType, w.Description = in.MaterialType, in.PaintType, in.Description
		w.CustomerName = name
		w.Price = w.Total()
	}
	for i := range next.Payments {
		p := &next.Payments[i]
		field := fmt.Sprintf("payments[%d]", i)
		if err := seen(field, p.ID); err != nil {
			return next, err
		}
		name, ok := names[p.CustomerID]
		if !ok {
			return next, &ValidationError{Field: field + ".customerId", Reason: errors.Join(ErrInvalidInput, ErrCustomerNotFound)}
		}
		in := PaymentInput{CustomerID: p.CustomerID, Date: p.Date, Amount: p.Amount, Method: p.Method, Note: p.Note}
		if err := s.checkPayment(&in); err != nil {
			return next, at(field, err)
		}
		p.Method, p.Note = in.Method, in.Note
		p.CustomerName = name
	}
	return next, nil
}

func (s *Store) check(in interface{}) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return invalid(verrs[0].Field())
	}
	return &ValidationError{Reason: fmt.Errorf("%w: %v", ErrInvalidInput, err)}
}

func customerIndex(snap *models.Snapshot, id uuid.UUID) int {
	return slices.IndexFunc(snap.Customers, func(c models.Customer) bool { return c.ID == id })
}

func workIndex(snap *models.Snapshot, id uuid.UUID) int {
	return slices.IndexFunc(snap.Works, func(w models.WorkItem) bool { return w.ID == id })
}

func paymentIndex(snap *models.Snapshot, id uuid.UUID) int {
	return slices.IndexFunc(snap.Payments, func(p models.Payment) bool { return p.ID == id })
}
