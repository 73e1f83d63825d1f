// services/db_store.go
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mercury-backend/ledger"
	"mercury-backend/models"
)

// DBStore persists the ledger in PostgreSQL through gorm.
type DBStore struct {
	db *gorm.DB
}

func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

func byCreatedAt(desc bool) clause.OrderByColumn {
	return clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: desc}
}

func (s *DBStore) FetchAll(ctx context.Context) (models.Snapshot, error) {
	snap := models.Empty()
	db := s.db.WithContext(ctx)

	if err := db.Order(byCreatedAt(false)).Find(&snap.Customers).Error; err != nil {
		return models.Snapshot{}, fmt.Errorf("fetch customers: %w", err)
	}
	if err := db.Order(byCreatedAt(true)).Find(&snap.Works).Error; err != nil {
		return models.Snapshot{}, fmt.Errorf("fetch works: %w", err)
	}
	if err := db.Order(byCreatedAt(true)).Find(&snap.Payments).Error; err != nil {
		return models.Snapshot{}, fmt.Errorf("fetch payments: %w", err)
	}
	return snap, nil
}

func clearTables(tx *gorm.DB) error {
	if err := tx.Where("1 = 1").Delete(&models.Payment{}).Error; err != nil {
		return fmt.Errorf("clear payments: %w", err)
	}
	if err := tx.Where("1 = 1").Delete(&models.WorkItem{}).Error; err != nil {
		return fmt.Errorf("clear works: %w", err)
	}
	if err := tx.Where("1 = 1").Delete(&models.Customer{}).Error; err != nil {
		return fmt.Errorf("clear customers: %w", err)
	}
	return nil
}

// ReplaceAll swaps the contents of all three tables in one transaction.
func (s *DBStore) ReplaceAll(ctx context.Context, snap models.Snapshot) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearTables(tx); err != nil {
			return err
		}
		if len(snap.Customers) > 0 {
			if err := tx.Omit("Works", "Payments").CreateInBatches(snap.Customers, 100).Error; err != nil {
				return fmt.Errorf("insert customers: %w", err)
			}
		}
		if len(snap.Works) > 0 {
			if err := tx.CreateInBatches(snap.Works, 100).Error; err != nil {
				return fmt.Errorf("insert works: %w", err)
			}
		}
		if len(snap.Payments) > 0 {
			if err := tx.CreateInBatches(snap.Payments, 100).Error; err != nil {
				return fmt.Errorf("insert payments: %w", err)
			}
		}
		return nil
	})
}

func (s *DBStore) ClearAll(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(clearTables)
}

func (s *DBStore) CreateCustomer(ctx context.Context, c models.Customer) (models.Customer, error) {
	c.ID = uuid.New()
	if err := s.db.WithContext(ctx).Omit("Works", "Payments").Create(&c).Error; err != nil {
		return models.Customer{}, fmt.Errorf("create customer: %w", err)
	}
	return c, nil
}

func (s *DBStore) CreateWork(ctx context.Context, w models.WorkItem) (models.WorkItem, error) {
	w.ID = uuid.New()
	if err := s.db.WithContext(ctx).Create(&w).Error; err != nil {
		return models.WorkItem{}, fmt.Errorf("create work: %w", err)
	}
	return w, nil
}

func (s *DBStore) CreatePayment(ctx context.Context, p models.Payment) (models.Payment, error) {
	p.ID = uuid.New()
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return models.Payment{}, fmt.Errorf("create payment: %w", err)
	}
	return p, nil
}

func (s *DBStore) UpdateWork(ctx context.Context, w models.WorkItem) error {
	res := s.db.WithContext(ctx).
		Model(&models.WorkItem{}).
		Where("id = ?", w.ID).
		Select("customer_id", "customer_name", "date", "material_type", "paint_type",
			"description", "quantity", "unit_price", "price").
		Updates(&w)
	if res.Error != nil {
		return fmt.Errorf("update work: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &ledger.NotFoundError{Entity: ledger.EntityWork, ID: w.ID}
	}
	return nil
}

func (s *DBStore) DeleteWork(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.WorkItem{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete work: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &ledger.NotFoundError{Entity: ledger.EntityWork, ID: id}
	}
	return nil
}

// DeleteCustomer removes the customer with its works and payments in one
// transaction.
func (s *DBStore) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Payment{}, "customer_id = ?", id).Error; err != nil {
			return fmt.Errorf("delete payments: %w", err)
		}
		if err := tx.Delete(&models.WorkItem{}, "customer_id = ?", id).Error; err != nil {
			return fmt.Errorf("delete works: %w", err)
		}
		res := tx.Delete(&models.Customer{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("delete customer: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return &ledger.NotFoundError{Entity: ledger.EntityCustomer, ID: id}
		}
		return nil
	})
}

// RecordReminder stores the outcome of one debt reminder.
func (s *DBStore) RecordReminder(ctx context.Context, entry *models.ReminderLog) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("record reminder: %w", err)
	}
	return nil
}
