// services/file_store.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"mercury-backend/ledger"
	"mercury-backend/models"
)

// FileStore keeps the whole snapshot in one JSON document (data.json).
// Every write stamps lastUpdated.
type FileStore struct {
	mu     sync.Mutex
	path   string
	now    func() time.Time
	logger zerolog.Logger
}

func NewFileStore(path string, logger zerolog.Logger) *FileStore {
	return &FileStore{
		path:   path,
		now:    time.Now,
		logger: logger.With().Str("component", "file-store").Str("path", path).Logger(),
	}
}

// read returns an empty snapshot when the file does not exist yet.
func (s *FileStore) read() (models.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		snap := models.Empty()
		snap.LastUpdated = s.now()
		return snap, nil
	}
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("read %s: %w", s.path, err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return models.Snapshot{}, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if snap.Customers == nil {
		snap.Customers = []models.Customer{}
	}
	if snap.Works == nil {
		snap.Works = []models.WorkItem{}
	}
	if snap.Payments == nil {
		snap.Payments = []models.Payment{}
	}
	return snap, nil
}

// write replaces the file atomically through a temporary sibling.
func (s *FileStore) write(snap models.Snapshot) error {
	snap.LastUpdated = s.now()
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// update runs fn on the current document and writes the result.
func (s *FileStore) update(ctx context.Context, fn func(*models.Snapshot) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.read()
	if err != nil {
		return err
	}
	if err := fn(&snap); err != nil {
		return err
	}
	return s.write(snap)
}

func (s *FileStore) FetchAll(ctx context.Context) (models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return models.Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileStore) ReplaceAll(ctx context.Context, snap models.Snapshot) error {
	return s.update(ctx, func(cur *models.Snapshot) error {
		*cur = snap.Clone()
		return nil
	})
}

func (s *FileStore) ClearAll(ctx context.Context) error {
	err := s.update(ctx, func(cur *models.Snapshot) error {
		*cur = models.Empty()
		return nil
	})
	if err == nil {
		s.logger.Info().Msg("all data cleared")
	}
	return err
}

func (s *FileStore) CreateCustomer(ctx context.Context, c models.Customer) (models.Customer, error) {
	err := s.update(ctx, func(cur *models.Snapshot) error {
		c.ID, c.CreatedAt = uuid.New(), s.now()
		cur.Customers = append(cur.Customers, c)
		return nil
	})
	return c, err
}

func (s *FileStore) CreateWork(ctx context.Context, w models.WorkItem) (models.WorkItem, error) {
	err := s.update(ctx, func(cur *models.Snapshot) error {
		w.ID, w.CreatedAt = uuid.New(), s.now()
		cur.Works = slices.Insert(cur.Works, 0, w)
		return nil
	})
	return w, err
}

func (s *FileStore) CreatePayment(ctx context.Context, p models.Payment) (models.Payment, error) {
	err := s.update(ctx, func(cur *models.Snapshot) error {
		p.ID, p.CreatedAt = uuid.New(), s.now()
		cur.Payments = slices.Insert(cur.Payments, 0, p)
		return nil
	})
	return p, err
}

func (s *FileStore) UpdateWork(ctx context.Context, w models.WorkItem) error {
	return s.update(ctx, func(cur *models.Snapshot) error {
		i := slices.IndexFunc(cur.Works, func(x models.WorkItem) bool { return x.ID == w.ID })
		if i < 0 {
			return &ledger.NotFoundError{Entity: ledger.EntityWork, ID: w.ID}
		}
		cur.Works[i] = w
		return nil
	})
}

func (s *FileStore) DeleteWork(ctx context.Context, id uuid.UUID) error {
	return s.update(ctx, func(cur *models.Snapshot) error {
		n := len(cur.Works)
		cur.Works = slices.DeleteFunc(cur.Works, func(w models.WorkItem) bool { return w.ID == id })
		if len(cur.Works) == n {
			return &ledger.NotFoundError{Entity: ledger.EntityWork, ID: id}
		}
		return nil
	})
}

// DeleteCustomer removes the customer with its works and payments.
func (s *FileStore) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	return s.update(ctx, func(cur *models.Snapshot) error {
		n := len(cur.Customers)
		cur.Customers = slices.DeleteFunc(cur.Customers, func(c models.Customer) bool { return c.ID == id })
		if len(cur.Customers) == n {
			return &ledger.NotFoundError{Entity: ledger.EntityCustomer, ID: id}
		}
		cur.Works = slices.DeleteFunc(cur.Works, func(w models.WorkItem) bool { return w.CustomerID == id })
		cur.Payments = slices.DeleteFunc(cur.Payments, func(p models.Payment) bool { return p.CustomerID == id })
		return nil
	})
}
