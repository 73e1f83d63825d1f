package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"mercury-backend/models"
)

// Remote is the persistence collaborator the gateway confirms mutations with.
//
// Create methods receive a record without id and createdAt and return the
// stored record with both assigned.
type Remote interface {
	FetchAll(ctx context.Context) (models.Snapshot, error)
	ReplaceAll(ctx context.Context, snap models.Snapshot) error
	ClearAll(ctx context.Context) error

	CreateCustomer(ctx context.Context, c models.Customer) (models.Customer, error)
	CreateWork(ctx context.Context, w models.WorkItem) (models.WorkItem, error)
	CreatePayment(ctx context.Context, p models.Payment) (models.Payment, error)
	UpdateWork(ctx context.Context, w models.WorkItem) error
	DeleteWork(ctx context.Context, id uuid.UUID) error
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
}

var errMissingID = errors.New("confirmed record has no id")

// Gateway applies mutations to a Store only after the Remote confirmed them.
// The store's writer lock is held while the remote call is in flight, so no
// other mutation interleaves with it.
type Gateway struct {
	store   *Store
	remote  Remote
	timeout time.Duration
	logger  zerolog.Logger
}

// NewGateway creates a gateway. A zero timeout leaves remote calls bounded
// only by the caller's context.
func NewGateway(store *Store, remote Remote, timeout time.Duration, logger zerolog.Logger) *Gateway {
	return &Gateway{
		store:   store,
		remote:  remote,
		timeout: timeout,
		logger:  logger.With().Str("component", "gateway").Logger(),
	}
}

// Store returns the local store. Reads through it never block.
func (g *Gateway) Store() *Store { return g.store }

func (g *Gateway) call(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	start := time.Now()
	if err := fn(ctx); err != nil {
		g.logger.Warn().Err(err).Str("op", op).Dur("took", time.Since(start)).Msg("remote call failed")
		return &RemoteError{Op: op, Err: err}
	}
	g.logger.Debug().Str("op", op).Dur("took", time.Since(start)).Msg("remote call confirmed")
	return nil
}

// adoptID checks the id the remote assigned to a new record.
func (g *Gateway) adoptID(op string, id uuid.UUID) error {
	if id == uuid.Nil {
		return &RemoteError{Op: op, Err: errMissingID}
	}
	snap := g.store.Snapshot()
	if customerIndex(snap, id) >= 0 || workIndex(snap, id) >= 0 || paymentIndex(snap, id) >= 0 {
		return &RemoteError{Op: op, Err: fmt.Errorf("confirmed id %s already in use", id)}
	}
	return nil
}

// Load replaces the local store with the remote snapshot.
func (g *Gateway) Load(ctx context.Context) error {
	var snap models.Snapshot
	err := g.call(ctx, "fetch-all", func(ctx context.Context) (err error) {
		snap, err = g.remote.FetchAll(ctx)
		return err
	})
	if err != nil {
		return err
	}
	if err := g.store.Replace(snap); err != nil {
		return fmt.Errorf("load remote snapshot: %w", err)
	}
	s := g.store.Snapshot()
	g.logger.Info().
		Int("customers", len(s.Customers)).
		Int("works", len(s.Works)).
		Int("payments", len(s.Payments)).
		Msg("snapshot loaded")
	return nil
}

// ReplaceAll validates snap, persists it remotely and then adopts it.
func (g *Gateway) ReplaceAll(ctx context.Context, snap models.Snapshot) error {
	return g.store.replace(snap, func(next models.Snapshot) error {
		return g.call(ctx, "replace-all", func(ctx context.Context) error {
			return g.remote.ReplaceAll(ctx, next)
		})
	})
}

// ClearAll deletes every record remotely and locally.
func (g *Gateway) ClearAll(ctx context.Context) error {
	return g.store.replace(models.Empty(), func(models.Snapshot) error {
		return g.call(ctx, "clear-all", g.remote.ClearAll)
	})
}

func (g *Gateway) AddCustomer(ctx context.Context, in CustomerInput) (models.Customer, error) {
	return g.store.addCustomer(in, func(c models.Customer) (stored models.Customer, err error) {
		if err = g.call(ctx, "create-customer", func(ctx context.Context) (err error) {
			stored, err = g.remote.CreateCustomer(ctx, c)
			return err
		}); err != nil {
			return stored, err
		}
		return stored, g.adoptID("create-customer", stored.ID)
	})
}

func (g *Gateway) AddWorkItem(ctx context.Context, in WorkInput) (models.WorkItem, error) {
	return g.store.addWork(in, func(w models.WorkItem) (stored models.WorkItem, err error) {
		if err = g.call(ctx, "create-work", func(ctx context.Context) (err error) {
			stored, err = g.remote.CreateWork(ctx, w)
			return err
		}); err != nil {
			return stored, err
		}
		if stored.CustomerID != w.CustomerID {
			return stored, &RemoteError{Op: "create-work", Err: fmt.Errorf("confirmed work belongs to %s, want %s", stored.CustomerID, w.CustomerID)}
		}
		return stored, g.adoptID("create-work", stored.ID)
	})
}

func (g *Gateway) AddPayment(ctx context.Context, in PaymentInput) (models.Payment, error) {
	return g.store.addPayment(in, func(p models.Payment) (stored models.Payment, err error) {
		if err = g.call(ctx, "create-payment", func(ctx context.Context) (err error) {
			stored, err = g.remote.CreatePayment(ctx, p)
			return err
		}); err != nil {
			return stored, err
		}
		if stored.CustomerID != p.CustomerID {
			return stored, &RemoteError{Op: "create-payment", Err: fmt.Errorf("confirmed payment belongs to %s, want %s", stored.CustomerID, p.CustomerID)}
		}
		return stored, g.adoptID("create-payment", stored.ID)
	})
}

func (g *Gateway) UpdateWorkItem(ctx context.Context, id uuid.UUID, in WorkInput) (models.WorkItem, error) {
	return g.store.updateWork(id, in, func(w models.WorkItem) error {
		return g.call(ctx, "update-work", func(ctx context.Context) error {
			return g.remote.UpdateWork(ctx, w)
		})
	})
}

func (g *Gateway) DeleteWorkItem(ctx context.Context, id uuid.UUID) error {
	return g.store.deleteWork(id, func() error {
		return g.call(ctx, "delete-work", func(ctx context.Context) error {
			return g.remote.DeleteWork(ctx, id)
		})
	})
}

// DeleteCustomer deletes a customer and, on both sides, its works and
// payments.
func (g *Gateway) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	return g.store.deleteCustomer(id, func() error {
		return g.call(ctx, "delete-customer", func(ctx context.Context) error {
			return g.remote.DeleteCustomer(ctx, id)
		})
	})
}
