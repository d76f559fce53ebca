package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/campusmerch/store/internal/model"
	"github.com/campusmerch/store/internal/store"
)

// OrderRepo provides order persistence over the file store.
type OrderRepo struct{ Store *store.Store }

func NewOrderRepo(s *store.Store) *OrderRepo { return &OrderRepo{Store: s} }

// Create validates and inserts an order: the student and storekeeper must
// exist with the right roles, and every item's product must exist and
// belong to the named storekeeper. Orders are confirmed on creation; there
// is no further state machine.
func (r *OrderRepo) Create(ctx context.Context, o *model.Order) error {
	o.ID = uuid.NewString()
	o.Status = model.OrderStatusConfirmed
	o.CreatedAt = time.Now().UTC()
	return r.Store.Update(func(d *store.Data) error {
		if !hasUserWithRole(d, o.StudentID, model.RoleStudent) {
			return fmt.Errorf("student %w", ErrNotFound)
		}
		if !hasUserWithRole(d, o.StoreKeeperID, model.RoleStoreKeeper) {
			return fmt.Errorf("store keeper %w", ErrNotFound)
		}
		for _, item := range o.Items {
			p, ok := findProduct(d, item.ProductID)
			if !ok {
				return fmt.Errorf("product %s %w", item.ProductID, ErrNotFound)
			}
			if p.StoreKeeperID != o.StoreKeeperID {
				return ErrWrongStore
			}
		}
		d.Orders = append(d.Orders, *o)
		return nil
	})
}

func hasUserWithRole(d *store.Data, id string, role model.Role) bool {
	for i := range d.Users {
		if d.Users[i].ID == id && d.Users[i].Role == role {
			return true
		}
	}
	return false
}

func findProduct(d *store.Data, id string) (model.Product, bool) {
	for i := range d.Products {
		if d.Products[i].ID == id {
			return d.Products[i], true
		}
	}
	return model.Product{}, false
}

// List returns every order.
func (r *OrderRepo) List(ctx context.Context) ([]model.Order, error) {
	out := []model.Order{}
	err := r.Store.View(func(d *store.Data) error {
		out = append(out, d.Orders...)
		return nil
	})
	return out, err
}

// GetByID fetches one order.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (model.Order, error) {
	var o model.Order
	err := r.Store.View(func(d *store.Data) error {
		for i := range d.Orders {
			if d.Orders[i].ID == id {
				o = d.Orders[i]
				return nil
			}
		}
		return ErrNotFound
	})
	return o, err
}

// ListByStudent returns the orders a student has placed.
func (r *OrderRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Order, error) {
	out := []model.Order{}
	err := r.Store.View(func(d *store.Data) error {
		for i := range d.Orders {
			if d.Orders[i].StudentID == studentID {
				out = append(out, d.Orders[i])
			}
		}
		return nil
	})
	return out, err
}

// ListByStoreKeeper returns the orders a storekeeper has received.
func (r *OrderRepo) ListByStoreKeeper(ctx context.Context, storeKeeperID string) ([]model.Order, error) {
	out := []model.Order{}
	err := r.Store.View(func(d *store.Data) error {
		for i := range d.Orders {
			if d.Orders[i].StoreKeeperID == storeKeeperID {
				out = append(out, d.Orders[i])
			}
		}
		return nil
	})
	return out, err
}
