package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campusmerch/store/internal/model"
	"github.com/campusmerch/store/internal/store"
)

// ProductRepo provides product persistence over the file store.
type ProductRepo struct{ Store *store.Store }

func NewProductRepo(s *store.Store) *ProductRepo { return &ProductRepo{Store: s} }

// ProductUpdate lists the mutable product fields. Nil pointers leave the
// current value untouched.
type ProductUpdate struct {
	Name        *string
	Price       *float64
	Description *string
	Category    *string
	Tags        *model.TagList
	ImageURL    *string
}

// Create inserts a product for the given storekeeper. The owner must exist
// and hold the storekeeper role, and the product name must be unique within
// that store (case-insensitive).
func (r *ProductRepo) Create(ctx context.Context, p *model.Product) error {
	p.ID = uuid.NewString()
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.Category = strings.TrimSpace(p.Category)
	p.ImageURL = strings.TrimSpace(p.ImageURL)
	p.CreatedAt = time.Now().UTC()
	return r.Store.Update(func(d *store.Data) error {
		owner := false
		for i := range d.Users {
			if d.Users[i].ID == p.StoreKeeperID && d.Users[i].Role == model.RoleStoreKeeper {
				owner = true
				break
			}
		}
		if !owner {
			return ErrNotFound
		}
		for i := range d.Products {
			if d.Products[i].StoreKeeperID == p.StoreKeeperID && strings.EqualFold(d.Products[i].Name, p.Name) {
				return ErrDuplicateProduct
			}
		}
		d.Products = append(d.Products, *p)
		return nil
	})
}

// List returns every product.
func (r *ProductRepo) List(ctx context.Context) ([]model.Product, error) {
	out := []model.Product{}
	err := r.Store.View(func(d *store.Data) error {
		out = append(out, d.Products...)
		return nil
	})
	return out, err
}

// GetByID fetches one product.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (model.Product, error) {
	var p model.Product
	err := r.Store.View(func(d *store.Data) error {
		for i := range d.Products {
			if d.Products[i].ID == id {
				p = d.Products[i]
				return nil
			}
		}
		return ErrNotFound
	})
	return p, err
}

// ListByStoreKeeper returns the products of one store.
func (r *ProductRepo) ListByStoreKeeper(ctx context.Context, storeKeeperID string) ([]model.Product, error) {
	out := []model.Product{}
	err := r.Store.View(func(d *store.Data) error {
		for i := range d.Products {
			if d.Products[i].StoreKeeperID == storeKeeperID {
				out = append(out, d.Products[i])
			}
		}
		return nil
	})
	return out, err
}

// Update applies the provided fields to a product. Ownership is the
// caller's concern: handlers look the product up and compare owners before
// calling Update, so a 404/403 never reaches this far.
func (r *ProductRepo) Update(ctx context.Context, id string, upd ProductUpdate) (model.Product, error) {
	var out model.Product
	err := r.Store.Update(func(d *store.Data) error {
		for i := range d.Products {
			if d.Products[i].ID != id {
				continue
			}
			p := &d.Products[i]
			if upd.Name != nil && strings.TrimSpace(*upd.Name) != "" {
				p.Name = strings.TrimSpace(*upd.Name)
			}
			if upd.Price != nil && *upd.Price > 0 {
				p.Price = *upd.Price
			}
			if upd.Description != nil && strings.TrimSpace(*upd.Description) != "" {
				p.Description = strings.TrimSpace(*upd.Description)
			}
			if upd.Category != nil && strings.TrimSpace(*upd.Category) != "" {
				p.Category = strings.TrimSpace(*upd.Category)
			}
			if upd.Tags != nil {
				p.Tags = *upd.Tags
			}
			if upd.ImageURL != nil && strings.TrimSpace(*upd.ImageURL) != "" {
				p.ImageURL = strings.TrimSpace(*upd.ImageURL)
			}
			out = *p
			return nil
		}
		return ErrNotFound
	})
	return out, err
}

// Delete removes a product by id.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return r.Store.Update(func(d *store.Data) error {
		for i := range d.Products {
			if d.Products[i].ID == id {
				d.Products = append(d.Products[:i], d.Products[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}
