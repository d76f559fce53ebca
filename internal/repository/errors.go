// Package repository implements data access over the JSON file store.
// Sentinel errors defined here let handlers translate failures into HTTP
// status codes without inspecting error strings.
package repository

import "errors"

// ErrNotFound is returned when a referenced entity does not exist. Handlers
// translate it to 404 (or 400 for body references such as order items).
var ErrNotFound = errors.New("not found")

// ErrUsernameExists and ErrEmailExists signal case-insensitive uniqueness
// violations at signup.
var (
	ErrUsernameExists = errors.New("username already exists")
	ErrEmailExists    = errors.New("email already registered")
)

// ErrDuplicateProduct is returned when a storekeeper already lists a product
// with the same name.
var ErrDuplicateProduct = errors.New("product with this name already exists in your store")

// ErrWrongStore is returned when an order item references a product owned by
// a different storekeeper than the one named in the order.
var ErrWrongStore = errors.New("product does not belong to this store")
