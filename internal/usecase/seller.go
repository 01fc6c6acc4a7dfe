package usecase

import (
	"booksale/internal/entity"
	"context"
	"errors"
)

// ErrNotFound is returned when the referenced seller does not exist.
var ErrNotFound = errors.New("seller not found")

// ErrEmailTaken is returned when a write collides with the unique e-mail
// constraint. Uniqueness conflicts are not transient, so callers never retry.
var ErrEmailTaken = errors.New("e-mail already taken")

// SellerRepository defines the contract for seller storage.
//
// Read operations return sellers with their books eagerly loaded; every
// mutation is atomic with respect to subsequent reads.
type SellerRepository interface {
	// Create inserts the seller and fills in the store-assigned ID.
	Create(ctx context.Context, s *entity.Seller) error
	// List returns all sellers with books loaded, in insertion order.
	List(ctx context.Context) ([]entity.Seller, error)
	// GetByID returns one seller with books loaded.
	GetByID(ctx context.Context, id int64) (entity.Seller, error)
	// Update mutates first name, last name and e-mail in place, leaving
	// password and books untouched, and returns the refreshed seller.
	Update(ctx context.Context, id int64, firstName, lastName, eMail string) (entity.Seller, error)
	// Delete removes the seller together with all owned books in one
	// transaction.
	Delete(ctx context.Context, id int64) error
}
