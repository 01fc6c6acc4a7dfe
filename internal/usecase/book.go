package usecase

import (
	"booksale/internal/entity"
	"context"
	"errors"
)

// ErrSellerNotFound is returned when a book write references a seller that
// does not exist (foreign key violation at the store).
var ErrSellerNotFound = errors.New("referenced seller not found")

// BookRepository defines the contract for book storage. Books are only ever
// created directly; they are read through the owning seller and removed by
// the seller cascade.
type BookRepository interface {
	// Create inserts the book and fills in the store-assigned ID.
	Create(ctx context.Context, b *entity.Book) error
}
