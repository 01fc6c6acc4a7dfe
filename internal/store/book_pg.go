package store

import (
	"context"
	"errors"

	"booksale/internal/entity"
	"booksale/internal/usecase"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookPG struct {
	db *pgxpool.Pool
}

func NewBookPG(db *pgxpool.Pool) *BookPG {
	return &BookPG{db: db}
}

func (r *BookPG) Create(ctx context.Context, book *entity.Book) error {
	const query = `
	INSERT INTO books_table (title, author, year, pages, seller_id)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		book.Title,
		book.Author,
		book.Year,
		book.Pages,
		book.SellerID,
	).Scan(&book.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return usecase.ErrSellerNotFound
		}
		return err
	}
	return nil
}
