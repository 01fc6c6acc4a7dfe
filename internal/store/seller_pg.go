package store

import (
	"context"
	"errors"

	"booksale/internal/entity"
	"booksale/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres error codes the handlers care about.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type SellerPG struct {
	db *pgxpool.Pool
}

func NewSellerPG(db *pgxpool.Pool) *SellerPG {
	return &SellerPG{db: db}
}

func (r *SellerPG) Create(ctx context.Context, seller *entity.Seller) error {
	const query = `
	INSERT INTO sellers_table (first_name, last_name, e_mail, password)
	VALUES ($1, $2, $3, $4)
	RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		seller.FirstName,
		seller.LastName,
		seller.EMail,
		seller.Password,
	).Scan(&seller.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return usecase.ErrEmailTaken
		}
		return err
	}
	// A fresh seller owns nothing yet; keep the collection non-nil so it
	// serializes as [].
	seller.Books = []entity.Book{}
	return nil
}

const sellerWithBooksSQL = `
	SELECT s.id, s.first_name, s.last_name, s.e_mail,
	       b.id, b.title, b.author, b.year, b.pages, b.seller_id
	FROM sellers_table s
	LEFT JOIN books_table b ON b.seller_id = s.id
`

func (r *SellerPG) List(ctx context.Context) ([]entity.Seller, error) {
	rows, err := r.db.Query(ctx, sellerWithBooksSQL+` ORDER BY s.id, b.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sellers, err := scanSellersWithBooks(rows)
	if err != nil {
		return nil, err
	}
	if sellers == nil {
		sellers = []entity.Seller{}
	}
	return sellers, nil
}

func (r *SellerPG) GetByID(ctx context.Context, id int64) (entity.Seller, error) {
	rows, err := r.db.Query(ctx, sellerWithBooksSQL+` WHERE s.id = $1 ORDER BY b.id`, id)
	if err != nil {
		return entity.Seller{}, err
	}
	defer rows.Close()

	sellers, err := scanSellersWithBooks(rows)
	if err != nil {
		return entity.Seller{}, err
	}
	if len(sellers) == 0 {
		return entity.Seller{}, usecase.ErrNotFound
	}
	return sellers[0], nil
}

func (r *SellerPG) Update(ctx context.Context, id int64, firstName, lastName, eMail string) (entity.Seller, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return entity.Seller{}, err
	}
	defer tx.Rollback(ctx)

	const updateSQL = `
	UPDATE sellers_table
	SET first_name = $1, last_name = $2, e_mail = $3
	WHERE id = $4
	RETURNING id, first_name, last_name, e_mail
	`
	var seller entity.Seller
	err = tx.QueryRow(ctx, updateSQL, firstName, lastName, eMail, id).Scan(
		&seller.ID, &seller.FirstName, &seller.LastName, &seller.EMail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Seller{}, usecase.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return entity.Seller{}, usecase.ErrEmailTaken
		}
		return entity.Seller{}, err
	}

	// Re-read the books inside the same transaction so the response is one
	// consistent snapshot.
	const booksSQL = `
	SELECT id, title, author, year, pages, seller_id
	FROM books_table
	WHERE seller_id = $1
	ORDER BY id
	`
	rows, err := tx.Query(ctx, booksSQL, id)
	if err != nil {
		return entity.Seller{}, err
	}
	seller.Books, err = scanBooks(rows)
	if err != nil {
		return entity.Seller{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return entity.Seller{}, err
	}
	return seller, nil
}

// Delete removes the seller and all owned books in a single transaction. The
// schema also carries ON DELETE CASCADE, but deleting the children explicitly
// keeps the cascade guarantee independent of the constraint definition.
func (r *SellerPG) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM books_table WHERE seller_id = $1`, id); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM sellers_table WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}

	return tx.Commit(ctx)
}

// scanSellersWithBooks folds rows of the seller LEFT JOIN books query into
// sellers with populated book collections. Rows must be ordered by seller id.
func scanSellersWithBooks(rows pgx.Rows) ([]entity.Seller, error) {
	var sellers []entity.Seller
	for rows.Next() {
		var (
			s        entity.Seller
			bookID   *int64
			title    *string
			author   *string
			year     *int
			pages    *int
			sellerID *int64
		)
		if err := rows.Scan(
			&s.ID, &s.FirstName, &s.LastName, &s.EMail,
			&bookID, &title, &author, &year, &pages, &sellerID,
		); err != nil {
			return nil, err
		}

		if len(sellers) == 0 || sellers[len(sellers)-1].ID != s.ID {
			s.Books = []entity.Book{}
			sellers = append(sellers, s)
		}
		if bookID != nil {
			last := &sellers[len(sellers)-1]
			last.Books = append(last.Books, entity.Book{
				ID:       *bookID,
				Title:    *title,
				Author:   *author,
				Year:     *year,
				Pages:    *pages,
				SellerID: *sellerID,
			})
		}
	}
	return sellers, rows.Err()
}

func scanBooks(rows pgx.Rows) ([]entity.Book, error) {
	defer rows.Close()
	books := []entity.Book{}
	for rows.Next() {
		var b entity.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.Pages, &b.SellerID); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}
