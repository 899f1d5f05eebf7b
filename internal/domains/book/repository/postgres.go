package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"booklog-backend/internal/domains/book/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresBookRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresBookRepository(pool *pgxpool.Pool) BookRepository {
	return &postgresBookRepository{pool: pool}
}

const bookColumns = `
	id, user_id, title, author,
	isbn_10, isbn_13, publication_date, page_count,
	language, cover_image_url, description, genres,
	book_type, series, series_number, format,
	normalized_author, created_at, updated_at
`

func scanBook(row pgx.Row) (*model.Book, error) {
	book := &model.Book{}
	var genres []string

	err := row.Scan(
		&book.ID,
		&book.UserID,
		&book.Title,
		&book.Author,
		&book.ISBN10,
		&book.ISBN13,
		&book.PublicationDate,
		&book.PageCount,
		&book.Language,
		&book.CoverImageURL,
		&book.Description,
		pq.Array(&genres),
		&book.BookType,
		&book.Series,
		&book.SeriesNum,
		&book.Format,
		&book.NormalizedAuthor,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	book.Genres = genres
	return book, nil
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresBookRepository) Create(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (
			id, user_id, title, author,
			isbn_10, isbn_13, publication_date, page_count,
			language, cover_image_url, description, genres,
			book_type, series, series_number, format,
			normalized_author, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err := r.pool.Exec(ctx, query,
		book.ID,
		book.UserID,
		book.Title,
		book.Author,
		book.ISBN10,
		book.ISBN13,
		book.PublicationDate,
		book.PageCount,
		book.Language,
		book.CoverImageURL,
		book.Description,
		pq.Array(book.Genres),
		book.BookType,
		book.Series,
		book.SeriesNum,
		book.Format,
		book.NormalizedAuthor,
		book.CreatedAt,
		book.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}

	return nil
}

// =====================================================
// GET BY ID
// =====================================================

func (r *postgresBookRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	book, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	return book, nil
}

// =====================================================
// UPDATE
// =====================================================

func (r *postgresBookRepository) Update(ctx context.Context, book *model.Book) error {
	query := `
		UPDATE books
		SET
			title = $2,
			author = $3,
			isbn_10 = $4,
			isbn_13 = $5,
			publication_date = $6,
			page_count = $7,
			language = $8,
			cover_image_url = $9,
			description = $10,
			genres = $11,
			book_type = $12,
			series = $13,
			series_number = $14,
			format = $15,
			normalized_author = $16,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.ISBN10,
		book.ISBN13,
		book.PublicationDate,
		book.PageCount,
		book.Language,
		book.CoverImageURL,
		book.Description,
		pq.Array(book.Genres),
		book.BookType,
		book.Series,
		book.SeriesNum,
		book.Format,
		book.NormalizedAuthor,
	)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	return nil
}

// =====================================================
// DELETE
// =====================================================

func (r *postgresBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM books WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	return nil
}

// =====================================================
// LIST
// =====================================================

func (r *postgresBookRepository) List(
	ctx context.Context,
	userID uuid.UUID,
	req *model.ListBooksRequest,
) ([]*model.Book, int64, error) {
	// Build dynamic query
	where := ` WHERE user_id = $1`
	args := []interface{}{userID}
	argCount := 2

	if req.Search != "" {
		where += fmt.Sprintf(" AND (title ILIKE $%d OR author ILIKE $%d)", argCount, argCount)
		args = append(args, "%"+req.Search+"%")
		argCount++
	}

	if req.BookType != "" {
		if bt, ok := model.ParseBookType(req.BookType); ok {
			where += fmt.Sprintf(" AND book_type = $%d", argCount)
			args = append(args, bt)
			argCount++
		}
	}

	if req.Format != "" {
		if f, ok := model.ParseFormat(req.Format); ok {
			where += fmt.Sprintf(" AND format = $%d", argCount)
			args = append(args, f)
			argCount++
		}
	}

	orderBy := " ORDER BY created_at DESC"
	switch req.Sort {
	case "title":
		orderBy = " ORDER BY title ASC"
	case "author":
		orderBy = " ORDER BY author ASC, title ASC"
	}

	query := `SELECT ` + bookColumns + ` FROM books` + where + orderBy +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1)
	queryArgs := append(append([]interface{}{}, args...), req.Limit, (req.Page-1)*req.Limit)

	rows, err := r.pool.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	var books []*model.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, book)
	}

	// Count total with same filters
	var total int64
	countQuery := `SELECT COUNT(*) FROM books` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	return books, total, nil
}

// =====================================================
// LIST BY USER
// =====================================================

func (r *postgresBookRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE user_id = $1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	var books []*model.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, book)
	}

	return books, nil
}

// =====================================================
// LIST BY NORMALIZED AUTHOR
// =====================================================

func (r *postgresBookRepository) ListByAuthorNormalized(
	ctx context.Context,
	userID uuid.UUID,
	normalizedAuthor string,
) ([]*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books
		WHERE user_id = $1 AND normalized_author = $2
		ORDER BY publication_date ASC NULLS LAST, title ASC`

	rows, err := r.pool.Query(ctx, query, userID, normalizedAuthor)
	if err != nil {
		return nil, fmt.Errorf("failed to list books by author: %w", err)
	}
	defer rows.Close()

	var books []*model.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, book)
	}

	return books, nil
}
