package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	bookModel "booklog-backend/internal/domains/book/model"
	"booklog-backend/internal/domains/read/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresReadRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresReadRepository(pool *pgxpool.Pool) ReadRepository {
	return &postgresReadRepository{pool: pool}
}

const readColumns = `
	id, book_id, user_id,
	date_started, date_finished, status, is_reread,
	rating, review,
	base_points, points_overridden, points_allegory, points_reasonable,
	created_at, updated_at
`

// scanRead reads one row into a Read, converting nullable numeric columns
func scanRead(row pgx.Row) (*model.Read, error) {
	read := &model.Read{}
	var rating decimal.NullDecimal
	var basePoints, allegory, reasonable *int

	err := row.Scan(
		&read.ID,
		&read.BookID,
		&read.UserID,
		&read.DateStarted,
		&read.DateFinished,
		&read.Status,
		&read.IsReread,
		&rating,
		&read.Review,
		&basePoints,
		&read.PointsOverridden,
		&allegory,
		&reasonable,
		&read.CreatedAt,
		&read.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if rating.Valid {
		read.Rating = &rating.Decimal
	}
	read.BasePoints = toPoints(basePoints)
	read.PointsAllegory = toPoints(allegory)
	read.PointsReasonable = toPoints(reasonable)

	return read, nil
}

func toPoints(v *int) *model.Points {
	if v == nil {
		return nil
	}
	p := model.Points(*v)
	return &p
}

func fromPoints(p *model.Points) *int {
	if p == nil {
		return nil
	}
	v := int(*p)
	return &v
}

func fromRating(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresReadRepository) Create(ctx context.Context, read *model.Read) error {
	query := `
		INSERT INTO reads (
			id, book_id, user_id,
			date_started, date_finished, status, is_reread,
			rating, review,
			base_points, points_overridden, points_allegory, points_reasonable,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.pool.Exec(ctx, query,
		read.ID,
		read.BookID,
		read.UserID,
		read.DateStarted,
		read.DateFinished,
		read.Status,
		read.IsReread,
		fromRating(read.Rating),
		read.Review,
		fromPoints(read.BasePoints),
		read.PointsOverridden,
		fromPoints(read.PointsAllegory),
		fromPoints(read.PointsReasonable),
		read.CreatedAt,
		read.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create read: %w", err)
	}

	return nil
}

// =====================================================
// GET BY ID
// =====================================================

func (r *postgresReadRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Read, error) {
	query := `SELECT ` + readColumns + ` FROM reads WHERE id = $1`

	read, err := scanRead(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReadNotFound
		}
		return nil, fmt.Errorf("failed to get read: %w", err)
	}

	return read, nil
}

// =====================================================
// UPDATE
// =====================================================

func (r *postgresReadRepository) Update(ctx context.Context, read *model.Read) error {
	query := `
		UPDATE reads
		SET
			date_started = $2,
			date_finished = $3,
			status = $4,
			is_reread = $5,
			rating = $6,
			review = $7,
			base_points = $8,
			points_overridden = $9,
			points_allegory = $10,
			points_reasonable = $11,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		read.ID,
		read.DateStarted,
		read.DateFinished,
		read.Status,
		read.IsReread,
		fromRating(read.Rating),
		read.Review,
		fromPoints(read.BasePoints),
		read.PointsOverridden,
		fromPoints(read.PointsAllegory),
		fromPoints(read.PointsReasonable),
	)
	if err != nil {
		return fmt.Errorf("failed to update read: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrReadNotFound
	}

	return nil
}

// =====================================================
// DELETE
// =====================================================

func (r *postgresReadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reads WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete read: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrReadNotFound
	}

	return nil
}

// =====================================================
// LIST
// =====================================================

func (r *postgresReadRepository) List(
	ctx context.Context,
	userID uuid.UUID,
	req *model.ListReadsRequest,
) ([]*model.Read, int64, error) {
	// Build dynamic query
	where := ` WHERE user_id = $1`
	args := []interface{}{userID}
	argCount := 2

	if req.Status != "" {
		if status, ok := model.ParseReadStatus(req.Status); ok {
			where += fmt.Sprintf(" AND status = $%d", argCount)
			args = append(args, status)
			argCount++
		}
	}

	if req.BookID != "" {
		if bookID, err := uuid.Parse(req.BookID); err == nil {
			where += fmt.Sprintf(" AND book_id = $%d", argCount)
			args = append(args, bookID)
			argCount++
		}
	}

	if req.Year > 0 {
		where += fmt.Sprintf(" AND EXTRACT(YEAR FROM date_finished) = $%d", argCount)
		args = append(args, req.Year)
		argCount++
	}

	if req.IsReread != nil {
		where += fmt.Sprintf(" AND is_reread = $%d", argCount)
		args = append(args, *req.IsReread)
		argCount++
	}

	query := `SELECT ` + readColumns + ` FROM reads` + where +
		" ORDER BY date_finished DESC NULLS LAST, created_at DESC" +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1)
	queryArgs := append(append([]interface{}{}, args...), req.Limit, (req.Page-1)*req.Limit)

	rows, err := r.pool.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reads: %w", err)
	}
	defer rows.Close()

	var reads []*model.Read
	for rows.Next() {
		read, err := scanRead(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan read: %w", err)
		}
		reads = append(reads, read)
	}

	// Count total with same filters
	var total int64
	countQuery := `SELECT COUNT(*) FROM reads` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reads: %w", err)
	}

	return reads, total, nil
}

// =====================================================
// LIST BY BOOK
// =====================================================

func (r *postgresReadRepository) ListByBook(ctx context.Context, bookID uuid.UUID) ([]*model.Read, error) {
	query := `SELECT ` + readColumns + ` FROM reads
		WHERE book_id = $1
		ORDER BY date_started ASC NULLS LAST, created_at ASC`

	rows, err := r.pool.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reads by book: %w", err)
	}
	defer rows.Close()

	var reads []*model.Read
	for rows.Next() {
		read, err := scanRead(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan read: %w", err)
		}
		reads = append(reads, read)
	}

	return reads, nil
}

// =====================================================
// FINISHED READS SNAPSHOT
// =====================================================

func (r *postgresReadRepository) ListFinishedByUser(ctx context.Context, userID uuid.UUID) ([]*model.Read, error) {
	query := `
		SELECT
			r.id, r.book_id, r.user_id,
			r.date_started, r.date_finished, r.status, r.is_reread,
			r.rating, r.review,
			r.base_points, r.points_overridden, r.points_allegory, r.points_reasonable,
			r.created_at, r.updated_at,
			b.id, b.user_id, b.title, b.author,
			b.isbn_10, b.isbn_13, b.publication_date, b.page_count,
			b.language, b.genres, b.book_type, b.series, b.series_number, b.format
		FROM reads r
		INNER JOIN books b ON b.id = r.book_id
		WHERE r.user_id = $1
			AND r.status = 'READ'
			AND r.date_finished IS NOT NULL
		ORDER BY r.date_finished ASC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list finished reads: %w", err)
	}
	defer rows.Close()

	var reads []*model.Read
	for rows.Next() {
		read := &model.Read{}
		book := &bookModel.Book{}
		var rating decimal.NullDecimal
		var basePoints, allegory, reasonable *int
		var genres []string

		err := rows.Scan(
			&read.ID,
			&read.BookID,
			&read.UserID,
			&read.DateStarted,
			&read.DateFinished,
			&read.Status,
			&read.IsReread,
			&rating,
			&read.Review,
			&basePoints,
			&read.PointsOverridden,
			&allegory,
			&reasonable,
			&read.CreatedAt,
			&read.UpdatedAt,
			&book.ID,
			&book.UserID,
			&book.Title,
			&book.Author,
			&book.ISBN10,
			&book.ISBN13,
			&book.PublicationDate,
			&book.PageCount,
			&book.Language,
			pq.Array(&genres),
			&book.BookType,
			&book.Series,
			&book.SeriesNum,
			&book.Format,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan finished read: %w", err)
		}

		if rating.Valid {
			read.Rating = &rating.Decimal
		}
		read.BasePoints = toPoints(basePoints)
		read.PointsAllegory = toPoints(allegory)
		read.PointsReasonable = toPoints(reasonable)
		book.Genres = genres
		read.Book = book

		reads = append(reads, read)
	}

	return reads, nil
}

// =====================================================
// POINTS MAINTENANCE
// =====================================================

func (r *postgresReadRepository) UpdatePoints(
	ctx context.Context,
	id uuid.UUID,
	allegory, reasonable *model.Points,
) error {
	query := `
		UPDATE reads
		SET points_allegory = $2, points_reasonable = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id, fromPoints(allegory), fromPoints(reasonable))
	if err != nil {
		return fmt.Errorf("failed to update points: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrReadNotFound
	}

	return nil
}

func (r *postgresReadRepository) ListIDsNeedingPoints(ctx context.Context, limit int) ([]uuid.UUID, error) {
	query := `
		SELECT id FROM reads
		WHERE status = 'READ'
			AND (points_allegory IS NULL OR points_reasonable IS NULL)
		ORDER BY updated_at ASC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reads needing points: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan read id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
