package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	bookModel "booklog-backend/internal/domains/book/model"
	readModel "booklog-backend/internal/domains/read/model"
	"booklog-backend/internal/domains/statistics/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresStatisticsRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresStatisticsRepository(pool *pgxpool.Pool) StatisticsRepository {
	return &postgresStatisticsRepository{pool: pool}
}

const snapshotQuery = `
	SELECT
		r.id, r.book_id, r.user_id,
		r.date_started, r.date_finished, r.status, r.is_reread,
		r.rating, r.review,
		r.points_allegory, r.points_reasonable,
		b.title, b.author, b.genres, b.book_type, b.format, b.page_count
	FROM reads r
	INNER JOIN books b ON b.id = r.book_id
`

func (r *postgresStatisticsRepository) ListAllFinishedReads(ctx context.Context) ([]*readModel.Read, error) {
	query := snapshotQuery + `
		WHERE r.status = 'READ' AND r.date_finished IS NOT NULL
		ORDER BY r.date_finished ASC`

	return r.querySnapshot(ctx, query)
}

func (r *postgresStatisticsRepository) ListAllRatedReads(ctx context.Context) ([]*readModel.Read, error) {
	query := snapshotQuery + `
		WHERE r.status = 'READ' AND r.rating IS NOT NULL
		ORDER BY r.created_at ASC`

	return r.querySnapshot(ctx, query)
}

func (r *postgresStatisticsRepository) querySnapshot(ctx context.Context, query string) ([]*readModel.Read, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query read snapshot: %w", err)
	}
	defer rows.Close()

	var reads []*readModel.Read
	for rows.Next() {
		read, err := scanSnapshotRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		reads = append(reads, read)
	}

	return reads, nil
}

func scanSnapshotRow(row pgx.Row) (*readModel.Read, error) {
	read := &readModel.Read{}
	book := &bookModel.Book{}
	var rating decimal.NullDecimal
	var allegory, reasonable *int
	var genres []string

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
		&allegory,
		&reasonable,
		&book.Title,
		&book.Author,
		pq.Array(&genres),
		&book.BookType,
		&book.Format,
		&book.PageCount,
	)
	if err != nil {
		return nil, err
	}

	if rating.Valid {
		read.Rating = &rating.Decimal
	}
	if allegory != nil {
		p := readModel.Points(*allegory)
		read.PointsAllegory = &p
	}
	if reasonable != nil {
		p := readModel.Points(*reasonable)
		read.PointsReasonable = &p
	}
	book.ID = read.BookID
	book.UserID = read.UserID
	book.Genres = genres
	read.Book = book

	return read, nil
}

func (r *postgresStatisticsRepository) ListCommentedReadIDs(
	ctx context.Context,
	readIDs []uuid.UUID,
) (map[uuid.UUID]struct{}, error) {
	if len(readIDs) == 0 {
		return map[uuid.UUID]struct{}{}, nil
	}

	query := `
		SELECT DISTINCT read_id FROM comments
		WHERE read_id = ANY($1) AND is_deleted = false
	`

	rows, err := r.pool.Query(ctx, query, readIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query commented reads: %w", err)
	}
	defer rows.Close()

	commented := make(map[uuid.UUID]struct{})
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan commented read id: %w", err)
		}
		commented[id] = struct{}{}
	}

	return commented, nil
}

func (r *postgresStatisticsRepository) GetUserInfos(
	ctx context.Context,
	userIDs []uuid.UUID,
) (map[uuid.UUID]model.UserInfo, error) {
	infos := make(map[uuid.UUID]model.UserInfo, len(userIDs))
	if len(userIDs) == 0 {
		return infos, nil
	}

	query := `
		SELECT id, username, COALESCE(display_name, username), profile_photo_url
		FROM users
		WHERE id = ANY($1)
	`

	rows, err := r.pool.Query(ctx, query, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query user infos: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var info model.UserInfo
		if err := rows.Scan(&info.UserID, &info.Username, &info.DisplayName, &info.ProfilePhotoURL); err != nil {
			return nil, fmt.Errorf("failed to scan user info: %w", err)
		}
		infos[info.UserID] = info
	}

	return infos, nil
}
