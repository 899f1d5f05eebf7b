package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"booklog-backend/internal/domains/completionist/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresCompletionistRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresCompletionistRepository(pool *pgxpool.Pool) CompletionistRepository {
	return &postgresCompletionistRepository{pool: pool}
}

// ===== CANONS =====

const canonColumns = `
	id, author_id, total_works_count,
	bibliography_source, bibliography_last_updated, is_living,
	created_at, updated_at
`

func scanCanon(row pgx.Row) (*model.AuthorCanon, error) {
	canon := &model.AuthorCanon{}
	err := row.Scan(
		&canon.ID,
		&canon.AuthorID,
		&canon.TotalWorksCount,
		&canon.BibliographySource,
		&canon.BibliographyUpdated,
		&canon.IsLiving,
		&canon.CreatedAt,
		&canon.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return canon, nil
}

func (r *postgresCompletionistRepository) CreateCanon(ctx context.Context, canon *model.AuthorCanon) error {
	query := `
		INSERT INTO author_canons (
			id, author_id, total_works_count,
			bibliography_source, is_living, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		canon.ID,
		canon.AuthorID,
		canon.TotalWorksCount,
		canon.BibliographySource,
		canon.IsLiving,
		canon.CreatedAt,
	)
	return err
}

func (r *postgresCompletionistRepository) GetCanonByID(ctx context.Context, id uuid.UUID) (*model.AuthorCanon, error) {
	query := `SELECT ` + canonColumns + ` FROM author_canons WHERE id = $1`

	canon, err := scanCanon(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCanonNotFound
		}
		return nil, err
	}
	return canon, nil
}

func (r *postgresCompletionistRepository) GetCanonByAuthorID(ctx context.Context, authorID uuid.UUID) (*model.AuthorCanon, error) {
	query := `SELECT ` + canonColumns + ` FROM author_canons WHERE author_id = $1 LIMIT 1`

	canon, err := scanCanon(r.pool.QueryRow(ctx, query, authorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCanonNotFound
		}
		return nil, err
	}
	return canon, nil
}

// ===== WORKS =====

func (r *postgresCompletionistRepository) ListMajorWorks(ctx context.Context, canonID uuid.UUID) ([]*model.AuthorWork, error) {
	query := `
		SELECT id, author_canon_id, title, publication_year, work_type,
		       page_count, isbn_10, isbn_13, is_major_work, created_at
		FROM author_works
		WHERE author_canon_id = $1 AND is_major_work = true
		ORDER BY publication_year ASC NULLS LAST, title ASC
	`
	rows, err := r.pool.Query(ctx, query, canonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	works := make([]*model.AuthorWork, 0)
	for rows.Next() {
		work := &model.AuthorWork{}
		err := rows.Scan(
			&work.ID,
			&work.AuthorCanonID,
			&work.Title,
			&work.PublicationYear,
			&work.WorkType,
			&work.PageCount,
			&work.ISBN10,
			&work.ISBN13,
			&work.IsMajorWork,
			&work.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		works = append(works, work)
	}
	return works, rows.Err()
}

// ===== PROGRESS =====

func (r *postgresCompletionistRepository) UpsertProgress(ctx context.Context, progress *model.AuthorProgress) error {
	query := `
		INSERT INTO user_author_progress (
			id, user_id, author_canon_id,
			books_read_count, books_total_count, completion_percentage,
			first_book_read_id, first_read_date,
			most_recent_book_read_id, most_recent_read_date,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id, author_canon_id) DO UPDATE SET
			books_read_count = EXCLUDED.books_read_count,
			books_total_count = EXCLUDED.books_total_count,
			completion_percentage = EXCLUDED.completion_percentage,
			first_book_read_id = COALESCE(EXCLUDED.first_book_read_id, user_author_progress.first_book_read_id),
			first_read_date = COALESCE(EXCLUDED.first_read_date, user_author_progress.first_read_date),
			most_recent_book_read_id = COALESCE(EXCLUDED.most_recent_book_read_id, user_author_progress.most_recent_book_read_id),
			most_recent_read_date = COALESCE(EXCLUDED.most_recent_read_date, user_author_progress.most_recent_read_date),
			updated_at = NOW()
	`
	_, err := r.pool.Exec(ctx, query,
		progress.ID,
		progress.UserID,
		progress.AuthorCanonID,
		progress.BooksReadCount,
		progress.BooksTotalCount,
		progress.CompletionPercentage,
		progress.FirstBookReadID,
		progress.FirstReadDate,
		progress.MostRecentBookReadID,
		progress.MostRecentReadDate,
		progress.CreatedAt,
	)
	return err
}

func (r *postgresCompletionistRepository) GetProgress(ctx context.Context, userID, canonID uuid.UUID) (*model.AuthorProgress, error) {
	query := `
		SELECT id, user_id, author_canon_id,
		       books_read_count, books_total_count, completion_percentage,
		       first_book_read_id, first_read_date,
		       most_recent_book_read_id, most_recent_read_date,
		       is_goal, goal_deadline, created_at, updated_at
		FROM user_author_progress
		WHERE user_id = $1 AND author_canon_id = $2
	`
	progress := &model.AuthorProgress{}
	err := r.pool.QueryRow(ctx, query, userID, canonID).Scan(
		&progress.ID,
		&progress.UserID,
		&progress.AuthorCanonID,
		&progress.BooksReadCount,
		&progress.BooksTotalCount,
		&progress.CompletionPercentage,
		&progress.FirstBookReadID,
		&progress.FirstReadDate,
		&progress.MostRecentBookReadID,
		&progress.MostRecentReadDate,
		&progress.IsGoal,
		&progress.GoalDeadline,
		&progress.CreatedAt,
		&progress.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProgressNotFound
		}
		return nil, err
	}
	return progress, nil
}

func (r *postgresCompletionistRepository) ListProgress(ctx context.Context, userID uuid.UUID, req *model.ListProgressRequest) ([]*model.ProgressEntry, int64, error) {
	where := ` WHERE p.user_id = $1`
	args := []interface{}{userID}

	if req.MinCompletion != nil {
		args = append(args, *req.MinCompletion*100)
		where += ` AND p.completion_percentage >= $2`
	}
	if req.Sort == model.SortAlmostThere {
		where += ` AND p.completion_percentage >= 80`
	}

	base := `
		FROM user_author_progress p
		JOIN author_canons c ON c.id = p.author_canon_id
		JOIN authors a ON a.id = c.author_id
	` + where

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*)`+base, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	var orderBy string
	switch req.Sort {
	case model.SortCompletionPct, model.SortAlmostThere:
		orderBy = `p.completion_percentage DESC`
	case model.SortRecent:
		orderBy = `p.most_recent_read_date DESC NULLS LAST`
	case model.SortAlphabetical:
		orderBy = `a.name ASC`
	default:
		orderBy = `p.books_read_count DESC`
	}

	query := `
		SELECT p.author_canon_id, a.name, a.photo_url,
		       p.books_read_count, p.books_total_count, p.completion_percentage,
		       p.first_read_date, p.most_recent_read_date
	` + base + ` ORDER BY ` + orderBy + `, a.name ASC` +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)

	args = append(args, req.Limit, (req.Page-1)*req.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	entries := make([]*model.ProgressEntry, 0)
	for rows.Next() {
		entry := &model.ProgressEntry{}
		err := rows.Scan(
			&entry.AuthorCanonID,
			&entry.AuthorName,
			&entry.AuthorPhotoURL,
			&entry.BooksRead,
			&entry.BooksTotal,
			&entry.CompletionPercentage,
			&entry.FirstReadDate,
			&entry.MostRecentReadDate,
		)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, entry)
	}
	return entries, total, rows.Err()
}

// ===== GOALS =====

func (r *postgresCompletionistRepository) UpdateGoal(ctx context.Context, userID, canonID uuid.UUID, isGoal bool, deadline *time.Time) error {
	query := `
		UPDATE user_author_progress
		SET is_goal = $3, goal_deadline = $4, updated_at = NOW()
		WHERE user_id = $1 AND author_canon_id = $2
	`
	tag, err := r.pool.Exec(ctx, query, userID, canonID, isGoal, deadline)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProgressNotFound
	}
	return nil
}

// ===== ACHIEVEMENTS =====

func (r *postgresCompletionistRepository) AwardAchievement(ctx context.Context, achievement *model.Achievement) error {
	query := `
		INSERT INTO completion_achievements (
			id, user_id, achievement_type, author_canon_id, achievement_metadata, awarded_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, author_canon_id, achievement_type) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query,
		achievement.ID,
		achievement.UserID,
		achievement.AchievementType,
		achievement.AuthorCanonID,
		achievement.Metadata,
		achievement.AwardedAt,
	)
	return err
}

func (r *postgresCompletionistRepository) ListAchievementTypes(ctx context.Context, userID, canonID uuid.UUID) ([]string, error) {
	query := `
		SELECT achievement_type FROM completion_achievements
		WHERE user_id = $1 AND author_canon_id = $2
		ORDER BY awarded_at ASC
	`
	rows, err := r.pool.Query(ctx, query, userID, canonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]string, 0)
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *postgresCompletionistRepository) ListAchievementsByUser(ctx context.Context, userID uuid.UUID) ([]*model.AchievementEntry, error) {
	query := `
		SELECT ca.achievement_type, ca.author_canon_id, a.name, ca.awarded_at
		FROM completion_achievements ca
		LEFT JOIN author_canons c ON c.id = ca.author_canon_id
		LEFT JOIN authors a ON a.id = c.author_id
		WHERE ca.user_id = $1
		ORDER BY ca.awarded_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*model.AchievementEntry, 0)
	for rows.Next() {
		entry := &model.AchievementEntry{}
		err := rows.Scan(
			&entry.AchievementType,
			&entry.AuthorCanonID,
			&entry.AuthorName,
			&entry.AwardedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *postgresCompletionistRepository) Leaderboard(ctx context.Context, limit int) ([]*model.LeaderboardEntry, error) {
	query := `
		SELECT u.id,
		       COALESCE(u.display_name, u.username),
		       COUNT(*) FILTER (WHERE ca.achievement_type = $1) AS canons_completed,
		       COUNT(*) AS total_achievements
		FROM completion_achievements ca
		JOIN users u ON u.id = ca.user_id
		GROUP BY u.id, u.display_name, u.username
		ORDER BY canons_completed DESC, total_achievements DESC, u.username ASC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, model.AchievementCanonComplete, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*model.LeaderboardEntry, 0)
	for rows.Next() {
		entry := &model.LeaderboardEntry{}
		err := rows.Scan(
			&entry.UserID,
			&entry.DisplayName,
			&entry.CanonsCompleted,
			&entry.TotalAchievements,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// ===== FALLBACK COUNTS =====

func (r *postgresCompletionistRepository) CountDistinctTitlesByAuthor(ctx context.Context, normalizedAuthor string) (int, error) {
	query := `SELECT COUNT(DISTINCT LOWER(title)) FROM books WHERE normalized_author = $1`

	var count int
	if err := r.pool.QueryRow(ctx, query, normalizedAuthor).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postgresCompletionistRepository) ListUserIDsWithBooks(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT user_id FROM books`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
