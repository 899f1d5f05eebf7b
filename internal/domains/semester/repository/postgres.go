package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"booklog-backend/internal/domains/semester/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresSemesterRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresSemesterRepository(pool *pgxpool.Pool) SemesterRepository {
	return &postgresSemesterRepository{pool: pool}
}

// Upsert relies on the unique (user_id, semester_number) constraint so
// concurrent renames cannot create duplicate annotations.
func (r *postgresSemesterRepository) Upsert(ctx context.Context, semester *model.Semester) error {
	query := `
		INSERT INTO semesters (id, user_id, semester_number, custom_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, semester_number)
		DO UPDATE SET custom_name = EXCLUDED.custom_name, updated_at = NOW()
	`

	_, err := r.pool.Exec(ctx, query,
		semester.ID,
		semester.UserID,
		semester.SemesterNumber,
		semester.CustomName,
		semester.CreatedAt,
		semester.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert semester: %w", err)
	}

	return nil
}

func (r *postgresSemesterRepository) GetByUserAndNumber(
	ctx context.Context,
	userID uuid.UUID,
	number int,
) (*model.Semester, error) {
	query := `
		SELECT id, user_id, semester_number, custom_name, created_at, updated_at
		FROM semesters
		WHERE user_id = $1 AND semester_number = $2
	`

	semester := &model.Semester{}
	err := r.pool.QueryRow(ctx, query, userID, number).Scan(
		&semester.ID,
		&semester.UserID,
		&semester.SemesterNumber,
		&semester.CustomName,
		&semester.CreatedAt,
		&semester.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSemesterNotFound
		}
		return nil, fmt.Errorf("failed to get semester: %w", err)
	}

	return semester, nil
}

func (r *postgresSemesterRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Semester, error) {
	query := `
		SELECT id, user_id, semester_number, custom_name, created_at, updated_at
		FROM semesters
		WHERE user_id = $1
		ORDER BY semester_number ASC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list semesters: %w", err)
	}
	defer rows.Close()

	var semesters []*model.Semester
	for rows.Next() {
		semester := &model.Semester{}
		err := rows.Scan(
			&semester.ID,
			&semester.UserID,
			&semester.SemesterNumber,
			&semester.CustomName,
			&semester.CreatedAt,
			&semester.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan semester: %w", err)
		}
		semesters = append(semesters, semester)
	}

	return semesters, nil
}

func (r *postgresSemesterRepository) Delete(ctx context.Context, userID uuid.UUID, number int) error {
	query := `DELETE FROM semesters WHERE user_id = $1 AND semester_number = $2`

	result, err := r.pool.Exec(ctx, query, userID, number)
	if err != nil {
		return fmt.Errorf("failed to delete semester: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrSemesterNotFound
	}

	return nil
}
