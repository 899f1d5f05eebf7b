package repository

import (
	"context"

	"github.com/google/uuid"

	"booklog-backend/internal/domains/semester/model"
)

// SemesterRepository defines data access for semester annotations
type SemesterRepository interface {
	// Upsert inserts or renames the (user, semester_number) annotation
	Upsert(ctx context.Context, semester *model.Semester) error

	GetByUserAndNumber(ctx context.Context, userID uuid.UUID, number int) (*model.Semester, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Semester, error)
	Delete(ctx context.Context, userID uuid.UUID, number int) error
}
