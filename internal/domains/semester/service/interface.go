package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"booklog-backend/internal/domains/semester/model"
)

// ServiceInterface defines semester business logic
type ServiceInterface interface {
	// GetSemester resolves calendar data, the user's annotation and the
	// reading stats for that span
	GetSemester(ctx context.Context, userID uuid.UUID, number int) (*model.SemesterResponse, error)

	// GetSemesterForDate maps a date to its semester
	GetSemesterForDate(ctx context.Context, userID uuid.UUID, date time.Time) (*model.SemesterResponse, error)

	// GetCurrent returns today's semester
	GetCurrent(ctx context.Context, userID uuid.UUID) (*model.CurrentSemesterResponse, error)

	// ListSemesters walks the calendar from the current semester backwards,
	// merging annotations and per-semester reading stats into each entry
	ListSemesters(ctx context.Context, userID uuid.UUID, req *model.ListSemestersRequest) (*model.ListSemestersResponse, error)

	// UpsertAnnotation names or renames one semester
	UpsertAnnotation(ctx context.Context, userID uuid.UUID, req model.UpsertSemesterRequest) (*model.SemesterResponse, error)

	// DeleteAnnotation removes a custom name
	DeleteAnnotation(ctx context.Context, userID uuid.UUID, number int) error
}
