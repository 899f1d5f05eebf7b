package repository

import (
	"context"

	"github.com/google/uuid"

	"booklog-backend/internal/domains/read/model"
)

// ReadRepository defines data access for reading sessions
type ReadRepository interface {
	Create(ctx context.Context, read *model.Read) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Read, error)
	Update(ctx context.Context, read *model.Read) error
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns one page of a user's reads plus the unpaginated total
	List(ctx context.Context, userID uuid.UUID, req *model.ListReadsRequest) ([]*model.Read, int64, error)

	// ListByBook returns every read of one book, oldest first
	ListByBook(ctx context.Context, bookID uuid.UUID) ([]*model.Read, error)

	// ListFinishedByUser returns a user's finished reads joined with their
	// books, ordered by finish date. Input for the statistics snapshot.
	ListFinishedByUser(ctx context.Context, userID uuid.UUID) ([]*model.Read, error)

	// UpdatePoints persists recalculated scores without touching other fields
	UpdatePoints(ctx context.Context, id uuid.UUID, allegory, reasonable *model.Points) error

	// ListIDsNeedingPoints returns reads in READ status whose scores are
	// missing, used by the nightly recalculation job.
	ListIDsNeedingPoints(ctx context.Context, limit int) ([]uuid.UUID, error)
}
