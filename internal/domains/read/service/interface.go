package service

import (
	"context"

	"github.com/google/uuid"

	"booklog-backend/internal/domains/read/model"
)

// ServiceInterface defines read business logic
type ServiceInterface interface {
	CreateRead(ctx context.Context, userID uuid.UUID, req model.CreateReadRequest) (*model.ReadResponse, error)
	GetRead(ctx context.Context, userID, id uuid.UUID) (*model.ReadResponse, error)
	UpdateRead(ctx context.Context, userID, id uuid.UUID, req model.UpdateReadRequest) (*model.ReadResponse, error)
	DeleteRead(ctx context.Context, userID, id uuid.UUID) error
	ListReads(ctx context.Context, userID uuid.UUID, req *model.ListReadsRequest) (*model.ListReadsResponse, error)
	ListBookReads(ctx context.Context, userID, bookID uuid.UUID) ([]*model.ReadResponse, error)

	// RecalculatePoints recomputes scores for one read, used by the
	// background worker and after book metadata changes.
	RecalculatePoints(ctx context.Context, readID uuid.UUID) error

	// RecalculateMissing backfills scores for finished reads that have
	// none yet, oldest first, up to limit. Returns how many were updated.
	RecalculateMissing(ctx context.Context, limit int) (int, error)
}
