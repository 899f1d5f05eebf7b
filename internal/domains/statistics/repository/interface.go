package repository

import (
	"context"

	"github.com/google/uuid"

	readModel "booklog-backend/internal/domains/read/model"
	"booklog-backend/internal/domains/statistics/model"
)

// StatisticsRepository provides the read snapshots that feed analytics.
// Community queries span every user, per-user snapshots come from the
// read repository.
type StatisticsRepository interface {
	// ListAllFinishedReads returns every finished read across all users,
	// joined with book metadata.
	ListAllFinishedReads(ctx context.Context) ([]*readModel.Read, error)

	// ListAllRatedReads returns every completed read carrying a rating
	ListAllRatedReads(ctx context.Context) ([]*readModel.Read, error)

	// ListCommentedReadIDs returns which of the given reads have at least
	// one live comment.
	ListCommentedReadIDs(ctx context.Context, readIDs []uuid.UUID) (map[uuid.UUID]struct{}, error)

	// GetUserInfos resolves display info for a set of users
	GetUserInfos(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]model.UserInfo, error)
}
