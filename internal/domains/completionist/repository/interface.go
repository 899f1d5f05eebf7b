package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"booklog-backend/internal/domains/completionist/model"
)

// CompletionistRepository handles canon, progress and achievement persistence
type CompletionistRepository interface {
	// Canons
	CreateCanon(ctx context.Context, canon *model.AuthorCanon) error
	GetCanonByID(ctx context.Context, id uuid.UUID) (*model.AuthorCanon, error)
	GetCanonByAuthorID(ctx context.Context, authorID uuid.UUID) (*model.AuthorCanon, error)

	// Works
	ListMajorWorks(ctx context.Context, canonID uuid.UUID) ([]*model.AuthorWork, error)

	// Progress
	UpsertProgress(ctx context.Context, progress *model.AuthorProgress) error
	GetProgress(ctx context.Context, userID, canonID uuid.UUID) (*model.AuthorProgress, error)
	ListProgress(ctx context.Context, userID uuid.UUID, req *model.ListProgressRequest) ([]*model.ProgressEntry, int64, error)

	// Goals
	UpdateGoal(ctx context.Context, userID, canonID uuid.UUID, isGoal bool, deadline *time.Time) error

	// Achievements. Award is idempotent: re-awarding an existing
	// (user, canon, type) row is a no-op.
	AwardAchievement(ctx context.Context, achievement *model.Achievement) error
	ListAchievementTypes(ctx context.Context, userID, canonID uuid.UUID) ([]string, error)
	ListAchievementsByUser(ctx context.Context, userID uuid.UUID) ([]*model.AchievementEntry, error)
	Leaderboard(ctx context.Context, limit int) ([]*model.LeaderboardEntry, error)

	// Fallback estimate when a canon has no curated work list
	CountDistinctTitlesByAuthor(ctx context.Context, normalizedAuthor string) (int, error)

	// ListUserIDsWithBooks drives the full nightly sync
	ListUserIDsWithBooks(ctx context.Context) ([]uuid.UUID, error)
}
