package service

import (
	"context"

	"github.com/google/uuid"

	"booklog-backend/internal/domains/completionist/model"
)

// ServiceInterface defines completionist operations
type ServiceInterface interface {
	// EnsureCanon returns the canon for an author, creating an empty
	// manual one when none exists yet
	EnsureCanon(ctx context.Context, authorID uuid.UUID) (*model.AuthorCanon, error)

	// SyncUserProgress recomputes progress rows from the user's read log.
	// With a canon ID it targets one author; with nil it walks every
	// author in the user's library.
	SyncUserProgress(ctx context.Context, userID uuid.UUID, canonID *uuid.UUID) error

	// SyncAllUsers runs SyncUserProgress for every user with books,
	// used by the nightly scheduler
	SyncAllUsers(ctx context.Context) error

	ListProgress(ctx context.Context, userID uuid.UUID, req *model.ListProgressRequest) ([]*model.ProgressEntry, int64, error)
	AuthorDetail(ctx context.Context, userID, canonID uuid.UUID) (*model.AuthorDetailResponse, error)

	// SetGoal flags an author canon as a reading goal with an optional
	// deadline; the progress row must already exist
	SetGoal(ctx context.Context, userID uuid.UUID, req model.SetGoalRequest) (*model.AuthorProgress, error)

	ListAchievements(ctx context.Context, userID uuid.UUID) ([]*model.AchievementEntry, error)
	Leaderboard(ctx context.Context, limit int) ([]*model.LeaderboardEntry, error)
}
