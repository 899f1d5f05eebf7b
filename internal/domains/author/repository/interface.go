package repository

import (
	"context"

	"github.com/google/uuid"

	"booklog-backend/internal/domains/author/model"
)

// AuthorRepository handles author persistence
type AuthorRepository interface {
	Create(ctx context.Context, author *model.Author) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	GetByNormalizedName(ctx context.Context, normalizedName string) (*model.Author, error)
	GetByExactName(ctx context.Context, name string) (*model.Author, error)
	Update(ctx context.Context, author *model.Author) error
	List(ctx context.Context, limit, offset int) ([]*model.Author, int64, error)
}
