package service

import (
	"context"

	"github.com/google/uuid"

	"booklog-backend/internal/domains/author/model"
)

// ServiceInterface defines author operations
type ServiceInterface interface {
	FindOrCreate(ctx context.Context, name string) (*model.Author, error)
	GetAuthor(ctx context.Context, id uuid.UUID) (*model.Author, error)
	ListAuthors(ctx context.Context, page, limit int) ([]*model.Author, int64, error)
}
