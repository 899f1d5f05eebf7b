package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"booklog-backend/internal/domains/author/model"
	"booklog-backend/internal/domains/author/repository"
	"booklog-backend/internal/shared/utils"
	"booklog-backend/pkg/logger"
)

type authorService struct {
	authorRepo repository.AuthorRepository
}

func NewAuthorService(authorRepo repository.AuthorRepository) ServiceInterface {
	return &authorService{authorRepo: authorRepo}
}

// FindOrCreate resolves a free-text author name to the shared author row.
// Lookup order: normalized name, then exact case-insensitive name, then a
// fresh row. Concurrent creators can race; the unique index on name makes
// the second insert fail, so we retry the lookup once on insert failure.
func (s *authorService) FindOrCreate(ctx context.Context, name string) (*model.Author, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, model.NewEmptyAuthorNameError()
	}

	normalized := utils.NormalizeAuthorName(trimmed)

	// Step 1: find by normalized name
	author, err := s.authorRepo.GetByNormalizedName(ctx, normalized)
	if err == nil {
		return author, nil
	}
	if !errors.Is(err, model.ErrAuthorNotFound) {
		return nil, err
	}

	// Step 2: find by exact name (case-insensitive)
	author, err = s.authorRepo.GetByExactName(ctx, trimmed)
	if err == nil {
		return author, nil
	}
	if !errors.Is(err, model.ErrAuthorNotFound) {
		return nil, err
	}

	// Step 3: create new author
	author = &model.Author{
		ID:             uuid.New(),
		Name:           trimmed,
		NormalizedName: normalized,
		CreatedAt:      time.Now(),
	}
	if err := s.authorRepo.Create(ctx, author); err != nil {
		// Lost a create race; the row exists now
		if existing, lookupErr := s.authorRepo.GetByNormalizedName(ctx, normalized); lookupErr == nil {
			return existing, nil
		}
		logger.Error("failed to create author", err)
		return nil, err
	}

	return author, nil
}

func (s *authorService) GetAuthor(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	author, err := s.authorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrAuthorNotFound) {
			return nil, model.NewAuthorNotFoundError()
		}
		return nil, err
	}
	return author, nil
}

func (s *authorService) ListAuthors(ctx context.Context, page, limit int) ([]*model.Author, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.authorRepo.List(ctx, limit, (page-1)*limit)
}
