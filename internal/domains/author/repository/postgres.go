package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"booklog-backend/internal/domains/author/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresAuthorRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresAuthorRepository(pool *pgxpool.Pool) AuthorRepository {
	return &postgresAuthorRepository{pool: pool}
}

const authorColumns = `
	id, name, normalized_name,
	birth_year, death_year, nationality, photo_url, biography,
	created_at, updated_at
`

func scanAuthor(row pgx.Row) (*model.Author, error) {
	author := &model.Author{}
	err := row.Scan(
		&author.ID,
		&author.Name,
		&author.NormalizedName,
		&author.BirthYear,
		&author.DeathYear,
		&author.Nationality,
		&author.PhotoURL,
		&author.Biography,
		&author.CreatedAt,
		&author.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return author, nil
}

func (r *postgresAuthorRepository) Create(ctx context.Context, author *model.Author) error {
	query := `
		INSERT INTO authors (
			id, name, normalized_name,
			birth_year, death_year, nationality, photo_url, biography,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		author.ID,
		author.Name,
		author.NormalizedName,
		author.BirthYear,
		author.DeathYear,
		author.Nationality,
		author.PhotoURL,
		author.Biography,
		author.CreatedAt,
	)
	return err
}

func (r *postgresAuthorRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`

	author, err := scanAuthor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, err
	}
	return author, nil
}

func (r *postgresAuthorRepository) GetByNormalizedName(ctx context.Context, normalizedName string) (*model.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE normalized_name = $1 LIMIT 1`

	author, err := scanAuthor(r.pool.QueryRow(ctx, query, normalizedName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, err
	}
	return author, nil
}

func (r *postgresAuthorRepository) GetByExactName(ctx context.Context, name string) (*model.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE name ILIKE $1 LIMIT 1`

	author, err := scanAuthor(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, err
	}
	return author, nil
}

func (r *postgresAuthorRepository) Update(ctx context.Context, author *model.Author) error {
	query := `
		UPDATE authors SET
			name = $2,
			normalized_name = $3,
			birth_year = $4,
			death_year = $5,
			nationality = $6,
			photo_url = $7,
			biography = $8,
			updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		author.ID,
		author.Name,
		author.NormalizedName,
		author.BirthYear,
		author.DeathYear,
		author.Nationality,
		author.PhotoURL,
		author.Biography,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}
	return nil
}

func (r *postgresAuthorRepository) List(ctx context.Context, limit, offset int) ([]*model.Author, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM authors`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + authorColumns + ` FROM authors ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	authors := make([]*model.Author, 0)
	for rows.Next() {
		author, err := scanAuthor(rows)
		if err != nil {
			return nil, 0, err
		}
		authors = append(authors, author)
	}
	return authors, total, rows.Err()
}
