// Copyright (c) 2026 Inkwell. All rights reserved.

package category

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-app/inkwell/internal/platform/apperr"
	"github.com/inkwell-app/inkwell/internal/platform/database/schema"
	"github.com/inkwell-app/inkwell/internal/platform/dberr"
)

type categoryRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed category store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &categoryRepository{pool: pool}
}

func (repository *categoryRepository) ListAll(context context.Context) ([]*Category, error) {
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, c.%s, c.%s,
			(SELECT COUNT(*) FROM %s p WHERE p.%s = c.%s AND p.%s = 'published') AS post_count
		FROM %s c
		ORDER BY c.%s ASC`,
		schema.BlogCategory.ID,
		schema.BlogCategory.Name,
		schema.BlogCategory.Slug,
		schema.BlogCategory.Description,
		schema.BlogCategory.CreatedAt,
		schema.BlogPost.Table,
		schema.BlogPost.CategoryID, schema.BlogCategory.ID,
		schema.BlogPost.Status,
		schema.BlogCategory.Table,
		schema.BlogCategory.Name,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_category_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		category := &Category{}
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Slug,
			&category.Description,
			&category.CreatedAt,
			&category.PostCount,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_category_repo_scan_failed: %w", err)
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

func (repository *categoryRepository) FindBySlug(context context.Context, slug string) (*Category, error) {
	query := fmt.Sprintf(
		"SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1",
		schema.BlogCategory.ID,
		schema.BlogCategory.Name,
		schema.BlogCategory.Slug,
		schema.BlogCategory.Description,
		schema.BlogCategory.CreatedAt,
		schema.BlogCategory.Table,
		schema.BlogCategory.Slug,
	)

	category := &Category{}
	err := repository.pool.QueryRow(context, query, slug).Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.Description,
		&category.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Category")
		}
		return nil, fmt.Errorf("postgres_category_repo_find_failed: %w", err)
	}

	return category, nil
}

func (repository *categoryRepository) Create(context context.Context, category *Category) error {
	query := fmt.Sprintf(
		"INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)",
		schema.BlogCategory.Table,
		schema.BlogCategory.ID,
		schema.BlogCategory.Name,
		schema.BlogCategory.Slug,
		schema.BlogCategory.Description,
		schema.BlogCategory.CreatedAt,
	)

	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		category.ID,
		category.Name,
		category.Slug,
		category.Description,
		category.CreatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("A category with this name already exists")
		}
		return fmt.Errorf("postgres_category_repo_create_failed: %w", err)
	}

	return nil
}
