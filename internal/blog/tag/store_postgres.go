// Copyright (c) 2026 Inkwell. All rights reserved.

package tag

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

type tagRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed tag store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &tagRepository{pool: pool}
}

func (repository *tagRepository) ListAll(context context.Context) ([]*Tag, error) {
	query := fmt.Sprintf(
		"SELECT %s, %s, %s, %s FROM %s ORDER BY %s ASC",
		schema.BlogTag.ID,
		schema.BlogTag.Name,
		schema.BlogTag.Slug,
		schema.BlogTag.CreatedAt,
		schema.BlogTag.Table,
		schema.BlogTag.Name,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_tag_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var tags []*Tag
	for rows.Next() {
		tag := &Tag{}
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug, &tag.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres_tag_repo_scan_failed: %w", err)
		}
		tags = append(tags, tag)
	}

	return tags, rows.Err()
}

func (repository *tagRepository) ListPopular(context context.Context, limit int) ([]*Tag, error) {
	// Only published posts count toward popularity.
	query := fmt.Sprintf(`
		SELECT t.%s, t.%s, t.%s, t.%s, COUNT(p.%s) AS post_count
		FROM %s t
		JOIN %s pt ON pt.%s = t.%s
		JOIN %s p ON p.%s = pt.%s AND p.%s = 'published'
		GROUP BY t.%s, t.%s, t.%s, t.%s
		ORDER BY post_count DESC, t.%s ASC
		LIMIT $1`,
		schema.BlogTag.ID, schema.BlogTag.Name, schema.BlogTag.Slug, schema.BlogTag.CreatedAt,
		schema.BlogPost.ID,
		schema.BlogTag.Table,
		schema.BlogPostTag.Table, schema.BlogPostTag.TagID, schema.BlogTag.ID,
		schema.BlogPost.Table, schema.BlogPost.ID, schema.BlogPostTag.PostID, schema.BlogPost.Status,
		schema.BlogTag.ID, schema.BlogTag.Name, schema.BlogTag.Slug, schema.BlogTag.CreatedAt,
		schema.BlogTag.Name,
	)

	rows, err := repository.pool.Query(context, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres_tag_repo_popular_failed: %w", err)
	}
	defer rows.Close()

	var tags []*Tag
	for rows.Next() {
		tag := &Tag{}
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug, &tag.CreatedAt, &tag.PostCount); err != nil {
			return nil, fmt.Errorf("postgres_tag_repo_scan_failed: %w", err)
		}
		tags = append(tags, tag)
	}

	return tags, rows.Err()
}

func (repository *tagRepository) FindBySlug(context context.Context, slug string) (*Tag, error) {
	query := fmt.Sprintf(
		"SELECT %s, %s, %s, %s FROM %s WHERE %s = $1",
		schema.BlogTag.ID,
		schema.BlogTag.Name,
		schema.BlogTag.Slug,
		schema.BlogTag.CreatedAt,
		schema.BlogTag.Table,
		schema.BlogTag.Slug,
	)

	tag := &Tag{}
	err := repository.pool.QueryRow(context, query, slug).Scan(&tag.ID, &tag.Name, &tag.Slug, &tag.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Tag")
		}
		return nil, fmt.Errorf("postgres_tag_repo_find_failed: %w", err)
	}

	return tag, nil
}

func (repository *tagRepository) Create(context context.Context, tag *Tag) error {
	query := fmt.Sprintf(
		"INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)",
		schema.BlogTag.Table,
		schema.BlogTag.ID,
		schema.BlogTag.Name,
		schema.BlogTag.Slug,
		schema.BlogTag.CreatedAt,
	)

	if tag.CreatedAt.IsZero() {
		tag.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query, tag.ID, tag.Name, tag.Slug, tag.CreatedAt)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("A tag with this name already exists")
		}
		return fmt.Errorf("postgres_tag_repo_create_failed: %w", err)
	}

	return nil
}
