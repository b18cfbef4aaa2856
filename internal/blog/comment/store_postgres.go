// Copyright (c) 2026 Inkwell. All rights reserved.

package comment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-app/inkwell/internal/platform/apperr"
	"github.com/inkwell-app/inkwell/internal/platform/database/schema"
)

// # Repository Implementation

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed comment store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &commentRepository{pool: pool}
}

func (repository *commentRepository) FindPostTarget(context context.Context, postSlug string) (*PostTarget, error) {
	query := fmt.Sprintf(
		"SELECT %s, %s, %s = 'published' FROM %s WHERE %s = $1",
		schema.BlogPost.ID,
		schema.BlogPost.AuthorID,
		schema.BlogPost.Status,
		schema.BlogPost.Table,
		schema.BlogPost.Slug,
	)

	target := &PostTarget{}
	err := repository.pool.QueryRow(context, query, postSlug).Scan(&target.ID, &target.AuthorID, &target.Published)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Post")
		}
		return nil, fmt.Errorf("postgres_comment_repo_target_failed: %w", err)
	}

	return target, nil
}

func (repository *commentRepository) Create(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(
		"INSERT INTO %s (%s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $6)",
		schema.BlogComment.Table,
		schema.BlogComment.ID,
		schema.BlogComment.PostID,
		schema.BlogComment.AuthorID,
		schema.BlogComment.Body,
		schema.BlogComment.CreatedAt,
		schema.BlogComment.UpdatedAt,
	)

	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		comment.ID,
		comment.PostID,
		comment.AuthorID,
		comment.Body,
		comment.CreatedAt,
		comment.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_comment_repo_create_failed: %w", err)
	}

	return nil
}

func (repository *commentRepository) FindByID(context context.Context, id string) (*Comment, error) {
	// The parent post's author rides along for the moderation check.
	query := fmt.Sprintf(`
		SELECT cm.%s, cm.%s, cm.%s, a.%s, cm.%s, p.%s, cm.%s, cm.%s
		FROM %s cm
		JOIN %s p ON p.%s = cm.%s
		JOIN %s a ON a.%s = cm.%s
		WHERE cm.%s = $1`,
		schema.BlogComment.ID,
		schema.BlogComment.PostID,
		schema.BlogComment.AuthorID,
		schema.UsersAccount.Username,
		schema.BlogComment.Body,
		schema.BlogPost.AuthorID,
		schema.BlogComment.CreatedAt,
		schema.BlogComment.UpdatedAt,
		schema.BlogComment.Table,
		schema.BlogPost.Table, schema.BlogPost.ID, schema.BlogComment.PostID,
		schema.UsersAccount.Table, schema.UsersAccount.ID, schema.BlogComment.AuthorID,
		schema.BlogComment.ID,
	)

	comment := &Comment{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&comment.ID,
		&comment.PostID,
		&comment.AuthorID,
		&comment.AuthorUsername,
		&comment.Body,
		&comment.PostAuthorID,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, fmt.Errorf("postgres_comment_repo_find_failed: %w", err)
	}

	return comment, nil
}

func (repository *commentRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(
		"DELETE FROM %s WHERE %s = $1",
		schema.BlogComment.Table,
		schema.BlogComment.ID,
	)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_comment_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}
