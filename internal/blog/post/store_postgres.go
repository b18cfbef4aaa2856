// Copyright (c) 2026 Inkwell. All rights reserved.

/*
PostgreSQL implementation of the post repository.

It leans on Postgres features to keep reads single-round-trip:
  - JSON Aggregation: Tags and comments arrive as JSON arrays on the row.
  - ILIKE Search: Case-insensitive substring matching over text columns.
  - Atomic Counters: The view counter is bumped server-side, never read-modify-write.
  - ACID Transactions: Post rows and their tag links change together or not at all.
*/
package post

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-app/inkwell/internal/platform/apperr"
	"github.com/inkwell-app/inkwell/internal/platform/database/schema"
)

// # PostgreSQL Repository

// postRepository implements the [Repository] interface using pgx.
type postRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed post store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postRepository{pool: pool}
}

// selectColumns is the shared projection for hydrated post rows, including
// the author username, the nullable category ref, and the aggregated tags.
func selectColumns() string {
	return fmt.Sprintf(`
		p.%s, p.%s, p.%s, p.%s, a.%s,
		p.%s, p.%s, p.%s, p.%s, p.%s,
		p.%s, p.%s, p.%s,
		c.%s, c.%s, c.%s,
		COALESCE((
			SELECT json_agg(json_build_object('id', t.%s, 'name', t.%s, 'slug', t.%s) ORDER BY t.%s)
			FROM %s t
			JOIN %s pt ON t.%s = pt.%s
			WHERE pt.%s = p.%s
		), '[]') AS tags`,
		schema.BlogPost.ID,
		schema.BlogPost.Title,
		schema.BlogPost.Slug,
		schema.BlogPost.AuthorID,
		schema.UsersAccount.Username,
		schema.BlogPost.Content,
		schema.BlogPost.Excerpt,
		schema.BlogPost.FeaturedImage,
		schema.BlogPost.Status,
		schema.BlogPost.Views,
		schema.BlogPost.PublishedAt,
		schema.BlogPost.CreatedAt,
		schema.BlogPost.UpdatedAt,
		schema.BlogCategory.ID,
		schema.BlogCategory.Name,
		schema.BlogCategory.Slug,
		schema.BlogTag.ID,
		schema.BlogTag.Name,
		schema.BlogTag.Slug,
		schema.BlogTag.Name,
		schema.BlogTag.Table,
		schema.BlogPostTag.Table,
		schema.BlogTag.ID, schema.BlogPostTag.TagID,
		schema.BlogPostTag.PostID, schema.BlogPost.ID,
	)
}

// fromClause joins the author account and the optional category.
func fromClause() string {
	return fmt.Sprintf(`
		FROM %s p
		JOIN %s a ON a.%s = p.%s
		LEFT JOIN %s c ON c.%s = p.%s`,
		schema.BlogPost.Table,
		schema.UsersAccount.Table,
		schema.UsersAccount.ID, schema.BlogPost.AuthorID,
		schema.BlogCategory.Table,
		schema.BlogCategory.ID, schema.BlogPost.CategoryID,
	)
}

// applyFilter appends the dynamic WHERE clause for the filter and returns
// the collected positional arguments.
func applyFilter(queryBuilder *strings.Builder, filter Filter) []any {
	var args []any
	argID := 1

	queryBuilder.WriteString(" WHERE 1=1")

	// Status Filtering
	if filter.Status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.%s = $%d", schema.BlogPost.Status, argID))
		args = append(args, string(filter.Status))
		argID++
	}

	// Author Filtering
	if filter.AuthorID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.%s = $%d", schema.BlogPost.AuthorID, argID))
		args = append(args, filter.AuthorID)
		argID++
	}

	// Category Filtering (by slug)
	if filter.CategorySlug != "" {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND p.%s = (SELECT %s FROM %s WHERE %s = $%d)",
			schema.BlogPost.CategoryID,
			schema.BlogCategory.ID, schema.BlogCategory.Table, schema.BlogCategory.Slug, argID,
		))
		args = append(args, filter.CategorySlug)
		argID++
	}

	// Tag Membership Filtering (by slug)
	if filter.TagSlug != "" {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM %s pt JOIN %s t ON t.%s = pt.%s WHERE pt.%s = p.%s AND t.%s = $%d)",
			schema.BlogPostTag.Table,
			schema.BlogTag.Table,
			schema.BlogTag.ID, schema.BlogPostTag.TagID,
			schema.BlogPostTag.PostID, schema.BlogPost.ID,
			schema.BlogTag.Slug, argID,
		))
		args = append(args, filter.TagSlug)
		argID++
	}

	// Substring Search Filtering. The same positional argument is reused
	// across the OR branches.
	if filter.Query != "" {
		if filter.SearchExcerpt {
			queryBuilder.WriteString(fmt.Sprintf(
				" AND (p.%s ILIKE $%d OR p.%s ILIKE $%d OR p.%s ILIKE $%d)",
				schema.BlogPost.Title, argID,
				schema.BlogPost.Content, argID,
				schema.BlogPost.Excerpt, argID,
			))
		} else {
			queryBuilder.WriteString(fmt.Sprintf(
				" AND (p.%s ILIKE $%d OR p.%s ILIKE $%d)",
				schema.BlogPost.Title, argID,
				schema.BlogPost.Content, argID,
			))
		}
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	return args
}

// orderClause maps the allow-listed order values to ORDER BY SQL. Anything
// unknown falls back to newest-first.
func orderClause(order Order) string {
	switch order {
	case OrderPopular:
		return fmt.Sprintf(" ORDER BY p.%s DESC, p.%s DESC", schema.BlogPost.Views, schema.BlogPost.ID)
	case OrderTitle:
		return fmt.Sprintf(" ORDER BY p.%s ASC, p.%s DESC", schema.BlogPost.Title, schema.BlogPost.ID)
	default:
		// NULLS LAST keeps never-published drafts at the tail of author listings.
		return fmt.Sprintf(" ORDER BY p.%s DESC NULLS LAST, p.%s DESC, p.%s DESC",
			schema.BlogPost.PublishedAt, schema.BlogPost.CreatedAt, schema.BlogPost.ID)
	}
}

/*
List returns a filtered, ordered page of hydrated post rows.

Description: Builds a dynamic WHERE clause from the filter and joins the
author and category rows, aggregating tags into a JSON array to avoid N+1
round-trips.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Post: Hydrated post entities
  - error: Database execution errors
*/
func (repository *postRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Post, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT ")
	queryBuilder.WriteString(selectColumns())
	queryBuilder.WriteString(fromClause())

	args := applyFilter(&queryBuilder, filter)

	queryBuilder.WriteString(orderClause(filter.Order))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("postgres_post_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var posts []*Post
	for rows.Next() {
		post, err := scanPostRow(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	return posts, rows.Err()
}

/*
Count returns the total number of posts matching the filter.

Parameters:
  - context: context.Context
  - filter: Filter

Returns:
  - int: Total matching rows
  - error: Database execution errors
*/
func (repository *postRepository) Count(context context.Context, filter Filter) (int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT COUNT(*)")
	queryBuilder.WriteString(fromClause())

	args := applyFilter(&queryBuilder, filter)

	var total int
	if err := repository.pool.QueryRow(context, queryBuilder.String(), args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("postgres_post_repo_count_failed: %w", err)
	}

	return total, nil
}

/*
FindBySlug returns the fully hydrated post with the given slug, plus its
comments aggregated with their author usernames.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Post: Hydrated entity
  - []CommentRef: Comments in chronological order
  - error: apperr.NotFound or execution errors
*/
func (repository *postRepository) FindBySlug(context context.Context, slug string) (*Post, []CommentRef, error) {
	query := fmt.Sprintf(`SELECT %s,
		COALESCE((
			SELECT json_agg(json_build_object(
				'id', cm.%s,
				'author_id', cm.%s,
				'author_username', ca.%s,
				'body', cm.%s,
				'created_at', cm.%s
			) ORDER BY cm.%s ASC)
			FROM %s cm
			JOIN %s ca ON ca.%s = cm.%s
			WHERE cm.%s = p.%s
		), '[]') AS comments
		%s
		WHERE p.%s = $1`,
		selectColumns(),
		schema.BlogComment.ID,
		schema.BlogComment.AuthorID,
		schema.UsersAccount.Username,
		schema.BlogComment.Body,
		schema.BlogComment.CreatedAt,
		schema.BlogComment.CreatedAt,
		schema.BlogComment.Table,
		schema.UsersAccount.Table,
		schema.UsersAccount.ID, schema.BlogComment.AuthorID,
		schema.BlogComment.PostID, schema.BlogPost.ID,
		fromClause(),
		schema.BlogPost.Slug,
	)

	post := &Post{}
	var categoryID, categoryName, categorySlug *string
	var tagsJSON, commentsJSON []byte

	err := repository.pool.QueryRow(context, query, slug).Scan(
		&post.ID,
		&post.Title,
		&post.Slug,
		&post.AuthorID,
		&post.AuthorUsername,
		&post.Content,
		&post.Excerpt,
		&post.FeaturedImageURL,
		&post.Status,
		&post.Views,
		&post.PublishedAt,
		&post.CreatedAt,
		&post.UpdatedAt,
		&categoryID,
		&categoryName,
		&categorySlug,
		&tagsJSON,
		&commentsJSON,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperr.NotFound("Post")
		}
		return nil, nil, fmt.Errorf("postgres_post_repo_find_by_slug_failed: %w", err)
	}

	hydrateCategory(post, categoryID, categoryName, categorySlug)

	if err := json.Unmarshal(tagsJSON, &post.Tags); err != nil {
		return nil, nil, fmt.Errorf("postgres_post_repo_unmarshal_tags_failed: %w", err)
	}

	comments := []CommentRef{}
	if err := json.Unmarshal(commentsJSON, &comments); err != nil {
		return nil, nil, fmt.Errorf("postgres_post_repo_unmarshal_comments_failed: %w", err)
	}

	return post, comments, nil
}

/*
ListRelated returns up to limit other published posts in the same category,
newest first.

Parameters:
  - context: context.Context
  - categoryID: string
  - excludeID: string
  - limit: int

Returns:
  - []*Post: Related post rows
  - error: Execution errors
*/
func (repository *postRepository) ListRelated(context context.Context, categoryID, excludeID string, limit int) ([]*Post, error) {
	query := fmt.Sprintf(`SELECT %s %s
		WHERE p.%s = $1 AND p.%s != $2 AND p.%s = $3
		ORDER BY p.%s DESC, p.%s DESC
		LIMIT $4`,
		selectColumns(),
		fromClause(),
		schema.BlogPost.CategoryID,
		schema.BlogPost.ID,
		schema.BlogPost.Status,
		schema.BlogPost.PublishedAt,
		schema.BlogPost.ID,
	)

	rows, err := repository.pool.Query(context, query, categoryID, excludeID, string(StatusPublished), limit)
	if err != nil {
		return nil, fmt.Errorf("postgres_post_repo_list_related_failed: %w", err)
	}
	defer rows.Close()

	var posts []*Post
	for rows.Next() {
		post, err := scanPostRow(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	return posts, rows.Err()
}

/*
Create persists a new post and its tag links in one transaction.

Description: The slug unique index is the final arbiter under concurrent
inserts; violations bubble up unwrapped-compatible so the caller can detect
them with the platform dberr helpers and retry with the next suffix.

Parameters:
  - context: context.Context
  - post: *Post

Returns:
  - error: Unique violations or persistence failures
*/
func (repository *postRepository) Create(context context.Context, post *Post) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_post_repo_begin_failed: %w", err)
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		schema.BlogPost.Table,
		schema.BlogPost.ID,
		schema.BlogPost.Title,
		schema.BlogPost.Slug,
		schema.BlogPost.AuthorID,
		schema.BlogPost.CategoryID,
		schema.BlogPost.Content,
		schema.BlogPost.Excerpt,
		schema.BlogPost.FeaturedImage,
		schema.BlogPost.Status,
		schema.BlogPost.Views,
		schema.BlogPost.PublishedAt,
		schema.BlogPost.CreatedAt,
		schema.BlogPost.UpdatedAt,
	)

	now := time.Now()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now

	_, err = transaction.Exec(context, query,
		post.ID,
		post.Title,
		post.Slug,
		post.AuthorID,
		post.CategoryID,
		post.Content,
		post.Excerpt,
		post.FeaturedImageURL,
		string(post.Status),
		post.Views,
		post.PublishedAt,
		post.CreatedAt,
		post.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_post_repo_create_failed: %w", err)
	}

	if len(post.TagIDs) > 0 {
		if err := replaceTagLinks(context, transaction, post.ID, post.TagIDs); err != nil {
			return err
		}
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_post_repo_commit_failed: %w", err)
	}

	return nil
}

/*
Update persists changes to a post and replaces its tag links.

Description: The service owns the read-modify-write cycle, so this is a full
column update. A nil TagIDs slice leaves the links untouched; an empty one
clears them.

Parameters:
  - context: context.Context
  - post: *Post

Returns:
  - error: apperr.NotFound or persistence failures
*/
func (repository *postRepository) Update(context context.Context, post *Post) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_post_repo_begin_failed: %w", err)
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9
		WHERE %s = $1`,
		schema.BlogPost.Table,
		schema.BlogPost.Title,
		schema.BlogPost.Content,
		schema.BlogPost.Excerpt,
		schema.BlogPost.FeaturedImage,
		schema.BlogPost.CategoryID,
		schema.BlogPost.Status,
		schema.BlogPost.PublishedAt,
		schema.BlogPost.UpdatedAt,
		schema.BlogPost.ID,
	)

	post.UpdatedAt = time.Now()
	result, err := transaction.Exec(context, query,
		post.ID,
		post.Title,
		post.Content,
		post.Excerpt,
		post.FeaturedImageURL,
		post.CategoryID,
		string(post.Status),
		post.PublishedAt,
		post.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_post_repo_update_failed: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Post")
	}

	if post.TagIDs != nil {
		if err := replaceTagLinks(context, transaction, post.ID, post.TagIDs); err != nil {
			return err
		}
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_post_repo_commit_failed: %w", err)
	}

	return nil
}

/*
Delete permanently removes a post. Tag links and comments follow via
ON DELETE CASCADE.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or persistence failures
*/
func (repository *postRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.BlogPost.Table, schema.BlogPost.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_post_repo_delete_failed: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Post")
	}

	return nil
}

/*
IncrementViews performs a thread-safe counter update on a published post.

Description: The increment happens entirely server-side so concurrent detail
requests never lose counts. The status guard keeps drafts at zero.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Execution failures
*/
func (repository *postRepository) IncrementViews(context context.Context, id string) error {
	query := fmt.Sprintf(
		"UPDATE %s SET %s = %s + 1 WHERE %s = $1 AND %s = $2",
		schema.BlogPost.Table,
		schema.BlogPost.Views, schema.BlogPost.Views,
		schema.BlogPost.ID,
		schema.BlogPost.Status,
	)

	if _, err := repository.pool.Exec(context, query, id, string(StatusPublished)); err != nil {
		return fmt.Errorf("postgres_post_repo_increment_views_failed: %w", err)
	}

	return nil
}

/*
SlugExists reports whether any post already uses the given slug.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - bool: true if taken
  - error: Execution errors
*/
func (repository *postRepository) SlugExists(context context.Context, slug string) (bool, error) {
	query := fmt.Sprintf(
		"SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)",
		schema.BlogPost.Table, schema.BlogPost.Slug,
	)

	var exists bool
	if err := repository.pool.QueryRow(context, query, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_post_repo_slug_exists_failed: %w", err)
	}

	return exists, nil
}

/*
CountByAuthorStatus returns the author's draft and published counts.

Parameters:
  - context: context.Context
  - authorID: string

Returns:
  - int: Draft count
  - int: Published count
  - error: Execution errors
*/
func (repository *postRepository) CountByAuthorStatus(context context.Context, authorID string) (int, int, error) {
	query := fmt.Sprintf(`
		SELECT
			COUNT(*) FILTER (WHERE %s = $2),
			COUNT(*) FILTER (WHERE %s = $3)
		FROM %s
		WHERE %s = $1`,
		schema.BlogPost.Status,
		schema.BlogPost.Status,
		schema.BlogPost.Table,
		schema.BlogPost.AuthorID,
	)

	var drafts, published int
	err := repository.pool.QueryRow(context, query,
		authorID, string(StatusDraft), string(StatusPublished),
	).Scan(&drafts, &published)

	if err != nil {
		return 0, 0, fmt.Errorf("postgres_post_repo_count_by_status_failed: %w", err)
	}

	return drafts, published, nil
}

// # Row Helpers

// scanPostRow hydrates one listing row, including the nullable category ref
// and the JSON-aggregated tags.
func scanPostRow(rows pgx.Rows) (*Post, error) {
	post := &Post{}
	var categoryID, categoryName, categorySlug *string
	var tagsJSON []byte

	err := rows.Scan(
		&post.ID,
		&post.Title,
		&post.Slug,
		&post.AuthorID,
		&post.AuthorUsername,
		&post.Content,
		&post.Excerpt,
		&post.FeaturedImageURL,
		&post.Status,
		&post.Views,
		&post.PublishedAt,
		&post.CreatedAt,
		&post.UpdatedAt,
		&categoryID,
		&categoryName,
		&categorySlug,
		&tagsJSON,
	)

	if err != nil {
		return nil, fmt.Errorf("postgres_post_repo_scan_failed: %w", err)
	}

	hydrateCategory(post, categoryID, categoryName, categorySlug)

	if err := json.Unmarshal(tagsJSON, &post.Tags); err != nil {
		return nil, fmt.Errorf("postgres_post_repo_unmarshal_tags_failed: %w", err)
	}

	return post, nil
}

// hydrateCategory attaches the category ref when the LEFT JOIN matched.
func hydrateCategory(post *Post, id, name, slug *string) {
	if id == nil {
		return
	}
	post.CategoryID = id
	post.Category = &CategoryRef{ID: *id, Name: *name, Slug: *slug}
}

// replaceTagLinks rewrites the post's junction rows inside the transaction
// using a clear-and-insert batch.
func replaceTagLinks(context context.Context, transaction pgx.Tx, postID string, tagIDs []string) error {
	deleteQuery := fmt.Sprintf(
		"DELETE FROM %s WHERE %s = $1",
		schema.BlogPostTag.Table, schema.BlogPostTag.PostID,
	)
	if _, err := transaction.Exec(context, deleteQuery, postID); err != nil {
		return fmt.Errorf("postgres_post_repo_clear_tags_failed: %w", err)
	}

	if len(tagIDs) == 0 {
		return nil
	}

	insertQuery := fmt.Sprintf(
		"INSERT INTO %s (%s, %s) VALUES ($1, $2)",
		schema.BlogPostTag.Table, schema.BlogPostTag.PostID, schema.BlogPostTag.TagID,
	)
	batch := &pgx.Batch{}
	for _, tagID := range tagIDs {
		batch.Queue(insertQuery, postID, tagID)
	}

	response := transaction.SendBatch(context, batch)
	if err := response.Close(); err != nil {
		return fmt.Errorf("postgres_post_repo_link_tags_failed: %w", err)
	}

	return nil
}
