// Copyright (c) 2026 Inkwell. All rights reserved.

package post

import (
	"context"
)

// # Post Data Access

// Repository defines the data access contract for posts.
type Repository interface {

	/*
		List returns a filtered, ordered page of posts.

		Parameters:
		  - context: context.Context
		  - filter: Filter (status, author, category, tag, search, order)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Post: Hydrated post rows (author, category, tags)
		  - error: Database execution errors
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Post, error)

	/*
		Count returns the total number of posts matching the filter.

		Runs before List so the service can clamp out-of-range pages.

		Parameters:
		  - context: context.Context
		  - filter: Filter

		Returns:
		  - int: Total matching rows
		  - error: Database execution errors
	*/
	Count(context context.Context, filter Filter) (int, error)

	/*
		FindBySlug returns the fully hydrated post with the given slug,
		including its aggregated comments.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Post: Hydrated entity
		  - []CommentRef: Comments in chronological order
		  - error: apperr.NotFound or execution errors
	*/
	FindBySlug(context context.Context, slug string) (*Post, []CommentRef, error)

	/*
		ListRelated returns up to limit other published posts sharing the
		given category, excluding excludeID, newest first.

		Parameters:
		  - context: context.Context
		  - categoryID: string
		  - excludeID: string
		  - limit: int

		Returns:
		  - []*Post: Related post rows
		  - error: Execution errors
	*/
	ListRelated(context context.Context, categoryID, excludeID string, limit int) ([]*Post, error)

	/*
		Create persists a new post and its tag links in one transaction.

		The slug unique index is the hard gate under concurrency; violations
		surface so the service can retry with the next suffix.

		Parameters:
		  - context: context.Context
		  - post: *Post

		Returns:
		  - error: Unique violations or persistence failures
	*/
	Create(context context.Context, post *Post) error

	/*
		Update persists changes to a post and replaces its tag links.

		Parameters:
		  - context: context.Context
		  - post: *Post

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	Update(context context.Context, post *Post) error

	/*
		Delete permanently removes a post. Comments and tag links go with it
		via FK cascades.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	Delete(context context.Context, id string) error

	/*
		IncrementViews atomically bumps the view counter of a published post.
		Drafts are untouched.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Execution errors
	*/
	IncrementViews(context context.Context, id string) error

	/*
		SlugExists reports whether any post already uses the given slug.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - bool: true if taken
		  - error: Execution errors
	*/
	SlugExists(context context.Context, slug string) (bool, error)

	/*
		CountByAuthorStatus returns the author's draft and published counts
		for the dashboard header.

		Parameters:
		  - context: context.Context
		  - authorID: string

		Returns:
		  - int: Draft count
		  - int: Published count
		  - error: Execution errors
	*/
	CountByAuthorStatus(context context.Context, authorID string) (int, int, error)
}
