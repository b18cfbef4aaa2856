// Copyright (c) 2026 Inkwell. All rights reserved.

package comment

import "context"

// PostTarget is the minimal view of a post needed to accept a comment on it.
type PostTarget struct {
	ID        string
	AuthorID  string
	Published bool
}

// Repository defines the data access contract for comments.
type Repository interface {
	/*
		FindPostTarget resolves the post a comment is aimed at.

		Parameters:
		  - context: Request-scoped context.
		  - postSlug: Public slug of the parent post.

		Returns:
		  - *PostTarget: Post identity, author, and publication state.
		  - error: NotFound when no post carries the slug.
	*/
	FindPostTarget(context context.Context, postSlug string) (*PostTarget, error)

	/*
		Create persists a new comment.
	*/
	Create(context context.Context, comment *Comment) error

	/*
		FindByID returns a comment with its author username and the parent
		post's author hydrated.

		Returns:
		  - error: NotFound when the ID is unknown.
	*/
	FindByID(context context.Context, id string) (*Comment, error)

	/*
		Delete permanently removes a comment.

		Returns:
		  - error: NotFound when the ID is unknown.
	*/
	Delete(context context.Context, id string) error
}
