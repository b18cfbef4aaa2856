// Copyright (c) 2026 Inkwell. All rights reserved.

package comment

import (
	"context"

	"github.com/inkwell-app/inkwell/internal/platform/apperr"
	"github.com/inkwell-app/inkwell/pkg/uuid"
)

// # Definitions & Constructors

// Service implements the comment use cases.
type Service struct {
	repository Repository
}

// NewService constructs a new comment [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// # Operations

/*
Create attaches a new comment to the post behind postSlug.

Description: The target post must be resolvable by the commenter: published
posts accept comments from any authenticated user, while drafts only accept
them from their own author. A draft resolves as NotFound for anyone else so
its existence stays hidden.

Parameters:
  - context: Request-scoped context.
  - postSlug: Public slug of the post being commented on.
  - authorID: Authenticated commenter.
  - body: Comment text, already validated by the HTTP layer.

Returns:
  - *Comment: The stored comment.
  - error: NotFound when the post is missing or an invisible draft.
*/
func (service *Service) Create(context context.Context, postSlug, authorID, body string) (*Comment, error) {
	target, err := service.repository.FindPostTarget(context, postSlug)
	if err != nil {
		return nil, err
	}

	if !target.Published && target.AuthorID != authorID {
		return nil, apperr.NotFound("Post")
	}

	comment := &Comment{
		ID:       uuid.New(),
		PostID:   target.ID,
		AuthorID: authorID,
		Body:     body,
	}

	if err := service.repository.Create(context, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

/*
Delete removes a comment on behalf of userID.

Description: Permitted for the comment's author and for the author of the
post it belongs to.

Returns:
  - error: NotFound for unknown IDs, Forbidden for anyone else.
*/
func (service *Service) Delete(context context.Context, id, userID string) error {
	found, err := service.repository.FindByID(context, id)
	if err != nil {
		return err
	}

	if !found.CanDelete(userID) {
		return apperr.Forbidden("You cannot delete this comment")
	}

	return service.repository.Delete(context, id)
}
