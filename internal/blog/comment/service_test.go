// Copyright (c) 2026 Inkwell. All rights reserved.

package comment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-app/inkwell/internal/blog/comment"
	"github.com/inkwell-app/inkwell/internal/platform/apperr"
)

// # Test Fakes

type fakeRepository struct {
	targets  map[string]*comment.PostTarget
	comments map[string]*comment.Comment
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		targets:  make(map[string]*comment.PostTarget),
		comments: make(map[string]*comment.Comment),
	}
}

func (repository *fakeRepository) FindPostTarget(_ context.Context, postSlug string) (*comment.PostTarget, error) {
	target, ok := repository.targets[postSlug]
	if !ok {
		return nil, apperr.NotFound("Post")
	}
	return target, nil
}

func (repository *fakeRepository) Create(_ context.Context, c *comment.Comment) error {
	repository.comments[c.ID] = c
	return nil
}

func (repository *fakeRepository) FindByID(_ context.Context, id string) (*comment.Comment, error) {
	c, ok := repository.comments[id]
	if !ok {
		return nil, apperr.NotFound("Comment")
	}
	return c, nil
}

func (repository *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := repository.comments[id]; !ok {
		return apperr.NotFound("Comment")
	}
	delete(repository.comments, id)
	return nil
}

// # Tests

/*
TestService_Create verifies comment creation against published posts and the
draft visibility rule.
*/
func TestService_Create(t *testing.T) {
	repository := newFakeRepository()
	repository.targets["published-post"] = &comment.PostTarget{ID: "post-1", AuthorID: "author-1", Published: true}
	repository.targets["draft-post"] = &comment.PostTarget{ID: "post-2", AuthorID: "author-1", Published: false}
	service := comment.NewService(repository)

	t.Run("on_published_post", func(t *testing.T) {
		created, err := service.Create(context.Background(), "published-post", "reader-1", "Great write-up!")
		require.NoError(t, err)
		assert.Equal(t, "post-1", created.PostID)
		assert.Equal(t, "reader-1", created.AuthorID)
		assert.NotEmpty(t, created.ID)
	})

	t.Run("draft_hidden_from_strangers", func(t *testing.T) {
		_, err := service.Create(context.Background(), "draft-post", "reader-1", "Sneak peek?")
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
	})

	t.Run("draft_open_to_its_author", func(t *testing.T) {
		created, err := service.Create(context.Background(), "draft-post", "author-1", "Note to self")
		require.NoError(t, err)
		assert.Equal(t, "post-2", created.PostID)
	})

	t.Run("unknown_post", func(t *testing.T) {
		_, err := service.Create(context.Background(), "no-such-post", "reader-1", "Hello")
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
	})
}

/*
TestService_Delete verifies the shared moderation rule: the comment's author
and the post's author may delete, nobody else.
*/
func TestService_Delete(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		wantCode string
	}{
		{"comment_author", "commenter", ""},
		{"post_author", "post-owner", ""},
		{"stranger", "someone-else", "FORBIDDEN"},
		{"anonymous", "", "FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository := newFakeRepository()
			repository.comments["c1"] = &comment.Comment{
				ID:           "c1",
				PostID:       "post-1",
				AuthorID:     "commenter",
				PostAuthorID: "post-owner",
				Body:         "A remark",
			}
			service := comment.NewService(repository)

			err := service.Delete(context.Background(), "c1", tt.userID)

			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Empty(t, repository.comments)
			} else {
				require.Error(t, err)
				assert.True(t, apperr.IsCode(err, tt.wantCode))
				assert.Len(t, repository.comments, 1)
			}
		})
	}
}

/*
TestService_Delete_Unknown verifies deleting a missing comment reports
NotFound rather than Forbidden.
*/
func TestService_Delete_Unknown(t *testing.T) {
	service := comment.NewService(newFakeRepository())

	err := service.Delete(context.Background(), "missing", "anyone")

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}
