// Copyright (c) 2026 Inkwell. All rights reserved.

package post_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwell-app/inkwell/internal/blog/post"
)

/*
TestPost_OwnershipPredicates covers the author-only edit/delete rules.
*/
func TestPost_OwnershipPredicates(t *testing.T) {
	article := &post.Post{AuthorID: "author-1", Status: post.StatusPublished}

	tests := []struct {
		name      string
		userID    string
		canEdit   bool
		canDelete bool
	}{
		{"author", "author-1", true, true},
		{"other_user", "user-2", false, false},
		{"anonymous", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.canEdit, article.CanEdit(tt.userID))
			assert.Equal(t, tt.canDelete, article.CanDelete(tt.userID))
		})
	}
}

/*
TestPost_CanView checks draft visibility: author only.
*/
func TestPost_CanView(t *testing.T) {
	draft := &post.Post{AuthorID: "author-1", Status: post.StatusDraft}
	published := &post.Post{AuthorID: "author-1", Status: post.StatusPublished}

	assert.True(t, draft.CanView("author-1"))
	assert.False(t, draft.CanView("user-2"))
	assert.False(t, draft.CanView(""))

	assert.True(t, published.CanView("user-2"))
	assert.True(t, published.CanView(""))
}

/*
TestStatus_IsValid rejects everything outside the draft/published lifecycle.
*/
func TestStatus_IsValid(t *testing.T) {
	assert.True(t, post.StatusDraft.IsValid())
	assert.True(t, post.StatusPublished.IsValid())
	assert.False(t, post.Status("archived").IsValid())
	assert.False(t, post.Status("").IsValid())
}
