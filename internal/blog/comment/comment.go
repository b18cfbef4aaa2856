// Copyright (c) 2026 Inkwell. All rights reserved.

/*
Package comment implements reader discussion threads on posts.

Comments are flat (no nesting) and always belong to an authenticated user.
Moderation is shared: a comment can be removed by the person who wrote it or
by the author of the post it sits under.
*/
package comment

import "time"

// Comment is a single reader remark on a post.
//
// PostAuthorID is hydrated from the parent post on reads and drives the
// shared moderation rule; it never serializes.
type Comment struct {
	ID             string    `json:"id"`
	PostID         string    `json:"post_id"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username,omitempty"`
	Body           string    `json:"body"`
	PostAuthorID   string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CanDelete reports whether userID may remove this comment: its own author
// or the author of the post it belongs to.
func (comment *Comment) CanDelete(userID string) bool {
	if userID == "" {
		return false
	}
	return comment.AuthorID == userID || comment.PostAuthorID == userID
}

// MaxBodyLen caps the comment body length in characters.
const MaxBodyLen = 2000
