// Copyright (c) 2026 Inkwell. All rights reserved.

package schema

// BlogCommentTable represents the 'blog.comment' table
type BlogCommentTable struct {
	Table     string
	ID        string
	PostID    string
	AuthorID  string
	Body      string
	CreatedAt string
	UpdatedAt string
}

// BlogComment is the schema definition for blog.comment
var BlogComment = BlogCommentTable{
	Table:     "blog.comment",
	ID:        "id",
	PostID:    "post_id",
	AuthorID:  "author_id",
	Body:      "body",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

func (t BlogCommentTable) Columns() []string {
	return []string{t.ID, t.PostID, t.AuthorID, t.Body, t.CreatedAt, t.UpdatedAt}
}
