// Copyright (c) 2026 Inkwell. All rights reserved.

package schema

// BlogPostTagTable represents the 'blog.posttag' junction table
type BlogPostTagTable struct {
	Table  string
	PostID string
	TagID  string
}

// BlogPostTag is the schema definition for blog.posttag
var BlogPostTag = BlogPostTagTable{
	Table:  "blog.posttag",
	PostID: "post_id",
	TagID:  "tag_id",
}
