// Copyright (c) 2026 Inkwell. All rights reserved.

package schema

// BlogPostTable represents the 'blog.post' table
type BlogPostTable struct {
	Table         string
	ID            string
	AuthorID      string
	CategoryID    string
	Title         string
	Slug          string
	Excerpt       string
	Content       string
	FeaturedImage string
	Status        string
	Views         string
	PublishedAt   string
	CreatedAt     string
	UpdatedAt     string
}

// BlogPost is the schema definition for blog.post
var BlogPost = BlogPostTable{
	Table:         "blog.post",
	ID:            "id",
	AuthorID:      "author_id",
	CategoryID:    "category_id",
	Title:         "title",
	Slug:          "slug",
	Excerpt:       "excerpt",
	Content:       "content",
	FeaturedImage: "featured_image_url",
	Status:        "status",
	Views:         "views",
	PublishedAt:   "published_at",
	CreatedAt:     "created_at",
	UpdatedAt:     "updated_at",
}

func (t BlogPostTable) Columns() []string {
	return []string{
		t.ID, t.AuthorID, t.CategoryID, t.Title, t.Slug, t.Excerpt, t.Content,
		t.FeaturedImage, t.Status, t.Views, t.PublishedAt, t.CreatedAt, t.UpdatedAt,
	}
}
