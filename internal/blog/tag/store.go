// Copyright (c) 2026 Inkwell. All rights reserved.

package tag

import "context"

// Repository defines the data access contract for tags.
type Repository interface {
	// ListAll returns every tag, name ASC.
	ListAll(context context.Context) ([]*Tag, error)

	// ListPopular returns the tags with the most published posts,
	// post count DESC then name ASC, capped at limit.
	ListPopular(context context.Context, limit int) ([]*Tag, error)

	// FindBySlug returns the tag with the given slug.
	FindBySlug(context context.Context, slug string) (*Tag, error)

	// Create persists a new tag. Duplicate names or slugs surface as
	// Conflict errors.
	Create(context context.Context, tag *Tag) error
}
