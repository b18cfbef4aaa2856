// Copyright (c) 2026 Inkwell. All rights reserved.

package category

import "context"

// Repository defines the data access contract for categories.
type Repository interface {
	// ListAll returns every category with its published-post count, name ASC.
	ListAll(context context.Context) ([]*Category, error)

	// FindBySlug returns the category with the given slug.
	FindBySlug(context context.Context, slug string) (*Category, error)

	// Create persists a new category. Duplicate names or slugs surface as
	// Conflict errors.
	Create(context context.Context, category *Category) error
}
