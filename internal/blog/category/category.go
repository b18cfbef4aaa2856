// Copyright (c) 2026 Inkwell. All rights reserved.

// Package category manages the editorial sections posts are filed under.
package category

import "time"

// Category represents a top-level editorial section.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	PostCount   int       `json:"post_count,omitempty"`
	CreatedAt   time.Time `json:"-"`
}
