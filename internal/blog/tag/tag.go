// Copyright (c) 2026 Inkwell. All rights reserved.

// Package tag manages the free-form labels attached to posts.
package tag

import "time"

// Tag is a free-form label. PostCount is only populated by popularity
// queries.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	PostCount int       `json:"post_count,omitempty"`
	CreatedAt time.Time `json:"-"`
}
