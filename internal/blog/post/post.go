// Copyright (c) 2026 Inkwell. All rights reserved.

/*
Package post implements the publishing core of Inkwell: articles with a
draft/published lifecycle, URL slugs, categories, tags, comments, and a
view counter.

# Architecture

The package follows the layered shape used across the codebase:

  - Entity: Post and its read-model refs (no external dependencies).
  - Repository: Postgres-backed data access with dynamic filtering.
  - Service: Slug assignment, publish stamping, ownership checks, paging.
  - Handler: Thin JSON transport over chi.

Ownership rules live on the entity as pure predicates so they can be tested
without any infrastructure.
*/
package post

import (
	"time"
)

// # Status Lifecycle

// Status is the publication state of a post.
type Status string

const (
	// StatusDraft marks a post visible only to its author.
	StatusDraft Status = "draft"

	// StatusPublished marks a post publicly listed and viewable.
	StatusPublished Status = "published"
)

// IsValid reports whether the status is one of the known lifecycle states.
func (s Status) IsValid() bool {
	return s == StatusDraft || s == StatusPublished
}

// # Domain Entities

// CategoryRef is the embedded category summary carried on post rows.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// TagRef is the embedded tag summary aggregated onto post rows.
type TagRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CommentRef is the embedded comment view aggregated onto the detail row.
type CommentRef struct {
	ID             string    `json:"id"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

// Post represents a single article.
//
// AuthorUsername, Category, and Tags are read-model fields hydrated by the
// repository joins; TagIDs is the write-model field consumed on create/update.
type Post struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	Slug             string       `json:"slug"`
	AuthorID         string       `json:"author_id"`
	AuthorUsername   string       `json:"author_username,omitempty"`
	Content          string       `json:"content"`
	Excerpt          string       `json:"excerpt,omitempty"`
	FeaturedImageURL string       `json:"featured_image_url,omitempty"`
	CategoryID       *string      `json:"-"`
	Category         *CategoryRef `json:"category,omitempty"`
	Status           Status       `json:"status"`
	Views            int64        `json:"views"`
	Tags             []TagRef     `json:"tags"`
	TagIDs           []string     `json:"-"`
	PublishedAt      *time.Time   `json:"published_at,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// # Ownership Predicates

// CanView reports whether userID may read the post. Published posts are
// public; drafts are visible only to their author.
func (p *Post) CanView(userID string) bool {
	if p.Status == StatusPublished {
		return true
	}
	return userID != "" && p.AuthorID == userID
}

// CanEdit reports whether userID may modify the post. Author only.
func (p *Post) CanEdit(userID string) bool {
	return userID != "" && p.AuthorID == userID
}

// CanDelete reports whether userID may delete the post. Author only.
func (p *Post) CanDelete(userID string) bool {
	return p.CanEdit(userID)
}

// # Query Model

// Order names the allowed public listing sort keys. Unknown values silently
// fall back to [OrderNewest].
type Order string

const (
	// OrderNewest sorts by publication time, most recent first. Default.
	OrderNewest Order = "-published_at"

	// OrderPopular sorts by view count, most viewed first.
	OrderPopular Order = "-views"

	// OrderTitle sorts alphabetically by title.
	OrderTitle Order = "title"
)

// Filter captures the dynamic WHERE clause of a post listing.
//
// Zero values mean "no constraint". SearchExcerpt widens the substring
// search to the excerpt column (public listing only).
type Filter struct {
	Status        Status
	AuthorID      string
	CategorySlug  string
	TagSlug       string
	Query         string
	SearchExcerpt bool
	Order         Order
}

// # Field Identifiers

// Global field names for validation and payload mapping in the post domain.
const (
	FieldTitle            = "title"
	FieldContent          = "content"
	FieldExcerpt          = "excerpt"
	FieldFeaturedImageURL = "featured_image_url"
	FieldCategoryID       = "category_id"
	FieldStatus           = "status"
	FieldTagIDs           = "tag_ids"
)

// MaxExcerptLen caps the excerpt length in Unicode characters.
const MaxExcerptLen = 500
