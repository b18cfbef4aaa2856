// Copyright (c) 2026 Inkwell. All rights reserved.

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting metadata is delivered in the API response envelope.
// Each listing context uses a fixed page size, so only the "page" parameter
// is client-controlled.
package pagination

import (
	"net/http"
	"strconv"
)

// DefaultPage is the starting page (1-indexed).
const DefaultPage = 1

// Params holds the requested page and the fixed page size for a listing.
type Params struct {
	Page  int
	Limit int
}

// FromRequest parses the "page" query parameter from an HTTP request.
//
// # Clamping
//
// Missing, invalid, or non-positive page values fall back to [DefaultPage].
// Upper-bound clamping requires the total row count and happens later via
// [Params.Clamp].
func FromRequest(r *http.Request, limit int) Params {
	page := DefaultPage
	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 {
			page = n
		}
	}
	return Params{Page: page, Limit: limit}
}

// Clamp snaps an out-of-range page to the nearest valid page for the given
// total item count and returns the adjusted params.
//
// A request beyond the last page lands on the last page rather than producing
// an empty result or an error. An empty result set keeps page 1.
func (p Params) Clamp(total int) Params {
	last := TotalPages(total, p.Limit)
	if last < 1 {
		last = 1
	}
	if p.Page > last {
		p.Page = last
	}
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	return p
}

// Offset returns the SQL OFFSET value derived from Page and Limit.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// TotalPages computes the page count for a total item count and page size.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta constructs pagination metadata for a response.
func NewMeta(p Params, total int) Meta {
	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: TotalPages(total, p.Limit),
	}
}
