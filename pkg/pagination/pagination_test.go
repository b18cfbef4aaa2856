// Copyright (c) 2026 Inkwell. All rights reserved.

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwell-app/inkwell/pkg/pagination"
)

/*
TestFromRequest verifies query parsing with fallback defaults.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantPage int
	}{
		{"missing", "/posts", 1},
		{"explicit", "/posts?page=3", 3},
		{"zero", "/posts?page=0", 1},
		{"negative", "/posts?page=-2", 1},
		{"garbage", "/posts?page=abc", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			p := pagination.FromRequest(r, 9)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, 9, p.Limit)
		})
	}
}

/*
TestClamp verifies out-of-range pages snap to the nearest valid page.

20 items at page size 9 give pages 1-3; page 4 must land on page 3.
*/
func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		total    int
		wantPage int
	}{
		{"in_range", 2, 20, 2},
		{"last_page", 3, 20, 3},
		{"past_end", 4, 20, 3},
		{"far_past_end", 99, 20, 3},
		{"empty_set", 5, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pagination.Params{Page: tt.page, Limit: 9}.Clamp(tt.total)
			assert.Equal(t, tt.wantPage, p.Page)
		})
	}
}

/*
TestOffset verifies the SQL offset derivation.
*/
func TestOffset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 9}.Offset())
	assert.Equal(t, 18, pagination.Params{Page: 3, Limit: 9}.Offset())
}

/*
TestNewMeta verifies total page computation in response metadata.
*/
func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(pagination.Params{Page: 3, Limit: 9}, 20)
	assert.Equal(t, 3, meta.Page)
	assert.Equal(t, 20, meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
}
