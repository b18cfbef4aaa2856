// Copyright (c) 2026 Inkwell. All rights reserved.

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwell-app/inkwell/pkg/slug"
)

/*
TestFrom verifies the normalization pipeline for common title shapes.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple_title", "Hello World", "hello-world"},
		{"punctuation", "Go, Postgres & You!", "go-postgres-you"},
		{"accents", "Café Périphérique", "cafe-peripherique"},
		{"numbers", "Top 10 Posts of 2026", "top-10-posts-of-2026"},
		{"consecutive_separators", "a  --  b", "a-b"},
		{"leading_trailing", "  ...spaces...  ", "spaces"},
		{"already_slug", "already-a-slug", "already-a-slug"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}

/*
TestWithSuffix verifies disambiguation candidates advance deterministically.
*/
func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "hello-world", slug.WithSuffix("hello-world", 0))
	assert.Equal(t, "hello-world-1", slug.WithSuffix("hello-world", 1))
	assert.Equal(t, "hello-world-2", slug.WithSuffix("hello-world", 2))
}
