// Copyright (c) 2026 Inkwell. All rights reserved.

// Package slug derives ASCII URL slugs from arbitrary Unicode strings.
//
// # Usage
//
// Slugs are the public identifiers for posts, categories, and tags
// (e.g. "hello-world", "go-tips"). This package only handles textual
// normalization; uniqueness is the caller's concern.
package slug

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// multiHyphen collapses runs of consecutive hyphens into one.
var multiHyphen = regexp.MustCompile(`-{2,}`)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// # Transformation Pipeline
//
//  1. Decompose to NFD and strip combining marks (é → e).
//  2. Lowercase.
//  3. Replace every non-alphanumeric rune with a hyphen.
//  4. Collapse hyphen runs and trim leading/trailing hyphens.
func From(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	ascii, _, _ := transform.String(t, s)

	ascii = strings.ToLower(ascii)

	var b strings.Builder
	b.Grow(len(ascii))
	for _, r := range ascii {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}

	out := multiHyphen.ReplaceAllString(b.String(), "-")
	return strings.Trim(out, "-")
}

// WithSuffix returns the n-th disambiguation candidate for a base slug.
// WithSuffix("hello-world", 0) is the base itself; n=1 yields "hello-world-1".
func WithSuffix(base string, n int) string {
	if n <= 0 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}
