// Copyright (c) 2026 Inkwell. All rights reserved.

package post_test

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-app/inkwell/internal/blog/post"
	"github.com/inkwell-app/inkwell/internal/platform/apperr"
)

// # In-Memory Fake Repository

// fakeRepository mimics the Postgres store, including the slug unique index:
// Create returns a real pgconn unique-violation when the slug is taken, so
// the service's retry loop is exercised against the same error shape the
// driver produces.
type fakeRepository struct {
	posts map[string]*post.Post // keyed by ID
	slugs map[string]bool

	// reservedSlugs simulates concurrent writers: these slugs pass the
	// SlugExists probe but fail at insert time.
	reservedSlugs map[string]bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		posts:         map[string]*post.Post{},
		slugs:         map[string]bool{},
		reservedSlugs: map[string]bool{},
	}
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "post_slug_key"}
}

func (f *fakeRepository) matches(p *post.Post, filter post.Filter) bool {
	if filter.Status != "" && p.Status != filter.Status {
		return false
	}
	if filter.AuthorID != "" && p.AuthorID != filter.AuthorID {
		return false
	}
	if filter.CategorySlug != "" && (p.Category == nil || p.Category.Slug != filter.CategorySlug) {
		return false
	}
	if filter.TagSlug != "" {
		found := false
		for _, tag := range p.Tags {
			if tag.Slug == filter.TagSlug {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	if filter.Query != "" {
		q := strings.ToLower(filter.Query)
		haystack := strings.ToLower(p.Title + " " + p.Content)
		if filter.SearchExcerpt {
			haystack += " " + strings.ToLower(p.Excerpt)
		}
		if !strings.Contains(haystack, q) {
			return false
		}
	}
	return true
}

func (f *fakeRepository) filtered(filter post.Filter) []*post.Post {
	var result []*post.Post
	for _, p := range f.posts {
		if f.matches(p, filter) {
			result = append(result, p)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		switch filter.Order {
		case post.OrderPopular:
			return a.Views > b.Views
		case post.OrderTitle:
			return a.Title < b.Title
		default:
			at, bt := a.PublishedAt, b.PublishedAt
			if at == nil && bt == nil {
				return a.CreatedAt.After(b.CreatedAt)
			}
			if at == nil {
				return false
			}
			if bt == nil {
				return true
			}
			return at.After(*bt)
		}
	})

	return result
}

func (f *fakeRepository) List(_ context.Context, filter post.Filter, limit, offset int) ([]*post.Post, error) {
	all := f.filtered(filter)
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeRepository) Count(_ context.Context, filter post.Filter) (int, error) {
	return len(f.filtered(filter)), nil
}

func (f *fakeRepository) FindBySlug(_ context.Context, slug string) (*post.Post, []post.CommentRef, error) {
	for _, p := range f.posts {
		if p.Slug == slug {
			clone := *p
			return &clone, []post.CommentRef{}, nil
		}
	}
	return nil, nil, apperr.NotFound("Post")
}

func (f *fakeRepository) ListRelated(_ context.Context, categoryID, excludeID string, limit int) ([]*post.Post, error) {
	var related []*post.Post
	for _, p := range f.posts {
		if p.ID == excludeID || p.Status != post.StatusPublished {
			continue
		}
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			related = append(related, p)
		}
	}
	if len(related) > limit {
		related = related[:limit]
	}
	return related, nil
}

func (f *fakeRepository) Create(_ context.Context, p *post.Post) error {
	if f.slugs[p.Slug] || f.reservedSlugs[p.Slug] {
		return uniqueViolation()
	}
	clone := *p
	f.posts[p.ID] = &clone
	f.slugs[p.Slug] = true
	return nil
}

func (f *fakeRepository) Update(_ context.Context, p *post.Post) error {
	if _, ok := f.posts[p.ID]; !ok {
		return apperr.NotFound("Post")
	}
	clone := *p
	f.posts[p.ID] = &clone
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	p, ok := f.posts[id]
	if !ok {
		return apperr.NotFound("Post")
	}
	delete(f.slugs, p.Slug)
	delete(f.posts, id)
	return nil
}

func (f *fakeRepository) IncrementViews(_ context.Context, id string) error {
	if p, ok := f.posts[id]; ok && p.Status == post.StatusPublished {
		p.Views++
	}
	return nil
}

func (f *fakeRepository) SlugExists(_ context.Context, slug string) (bool, error) {
	return f.slugs[slug], nil
}

func (f *fakeRepository) CountByAuthorStatus(_ context.Context, authorID string) (int, int, error) {
	drafts, published := 0, 0
	for _, p := range f.posts {
		if p.AuthorID != authorID {
			continue
		}
		if p.Status == post.StatusDraft {
			drafts++
		} else {
			published++
		}
	}
	return drafts, published, nil
}

// # Slug Assignment

/*
TestService_Create_SlugSuffixing verifies the -1, -2 probing sequence for
colliding titles.
*/
func TestService_Create_SlugSuffixing(t *testing.T) {
	repo := newFakeRepository()
	service := post.NewService(repo)

	first, err := service.Create(context.Background(), "author-1", post.WriteInput{
		Title: "Hello World", Content: "a",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello-world", first.Slug)

	second, err := service.Create(context.Background(), "author-1", post.WriteInput{
		Title: "Hello World", Content: "b",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello-world-1", second.Slug)

	third, err := service.Create(context.Background(), "author-1", post.WriteInput{
		Title: "Hello World!", Content: "c",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello-world-2", third.Slug)
}

/*
TestService_Create_SlugRaceRetry simulates a concurrent writer grabbing the
probed slug between the existence check and the insert. The unique violation
must trigger a retry with the next suffix, not an error.
*/
func TestService_Create_SlugRaceRetry(t *testing.T) {
	repo := newFakeRepository()
	service := post.NewService(repo)

	// The probe sees "hello-world" as free, but the insert fails.
	repo.reservedSlugs["hello-world"] = true

	created, err := service.Create(context.Background(), "author-1", post.WriteInput{
		Title: "Hello World", Content: "a",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello-world-1", created.Slug)
}

/*
TestService_Update_SlugNeverRecomputed checks that a title change leaves the
slug untouched.
*/
func TestService_Update_SlugNeverRecomputed(t *testing.T) {
	repo := newFakeRepository()
	service := post.NewService(repo)

	created, err := service.Create(context.Background(), "author-1", post.WriteInput{
		Title: "Original Title", Content: "a",
	})
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), "author-1", created.Slug, post.WriteInput{
		Title: "Completely Different Title", Content: "a",
	})
	require.NoError(t, err)
	assert.Equal(t, "original-title", updated.Slug)
}

// # Publish Transition

/*
TestService_PublishStamp covers the one-time published_at stamping across
the draft/published lifecycle.
*/
func TestService_PublishStamp(t *testing.T) {
	repo := newFakeRepository()
	service := post.NewService(repo)

	draft, err := service.Create(context.Background(), "author-1", post.WriteInput{
		Title: "My Draft", Content: "a", Status: post.StatusDraft,
	})
	require.NoError(t, err)
	assert.Nil(t, draft.PublishedAt)

	// First publish stamps the timestamp.
	published, err := service.Update(context.Background(), "author-1", draft.Slug, post.WriteInput{
		Title: "My Draft", Content: "a", Status: post.StatusPublished,
	})
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
	firstStamp := *published.PublishedAt

	// Unpublish, wait, republish: the original stamp survives.
	_, err = service.Update(context.Background(), "author-1", draft.Slug, post.WriteInput{
		Title: "My Draft", Content: "a", Status: post.StatusDraft,
	})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	republished, err := service.Update(context.Background(), "author-1", draft.Slug, post.WriteInput{
		Title: "My Draft", Content: "a", Status: post.StatusPublished,
	})
	require.NoError(t, err)
	require.NotNil(t, republished.PublishedAt)
	assert.True(t, republished.PublishedAt.Equal(firstStamp))
}

/*
TestService_Create_BornPublished stamps published_at at creation time.
*/
func TestService_Create_BornPublished(t *testing.T) {
	repo := newFakeRepository()
	service := post.NewService(repo)

	created, err := service.Create(context.Background(), "author-1", post.WriteInput{
		Title: "Live Immediately", Content: "a", Status: post.StatusPublished,
	})
	require.NoError(t, err)
	assert.NotNil(t, created.PublishedAt)
}

// # View Counter

/*
TestService_GetBySlug_ViewCounting verifies one increment per resolved view
of a published post and none for drafts.
*/
func TestService_GetBySlug_ViewCounting(t *testing.T) {
	repo := newFakeRepository()
	service := post.NewService(repo)

	published, err := service.Create(context.Background(), "author-1", post.WriteInput{
		Title: "Popular Post", Content: "a", Status: post.StatusPublished,
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := service.GetBySlug(context.Background(), published.Slug, "")
		require.NoError(t, err)
	}
	assert.Equal(t, int64(3), repo.posts[published.ID].Views)

	// Author previews of a draft never count.
	draft, err := service.Create(context.Background(), "author-1", post.WriteInput{
		Title: "Secret Draft", Content: "a", Status: post.StatusDraft,
	})
	require.NoError(t, err)

	_, err = service.GetBySlug(context.Background(), draft.Slug, "author-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), repo.posts[draft.ID].Views)
}

/*
TestService_GetBySlug_DraftHidden hides drafts from everyone but the author.
*/
func TestService_GetBySlug_DraftHidden(t *testing.T) {
	repo := newFakeRepository()
	service := post.NewService(repo)

	draft, err := service.Create(context.Background(), "author-1", post.WriteInput{
		Title: "Secret Draft", Content: "a", Status: post.StatusDraft,
	})
	require.NoError(t, err)

	_, err = service.GetBySlug(context.Background(), draft.Slug, "other-user")
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))

	_, err = service.GetBySlug(context.Background(), draft.Slug, "")
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))

	detail, err := service.GetBySlug(context.Background(), draft.Slug, "author-1")
	require.NoError(t, err)
	assert.Equal(t, draft.ID, detail.Post.ID)
}

// # Authorization

/*
TestService_Update_ForbiddenForNonAuthor returns a 403-mapped error, not a
panic or a 500, when someone else tries to edit.
*/
func TestService_Update_ForbiddenForNonAuthor(t *testing.T) {
	repo := newFakeRepository()
	service := post.NewService(repo)

	created, err := service.Create(context.Background(), "author-1", post.WriteInput{
		Title: "Mine", Content: "a", Status: post.StatusPublished,
	})
	require.NoError(t, err)

	_, err = service.Update(context.Background(), "intruder", created.Slug, post.WriteInput{
		Title: "Hijacked", Content: "b",
	})
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))

	err = service.Delete(context.Background(), "intruder", created.Slug)
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))

	// The post is untouched.
	assert.Equal(t, "Mine", repo.posts[created.ID].Title)
}

// # Listings

func seedPublished(t *testing.T, service *post.Service, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		_, err := service.Create(context.Background(), "author-1", post.WriteInput{
			Title:   "Post " + string(rune('A'+i)),
			Content: "body",
			Status:  post.StatusPublished,
		})
		require.NoError(t, err)
	}
}

/*
TestService_ListPublic_PageClamping requests a page past the end and expects
the last valid page instead of an error or an empty result.
*/
func TestService_ListPublic_PageClamping(t *testing.T) {
	repo := newFakeRepository()
	service := post.NewService(repo)
	seedPublished(t, service, 20) // page size 9: pages 1..3

	posts, meta, err := service.ListPublic(context.Background(), post.ListInput{Page: 7})
	require.NoError(t, err)

	assert.Equal(t, 3, meta.Page)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 20, meta.Total)
	assert.Len(t, posts, 2) // 20 - 2*9
}

/*
TestService_ListPublic_ExcludesDrafts keeps drafts out of the public index.
*/
func TestService_ListPublic_ExcludesDrafts(t *testing.T) {
	repo := newFakeRepository()
	service := post.NewService(repo)

	_, err := service.Create(context.Background(), "author-1", post.WriteInput{
		Title: "Visible", Content: "a", Status: post.StatusPublished,
	})
	require.NoError(t, err)
	_, err = service.Create(context.Background(), "author-1", post.WriteInput{
		Title: "Hidden", Content: "a", Status: post.StatusDraft,
	})
	require.NoError(t, err)

	posts, meta, err := service.ListPublic(context.Background(), post.ListInput{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, meta.Total)
	require.Len(t, posts, 1)
	assert.Equal(t, "Visible", posts[0].Title)
}

/*
TestService_ListByAuthor_StatusFilter restricts the filter to the known
lifecycle states; anything else means all.
*/
func TestService_ListByAuthor_StatusFilter(t *testing.T) {
	repo := newFakeRepository()
	service := post.NewService(repo)

	_, err := service.Create(context.Background(), "author-1", post.WriteInput{
		Title: "Draft One", Content: "a", Status: post.StatusDraft,
	})
	require.NoError(t, err)
	_, err = service.Create(context.Background(), "author-1", post.WriteInput{
		Title: "Live One", Content: "a", Status: post.StatusPublished,
	})
	require.NoError(t, err)

	tests := []struct {
		name      string
		status    post.Status
		wantTotal int
	}{
		{"drafts_only", post.StatusDraft, 1},
		{"published_only", post.StatusPublished, 1},
		{"unknown_means_all", post.Status("archived"), 2},
		{"empty_means_all", post.Status(""), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, meta, err := service.ListByAuthor(context.Background(), "author-1", post.AuthorListInput{
				Status: tt.status, Page: 1,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, meta.Total)
		})
	}
}

/*
TestService_GetAuthorStats returns the dashboard counters.
*/
func TestService_GetAuthorStats(t *testing.T) {
	repo := newFakeRepository()
	service := post.NewService(repo)

	for i := 0; i < 2; i++ {
		_, err := service.Create(context.Background(), "author-1", post.WriteInput{
			Title: "Draft " + string(rune('A'+i)), Content: "a", Status: post.StatusDraft,
		})
		require.NoError(t, err)
	}
	_, err := service.Create(context.Background(), "author-1", post.WriteInput{
		Title: "Live", Content: "a", Status: post.StatusPublished,
	})
	require.NoError(t, err)

	stats, err := service.GetAuthorStats(context.Background(), "author-1")
	require.NoError(t, err)
	assert.Equal(t, post.AuthorStats{Drafts: 2, Published: 1}, stats)
}
