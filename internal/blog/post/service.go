// Copyright (c) 2026 Inkwell. All rights reserved.

package post

import (
	"context"
	"fmt"
	"time"

	"github.com/inkwell-app/inkwell/internal/platform/apperr"
	"github.com/inkwell-app/inkwell/internal/platform/constants"
	"github.com/inkwell-app/inkwell/internal/platform/dberr"
	"github.com/inkwell-app/inkwell/pkg/pagination"
	"github.com/inkwell-app/inkwell/pkg/slug"
	"github.com/inkwell-app/inkwell/pkg/uuid"
)

// maxSlugCreateRetries bounds the insert retry loop when concurrent writers
// race for the same slug. Each retry advances the suffix counter, so the
// loop terminates even under sustained contention.
const maxSlugCreateRetries = 5

// # Service

// Service implements the post use cases: listings, detail assembly, and the
// author-gated write path.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service] over the given repository.
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// # Listings

// ListInput carries the public listing query parameters.
type ListInput struct {
	Query        string
	CategorySlug string
	Order        Order
	Page         int
}

// AuthorListInput carries the "my posts" listing query parameters.
type AuthorListInput struct {
	Status Status
	Query  string
	Page   int
}

// AuthorStats summarizes the author's dashboard counters.
type AuthorStats struct {
	Drafts    int `json:"drafts"`
	Published int `json:"published"`
}

/*
ListPublic returns a page of published posts for the public index.

Description: Applies the optional substring search (title, content, excerpt)
and category filter, orders by the allow-listed sort key, and clamps
out-of-range pages to the nearest valid page instead of failing.

Parameters:
  - context: context.Context
  - input: ListInput

Returns:
  - []*Post: Page of hydrated posts
  - pagination.Meta: Page metadata after clamping
  - err: Storage failures
*/
func (service *Service) ListPublic(context context.Context, input ListInput) ([]*Post, pagination.Meta, error) {
	filter := Filter{
		Status:        StatusPublished,
		CategorySlug:  input.CategorySlug,
		Query:         input.Query,
		SearchExcerpt: true,
		Order:         input.Order,
	}

	return service.listPage(context, filter, input.Page, constants.PublicPageSize)
}

/*
ListByAuthor returns a page of the author's own posts, drafts included.

Description: The status filter only accepts the known lifecycle states;
anything else means "all". The search is narrower than the public one
(title and content only).

Parameters:
  - context: context.Context
  - authorID: string
  - input: AuthorListInput

Returns:
  - []*Post: Page of hydrated posts
  - pagination.Meta: Page metadata after clamping
  - err: Storage failures
*/
func (service *Service) ListByAuthor(context context.Context, authorID string, input AuthorListInput) ([]*Post, pagination.Meta, error) {
	filter := Filter{
		AuthorID: authorID,
		Query:    input.Query,
	}

	// Unknown status values silently drop the filter.
	if input.Status.IsValid() {
		filter.Status = input.Status
	}

	return service.listPage(context, filter, input.Page, constants.AuthorPageSize)
}

/*
ListByCategory returns a page of published posts in the given category.

Parameters:
  - context: context.Context
  - categorySlug: string
  - page: int

Returns:
  - []*Post: Page of hydrated posts
  - pagination.Meta: Page metadata after clamping
  - err: Storage failures
*/
func (service *Service) ListByCategory(context context.Context, categorySlug string, page int) ([]*Post, pagination.Meta, error) {
	filter := Filter{
		Status:       StatusPublished,
		CategorySlug: categorySlug,
	}

	return service.listPage(context, filter, page, constants.PublicPageSize)
}

/*
ListByTag returns a page of published posts carrying the given tag.

Parameters:
  - context: context.Context
  - tagSlug: string
  - page: int

Returns:
  - []*Post: Page of hydrated posts
  - pagination.Meta: Page metadata after clamping
  - err: Storage failures
*/
func (service *Service) ListByTag(context context.Context, tagSlug string, page int) ([]*Post, pagination.Meta, error) {
	filter := Filter{
		Status:  StatusPublished,
		TagSlug: tagSlug,
	}

	return service.listPage(context, filter, page, constants.PublicPageSize)
}

// listPage runs the count-clamp-list sequence shared by every listing.
func (service *Service) listPage(context context.Context, filter Filter, page, limit int) ([]*Post, pagination.Meta, error) {
	total, err := service.repository.Count(context, filter)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	params := pagination.Params{Page: page, Limit: limit}.Clamp(total)

	posts, err := service.repository.List(context, filter, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	if posts == nil {
		posts = []*Post{}
	}

	return posts, pagination.NewMeta(params, total), nil
}

/*
GetAuthorStats returns the author's draft/published counters.

Parameters:
  - context: context.Context
  - authorID: string

Returns:
  - AuthorStats: Dashboard counters
  - err: Storage failures
*/
func (service *Service) GetAuthorStats(context context.Context, authorID string) (AuthorStats, error) {
	drafts, published, err := service.repository.CountByAuthorStatus(context, authorID)
	if err != nil {
		return AuthorStats{}, err
	}
	return AuthorStats{Drafts: drafts, Published: published}, nil
}

// # Detail

// Detail is the assembled post detail view.
type Detail struct {
	Post     *Post        `json:"post"`
	Comments []CommentRef `json:"comments"`
	Related  []*Post      `json:"related"`
}

/*
GetBySlug assembles the post detail view.

Description: Resolves the post, enforces draft visibility (author only),
bumps the view counter for published posts, and attaches up to 3 related
published posts from the same category. The increment happens exactly once
per resolved request; concurrent viewers are all counted.

Parameters:
  - context: context.Context
  - slug: string
  - viewerID: string (empty for anonymous)

Returns:
  - *Detail: Post, comments, and related posts
  - err: apperr.NotFound (unknown slug or hidden draft) or storage failures
*/
func (service *Service) GetBySlug(context context.Context, postSlug, viewerID string) (*Detail, error) {
	found, comments, err := service.repository.FindBySlug(context, postSlug)
	if err != nil {
		return nil, err
	}

	// Drafts are indistinguishable from missing posts for everyone but the
	// author, to avoid leaking their existence.
	if !found.CanView(viewerID) {
		return nil, apperr.NotFound("Post")
	}

	if found.Status == StatusPublished {
		if err := service.repository.IncrementViews(context, found.ID); err != nil {
			return nil, fmt.Errorf("post_service_increment_views_failed: %w", err)
		}
		found.Views++
	}

	detail := &Detail{
		Post:     found,
		Comments: comments,
		Related:  []*Post{},
	}

	if found.Status == StatusPublished && found.CategoryID != nil {
		related, err := service.repository.ListRelated(context, *found.CategoryID, found.ID, constants.RelatedPostLimit)
		if err != nil {
			return nil, err
		}
		if related != nil {
			detail.Related = related
		}
	}

	return detail, nil
}

// # Write Path

// WriteInput carries the mutable post fields for create and update.
type WriteInput struct {
	Title            string
	Content          string
	Excerpt          string
	FeaturedImageURL string
	CategoryID       *string
	Status           Status
	TagIDs           []string
}

/*
Create persists a new post for the author.

Description: Derives the slug from the title (probing -1, -2, ... until
free), stamps published_at when the post is born published, and retries the
insert on slug unique violations with the next candidate suffix. The
database unique index remains the hard gate under concurrency.

Parameters:
  - context: context.Context
  - authorID: string
  - input: WriteInput

Returns:
  - *Post: Created entity
  - err: Conflict (slug space exhausted) or storage failures
*/
func (service *Service) Create(context context.Context, authorID string, input WriteInput) (*Post, error) {
	newPost := &Post{
		ID:               uuid.New(),
		Title:            input.Title,
		AuthorID:         authorID,
		Content:          input.Content,
		Excerpt:          input.Excerpt,
		FeaturedImageURL: input.FeaturedImageURL,
		CategoryID:       input.CategoryID,
		Status:           input.Status,
		TagIDs:           input.TagIDs,
	}

	if !newPost.Status.IsValid() {
		newPost.Status = StatusDraft
	}

	stampPublishedAtIfTransitioning(newPost)

	baseSlug := slug.From(input.Title)
	candidate, suffix, err := service.probeSlug(context, baseSlug)
	if err != nil {
		return nil, err
	}
	newPost.Slug = candidate

	// The probe can lose a race to a concurrent writer; the unique index
	// reports it and we advance to the next suffix.
	for attempt := 0; attempt < maxSlugCreateRetries; attempt++ {
		err := service.repository.Create(context, newPost)
		if err == nil {
			return newPost, nil
		}
		if !dberr.IsUniqueViolation(err) {
			return nil, err
		}
		suffix++
		newPost.Slug = slug.WithSuffix(baseSlug, suffix)
	}

	return nil, apperr.Conflict("Could not assign a unique slug for this title")
}

// probeSlug finds the first free slug candidate, returning it together with
// the suffix counter it stopped at.
func (service *Service) probeSlug(context context.Context, baseSlug string) (string, int, error) {
	candidate := baseSlug
	suffix := 0

	for {
		exists, err := service.repository.SlugExists(context, candidate)
		if err != nil {
			return "", 0, err
		}
		if !exists {
			return candidate, suffix, nil
		}
		suffix++
		candidate = slug.WithSuffix(baseSlug, suffix)
	}
}

/*
Update modifies an existing post owned by the author.

Description: The slug is never recomputed, even when the title changes.
published_at is stamped on the first transition to published and survives
unpublish/republish cycles.

Parameters:
  - context: context.Context
  - authorID: string
  - slug: string
  - input: WriteInput

Returns:
  - *Post: Updated entity
  - err: apperr.NotFound, apperr.Forbidden, or storage failures
*/
func (service *Service) Update(context context.Context, authorID, postSlug string, input WriteInput) (*Post, error) {
	existing, _, err := service.repository.FindBySlug(context, postSlug)
	if err != nil {
		return nil, err
	}

	if !existing.CanEdit(authorID) {
		return nil, apperr.Forbidden("Only the author may edit this post")
	}

	existing.Title = input.Title
	existing.Content = input.Content
	existing.Excerpt = input.Excerpt
	existing.FeaturedImageURL = input.FeaturedImageURL
	existing.CategoryID = input.CategoryID
	existing.TagIDs = input.TagIDs

	if input.Status.IsValid() {
		existing.Status = input.Status
	}

	stampPublishedAtIfTransitioning(existing)

	if err := service.repository.Update(context, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

/*
Delete permanently removes a post owned by the author.

Parameters:
  - context: context.Context
  - authorID: string
  - slug: string

Returns:
  - err: apperr.NotFound, apperr.Forbidden, or storage failures
*/
func (service *Service) Delete(context context.Context, authorID, postSlug string) error {
	existing, _, err := service.repository.FindBySlug(context, postSlug)
	if err != nil {
		return err
	}

	if !existing.CanDelete(authorID) {
		return apperr.Forbidden("Only the author may delete this post")
	}

	return service.repository.Delete(context, existing.ID)
}

// stampPublishedAtIfTransitioning sets published_at the first time a post
// becomes published. It never resets, so unpublish/republish keeps the
// original publication date.
func stampPublishedAtIfTransitioning(p *Post) {
	if p.Status == StatusPublished && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}
}
