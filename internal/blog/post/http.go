// Copyright (c) 2026 Inkwell. All rights reserved.

package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-app/inkwell/internal/platform/constants"
	"github.com/inkwell-app/inkwell/internal/platform/middleware"
	requestutil "github.com/inkwell-app/inkwell/internal/platform/request"
	"github.com/inkwell-app/inkwell/internal/platform/respond"
	"github.com/inkwell-app/inkwell/internal/platform/validate"
	"github.com/inkwell-app/inkwell/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the post HTTP endpoints.
type Handler struct {
	postService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{postService: service}
}

// Routes returns the public post routes plus the author-gated write path.
// The comment-creation handler is injected so the nested route lives under
// the post tree without a package dependency.
//
// # Endpoints
//   - GET  /                : Public listing (q, category, order, page).
//   - GET  /{slug}          : Post detail with comments and related posts.
//   - POST /                : Create (authenticated).
//   - PUT  /{slug}          : Update (author only).
//   - DELETE /{slug}        : Delete (author only).
//   - POST /{slug}/comments : Comment on a post (authenticated).
func (handler *Handler) Routes(createComment http.HandlerFunc) chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{slug}", handler.detail)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.create)
		r.Put("/{slug}", handler.update)
		r.Delete("/{slug}", handler.remove)
		r.Post("/{slug}/comments", createComment)
	})

	return router
}

// AuthorRoutes returns the "my posts" dashboard routes. The caller mounts
// these behind RequireAuth.
//
// # Endpoints
//   - GET /       : Author listing (status, q, page), drafts included.
//   - GET /stats  : Draft/published counters.
func (handler *Handler) AuthorRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.listMine)
	router.Get("/stats", handler.stats)

	return router
}

// # Request Payloads

type writeRequest struct {
	Title            string   `json:"title"`
	Content          string   `json:"content"`
	Excerpt          string   `json:"excerpt"`
	FeaturedImageURL string   `json:"featured_image_url"`
	CategoryID       *string  `json:"category_id"`
	Status           string   `json:"status"`
	TagIDs           []string `json:"tag_ids"`
}

// validateWrite enforces the shared field rules of the write path.
func validateWrite(input writeRequest) error {
	v := &validate.Validator{}
	v.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 200).
		Required(FieldContent, input.Content).
		MaxLen(FieldExcerpt, input.Excerpt, MaxExcerptLen)

	if input.Status != "" {
		v.OneOf(FieldStatus, input.Status, string(StatusDraft), string(StatusPublished))
	}

	return v.Err()
}

/*
List returns the public, published post index.

GET /api/v1/posts?q=&category=&order=&page=

Description: Optional case-insensitive search over title, content, and
excerpt; optional category filter; allow-listed ordering. Unknown order
values silently fall back to newest-first, and out-of-range pages clamp.

Response:
  - 200: Paginated envelope of posts
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	queryParams := request.URL.Query()

	posts, meta, err := handler.postService.ListPublic(request.Context(), ListInput{
		Query:        queryParams.Get("q"),
		CategorySlug: queryParams.Get("category"),
		Order:        Order(queryParams.Get("order")),
		Page:         pagination.FromRequest(request, constants.PublicPageSize).Page,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, meta)
}

/*
Detail returns a single post with its comments and related posts.

GET /api/v1/posts/{slug}

Description: Published posts are public and each resolved request counts one
view. Drafts resolve only for their author and are never counted.

Response:
  - 200: Detail: Post, comments, related posts
  - 404: ErrNotFound: Unknown slug or hidden draft
*/
func (handler *Handler) detail(writer http.ResponseWriter, request *http.Request) {
	viewerID := ""
	if claims := requestutil.Claims(request); claims != nil {
		viewerID = claims.UserID
	}

	detail, err := handler.postService.GetBySlug(request.Context(), requestutil.Param(request, "slug"), viewerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

/*
Create persists a new post for the authenticated author.

POST /api/v1/posts

Request:
  - Body: writeRequest (Title, Content, Excerpt, FeaturedImageURL, CategoryID, Status, TagIDs)

Response:
  - 201: Post: Created entity with its assigned slug
  - 400: ErrInvalidJSON: Validation failure
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input writeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := validateWrite(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.postService.Create(request.Context(), authorID, WriteInput{
		Title:            input.Title,
		Content:          input.Content,
		Excerpt:          input.Excerpt,
		FeaturedImageURL: input.FeaturedImageURL,
		CategoryID:       input.CategoryID,
		Status:           Status(input.Status),
		TagIDs:           input.TagIDs,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

/*
Update modifies an existing post.

PUT /api/v1/posts/{slug}

Description: Author only. The slug never changes, even when the title does.

Response:
  - 200: Post: Updated entity
  - 403: ErrForbidden: Not the author
  - 404: ErrNotFound: Unknown slug
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input writeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := validateWrite(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.postService.Update(request.Context(), authorID, requestutil.Param(request, "slug"), WriteInput{
		Title:            input.Title,
		Content:          input.Content,
		Excerpt:          input.Excerpt,
		FeaturedImageURL: input.FeaturedImageURL,
		CategoryID:       input.CategoryID,
		Status:           Status(input.Status),
		TagIDs:           input.TagIDs,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

/*
Remove permanently deletes a post.

DELETE /api/v1/posts/{slug}

Response:
  - 204: No Content: Post removed with its comments and tag links
  - 403: ErrForbidden: Not the author
  - 404: ErrNotFound: Unknown slug
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.postService.Delete(request.Context(), authorID, requestutil.Param(request, "slug")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
ListMine returns the authenticated author's own posts, drafts included.

GET /api/v1/me/posts?status=&q=&page=

Description: The status filter accepts draft or published; anything else
means all. The search covers title and content.

Response:
  - 200: Paginated envelope of posts
*/
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	queryParams := request.URL.Query()

	posts, meta, err := handler.postService.ListByAuthor(request.Context(), authorID, AuthorListInput{
		Status: Status(queryParams.Get("status")),
		Query:  queryParams.Get("q"),
		Page:   pagination.FromRequest(request, constants.AuthorPageSize).Page,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, meta)
}

/*
ListByCategory returns published posts in a category.

GET /api/v1/categories/{slug}/posts?page=

Response:
  - 200: Paginated envelope of posts
*/
func (handler *Handler) ListByCategory(writer http.ResponseWriter, request *http.Request) {
	posts, meta, err := handler.postService.ListByCategory(
		request.Context(),
		requestutil.Param(request, "slug"),
		pagination.FromRequest(request, constants.PublicPageSize).Page,
	)

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, meta)
}

/*
ListByTag returns published posts carrying a tag.

GET /api/v1/tags/{slug}/posts?page=

Response:
  - 200: Paginated envelope of posts
*/
func (handler *Handler) ListByTag(writer http.ResponseWriter, request *http.Request) {
	posts, meta, err := handler.postService.ListByTag(
		request.Context(),
		requestutil.Param(request, "slug"),
		pagination.FromRequest(request, constants.PublicPageSize).Page,
	)

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, meta)
}

/*
Stats returns the author's draft/published counters.

GET /api/v1/me/posts/stats

Response:
  - 200: AuthorStats: Dashboard counters
*/
func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stats, err := handler.postService.GetAuthorStats(request.Context(), authorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}
