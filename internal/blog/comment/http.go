// Copyright (c) 2026 Inkwell. All rights reserved.

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-app/inkwell/internal/platform/middleware"
	requestutil "github.com/inkwell-app/inkwell/internal/platform/request"
	"github.com/inkwell-app/inkwell/internal/platform/respond"
	"github.com/inkwell-app/inkwell/internal/platform/validate"
)

// Handler implements the comment HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new comment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the standalone comment routes.
//
// # Endpoints
//   - DELETE /{id} : Remove a comment (comment author or post author).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Delete("/{id}", handler.remove)

	return router
}

type createRequest struct {
	Body string `json:"body"`
}

/*
CreateForPost attaches a comment to a post. Exported so the post router can
nest it at its natural path.

POST /api/v1/posts/{slug}/comments

Request:
  - Body: createRequest (Body)

Response:
  - 201: Comment: The stored comment
  - 404: ErrNotFound: Unknown slug or hidden draft
*/
func (handler *Handler) CreateForPost(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required("body", input.Body).MaxLen("body", input.Body, MaxBodyLen)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), requestutil.Param(request, "slug"), authorID, input.Body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

/*
Remove deletes a comment.

DELETE /api/v1/comments/{id}

Response:
  - 204: No Content
  - 403: ErrForbidden: Neither comment author nor post author
  - 404: ErrNotFound: Unknown ID
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "id"), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
