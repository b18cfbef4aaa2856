// Copyright (c) 2026 Inkwell. All rights reserved.

package tag

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-app/inkwell/internal/platform/middleware"
	requestutil "github.com/inkwell-app/inkwell/internal/platform/request"
	"github.com/inkwell-app/inkwell/internal/platform/respond"
	"github.com/inkwell-app/inkwell/internal/platform/validate"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the tag routes. The post-listing handler is injected so
// /{slug}/posts can live here without importing the post domain.
//
// # Endpoints
//   - GET  /             : All tags.
//   - GET  /popular      : Most used tags on published posts.
//   - GET  /{slug}       : Single tag.
//   - GET  /{slug}/posts : Published posts carrying the tag.
//   - POST /             : Create (authenticated).
func (handler *Handler) Routes(listPosts http.HandlerFunc) chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/popular", handler.popular)
	router.Get("/{slug}", handler.get)
	router.Get("/{slug}/posts", listPosts)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.create)
	})

	return router
}

type createRequest struct {
	Name string `json:"name"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	tags, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tags)
}

func (handler *Handler) popular(writer http.ResponseWriter, request *http.Request) {
	tags, err := handler.service.ListPopular(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tags)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	tag, err := handler.service.GetBySlug(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tag)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required("name", input.Name).MaxLen("name", input.Name, 50)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tag, err := handler.service.Create(request.Context(), input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, tag)
}
