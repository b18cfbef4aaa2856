// Copyright (c) 2026 Inkwell. All rights reserved.

package tag

import (
	"context"

	"github.com/inkwell-app/inkwell/internal/platform/constants"
	"github.com/inkwell-app/inkwell/pkg/slug"
	"github.com/inkwell-app/inkwell/pkg/uuid"
)

type Service struct {
	repository Repository
}

func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

func (service *Service) List(context context.Context) ([]*Tag, error) {
	tags, err := service.repository.ListAll(context)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []*Tag{}
	}
	return tags, nil
}

// ListPopular returns the most used tags across published posts.
func (service *Service) ListPopular(context context.Context) ([]*Tag, error) {
	tags, err := service.repository.ListPopular(context, constants.PopularTagLimit)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []*Tag{}
	}
	return tags, nil
}

func (service *Service) GetBySlug(context context.Context, tagSlug string) (*Tag, error) {
	return service.repository.FindBySlug(context, tagSlug)
}

// Create derives the slug from the name once; taken names are a Conflict.
func (service *Service) Create(context context.Context, name string) (*Tag, error) {
	tag := &Tag{
		ID:   uuid.New(),
		Name: name,
		Slug: slug.From(name),
	}

	if err := service.repository.Create(context, tag); err != nil {
		return nil, err
	}

	return tag, nil
}
