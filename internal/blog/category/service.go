// Copyright (c) 2026 Inkwell. All rights reserved.

package category

import (
	"context"

	"github.com/inkwell-app/inkwell/pkg/slug"
	"github.com/inkwell-app/inkwell/pkg/uuid"
)

type Service struct {
	repository Repository
}

func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

func (service *Service) List(context context.Context) ([]*Category, error) {
	categories, err := service.repository.ListAll(context)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []*Category{}
	}
	return categories, nil
}

func (service *Service) GetBySlug(context context.Context, categorySlug string) (*Category, error) {
	return service.repository.FindBySlug(context, categorySlug)
}

// Create derives the slug from the name once. A taken name or slug is a
// Conflict; there is no suffix disambiguation for categories.
func (service *Service) Create(context context.Context, name, description string) (*Category, error) {
	category := &Category{
		ID:          uuid.New(),
		Name:        name,
		Slug:        slug.From(name),
		Description: description,
	}

	if err := service.repository.Create(context, category); err != nil {
		return nil, err
	}

	return category, nil
}
