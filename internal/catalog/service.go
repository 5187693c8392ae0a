package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/brewthree/brewpos-backend/pkg/db/models"
	"github.com/brewthree/brewpos-backend/pkg/enums"
	"github.com/brewthree/brewpos-backend/pkg/errors"
	"github.com/brewthree/brewpos-backend/pkg/logger"
)

// Service exposes the product catalog to the API and the cart.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, input CreateInput) (*models.Product, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*models.Product, error)
	SetAvailability(ctx context.Context, id int64, available bool) error
}

// CreateInput carries a new catalog entry.
type CreateInput struct {
	Name        string                `json:"name" validate:"required,max=255"`
	Description string                `json:"description"`
	Category    enums.ProductCategory `json:"category" validate:"required"`
	Price       decimal.Decimal       `json:"price"`
	ImagePath   string                `json:"image_path"`
}

// UpdateInput carries catalog edits. Nil fields are left untouched.
type UpdateInput struct {
	Name        *string                `json:"name" validate:"omitempty,max=255"`
	Description *string                `json:"description"`
	Category    *enums.ProductCategory `json:"category"`
	Price       *decimal.Decimal       `json:"price"`
	ImagePath   *string                `json:"image_path"`
}

type Params struct {
	Repo Repository
	Log  *logger.Logger
}

type service struct {
	repo Repository
	log  *logger.Logger
}

func NewService(p Params) (Service, error) {
	if p.Repo == nil {
		return nil, errors.New(errors.CodeInternal, "catalog: repo is required")
	}
	if p.Log == nil {
		return nil, errors.New(errors.CodeInternal, "catalog: logger is required")
	}
	return &service{repo: p.Repo, log: p.Log}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Get(ctx context.Context, id int64) (*models.Product, error) {
	return s.repo.Find(ctx, id)
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Product, error) {
	if !input.Category.IsValid() {
		return nil, errors.New(errors.CodeValidation, "invalid product category")
	}
	if input.Price.IsNegative() {
		return nil, errors.New(errors.CodeValidation, "price must not be negative")
	}

	product := &models.Product{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		ImagePath:   input.ImagePath,
		IsAvailable: true,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	ctx = s.log.WithField(ctx, "product_id", product.ID)
	s.log.Info(ctx, "product created")
	return product, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*models.Product, error) {
	product, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, errors.New(errors.CodeValidation, "invalid product category")
		}
		product.Category = *input.Category
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, errors.New(errors.CodeValidation, "price must not be negative")
		}
		product.Price = *input.Price
	}
	if input.ImagePath != nil {
		product.ImagePath = *input.ImagePath
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *service) SetAvailability(ctx context.Context, id int64, available bool) error {
	if err := s.repo.SetAvailability(ctx, id, available); err != nil {
		return err
	}
	ctx = s.log.WithFields(ctx, map[string]any{"product_id": id, "available": available})
	s.log.Info(ctx, "product availability changed")
	return nil
}
