package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/brewthree/brewpos-backend/pkg/db"
	"github.com/brewthree/brewpos-backend/pkg/db/models"
	"github.com/brewthree/brewpos-backend/pkg/enums"
	"github.com/brewthree/brewpos-backend/pkg/errors"
)

// Repository reads and writes catalog rows.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]models.Product, error)
	Find(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	SetAvailability(ctx context.Context, id int64, available bool) error
	CountAll(ctx context.Context) (int64, error)
	CountAvailable(ctx context.Context) (int64, error)
}

// ListFilter narrows a catalog listing.
type ListFilter struct {
	Category      *enums.ProductCategory
	OnlyAvailable bool
}

type repository struct {
	client *db.Client
}

func NewRepository(client *db.Client) Repository {
	return &repository{client: client}
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	query := r.client.DB(ctx).Model(&models.Product{})
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.OnlyAvailable {
		query = query.Where("is_available = ?", true)
	}

	var products []models.Product
	if err := query.Order("name asc").Find(&products).Error; err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "listing products")
	}
	return products, nil
}

func (r *repository) Find(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := r.client.DB(ctx).
		Preload("Ingredients").
		Preload("Ingredients.Ingredient").
		First(&product, id).Error
	if db.IsNotFound(err) {
		return nil, errors.New(errors.CodeNotFound, "product not found")
	}
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "finding product")
	}
	return &product, nil
}

func (r *repository) Create(ctx context.Context, product *models.Product) error {
	if err := r.client.DB(ctx).Create(product).Error; err != nil {
		return errors.Wrap(errors.CodeDependency, err, "creating product")
	}
	return nil
}

func (r *repository) Update(ctx context.Context, product *models.Product) error {
	if err := r.client.DB(ctx).Save(product).Error; err != nil {
		return errors.Wrap(errors.CodeDependency, err, "updating product")
	}
	return nil
}

func (r *repository) SetAvailability(ctx context.Context, id int64, available bool) error {
	result := r.client.DB(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("is_available", available)
	if result.Error != nil {
		return errors.Wrap(errors.CodeDependency, result.Error, "updating availability")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.CodeNotFound, "product not found")
	}
	return nil
}

func (r *repository) CountAll(ctx context.Context) (int64, error) {
	return r.count(ctx, r.client.DB(ctx).Model(&models.Product{}))
}

func (r *repository) CountAvailable(ctx context.Context) (int64, error) {
	return r.count(ctx, r.client.DB(ctx).Model(&models.Product{}).Where("is_available = ?", true))
}

func (r *repository) count(_ context.Context, query *gorm.DB) (int64, error) {
	var n int64
	if err := query.Count(&n).Error; err != nil {
		return 0, errors.Wrap(errors.CodeDependency, err, "counting products")
	}
	return n, nil
}
