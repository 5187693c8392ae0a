package users

import (
	"context"

	"github.com/brewthree/brewpos-backend/pkg/db"
	"github.com/brewthree/brewpos-backend/pkg/db/models"
	"github.com/brewthree/brewpos-backend/pkg/errors"
)

// Repository reads and writes user accounts.
type Repository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

type repository struct {
	client *db.Client
}

func NewRepository(client *db.Client) Repository {
	return &repository{client: client}
}

func (r *repository) Create(ctx context.Context, user *models.User) error {
	err := r.client.DB(ctx).Create(user).Error
	if db.IsUniqueViolation(err) {
		return errors.New(errors.CodeConflict, "username already taken")
	}
	if err != nil {
		return errors.Wrap(errors.CodeDependency, err, "creating user")
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.client.DB(ctx).First(&user, id).Error
	if db.IsNotFound(err) {
		return nil, errors.New(errors.CodeNotFound, "user not found")
	}
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "finding user")
	}
	return &user, nil
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.client.DB(ctx).Where("username = ?", username).First(&user).Error
	if db.IsNotFound(err) {
		return nil, errors.New(errors.CodeNotFound, "user not found")
	}
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "finding user")
	}
	return &user, nil
}
