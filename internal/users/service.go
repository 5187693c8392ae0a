package users

import (
	"context"

	"github.com/brewthree/brewpos-backend/pkg/db/models"
	"github.com/brewthree/brewpos-backend/pkg/enums"
	"github.com/brewthree/brewpos-backend/pkg/errors"
	"github.com/brewthree/brewpos-backend/pkg/logger"
	"github.com/brewthree/brewpos-backend/pkg/security"
)

// Service manages user accounts and credential checks.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
}

// RegisterInput carries a new account request.
type RegisterInput struct {
	Username    string `json:"username" validate:"required,min=3,max=64"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"max=255"`
}

type Params struct {
	Repo   Repository
	Hasher *security.Hasher
	Log    *logger.Logger
}

type service struct {
	repo   Repository
	hasher *security.Hasher
	log    *logger.Logger
}

func NewService(p Params) (Service, error) {
	if p.Repo == nil {
		return nil, errors.New(errors.CodeInternal, "users: repo is required")
	}
	if p.Hasher == nil {
		return nil, errors.New(errors.CodeInternal, "users: hasher is required")
	}
	if p.Log == nil {
		return nil, errors.New(errors.CodeInternal, "users: logger is required")
	}
	return &service{repo: p.Repo, hasher: p.Hasher, log: p.Log}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     input.Username,
		PasswordHash: hash,
		DisplayName:  input.DisplayName,
		Role:         enums.UserRoleCustomer,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	ctx = s.log.WithUserID(ctx, user.ID)
	s.log.Info(ctx, "user registered")
	return user, nil
}

// Authenticate returns the user when the credentials match. A missing user
// and a wrong password are indistinguishable to the caller.
func (s *service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if typed := errors.As(err); typed != nil && typed.Code() == errors.CodeNotFound {
			return nil, errors.New(errors.CodeUnauthorized, "invalid credentials")
		}
		return nil, err
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New(errors.CodeUnauthorized, "invalid credentials")
	}
	return user, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}
