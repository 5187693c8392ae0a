package orders

import (
	"context"

	"github.com/brewthree/brewpos-backend/pkg/db/models"
	"github.com/brewthree/brewpos-backend/pkg/errors"
	"github.com/brewthree/brewpos-backend/pkg/logger"
)

// Service exposes order lookups and closure to the API.
type Service interface {
	Get(ctx context.Context, id int64) (*models.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	Close(ctx context.Context, id int64) error
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
		return nil, errors.New(errors.CodeInternal, "orders: repo is required")
	}
	if p.Log == nil {
		return nil, errors.New(errors.CodeInternal, "orders: logger is required")
	}
	return &service{repo: p.Repo, log: p.Log}, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Order, error) {
	return s.repo.Find(ctx, id)
}

func (s *service) ListByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.repo.ListAll(ctx)
}

// Close removes a picked-up order and its items. Only terminal orders can be
// closed.
func (s *service) Close(ctx context.Context, id int64) error {
	order, err := s.repo.Find(ctx, id)
	if err != nil {
		return err
	}
	if !order.Status.IsTerminal() {
		return errors.New(errors.CodeStateConflict, "only ready orders can be closed").
			WithDetails(map[string]any{"status": order.Status})
	}

	if err := s.repo.DeleteWithItems(ctx, id); err != nil {
		return err
	}

	ctx = s.log.WithOrderID(ctx, id)
	s.log.Info(ctx, "order closed")
	return nil
}
