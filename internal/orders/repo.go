package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/brewthree/brewpos-backend/pkg/db"
	"github.com/brewthree/brewpos-backend/pkg/db/models"
	"github.com/brewthree/brewpos-backend/pkg/enums"
	"github.com/brewthree/brewpos-backend/pkg/errors"
)

// Repository reads and mutates persisted orders.
type Repository interface {
	Find(ctx context.Context, id int64) (*models.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	ListNonTerminal(ctx context.Context) ([]models.Order, error)
	AdvanceStatus(ctx context.Context, id int64, from, to enums.OrderStatus) (bool, error)
	DeleteWithItems(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context) (map[enums.OrderStatus]int64, error)
}

type repository struct {
	client *db.Client
}

func NewRepository(client *db.Client) Repository {
	return &repository{client: client}
}

func (r *repository) Find(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := r.client.DB(ctx).
		Preload("Items").
		Preload("Items.Product").
		First(&order, id).Error
	if db.IsNotFound(err) {
		return nil, errors.New(errors.CodeNotFound, "order not found")
	}
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "finding order")
	}
	return &order, nil
}

func (r *repository) ListByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	var result []models.Order
	err := r.client.DB(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&result).Error
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "listing user orders")
	}
	return result, nil
}

func (r *repository) ListAll(ctx context.Context) ([]models.Order, error) {
	var result []models.Order
	err := r.client.DB(ctx).
		Preload("Items").
		Order("created_at desc").
		Find(&result).Error
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "listing orders")
	}
	return result, nil
}

func (r *repository) ListNonTerminal(ctx context.Context) ([]models.Order, error) {
	var result []models.Order
	err := r.client.DB(ctx).
		Where("status <> ?", enums.OrderStatusReady).
		Order("created_at asc").
		Find(&result).Error
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "listing non-terminal orders")
	}
	return result, nil
}

// AdvanceStatus moves an order from one status to the next with a
// compare-and-set update. It returns false without error when the order was
// already moved by a concurrent worker.
func (r *repository) AdvanceStatus(ctx context.Context, id int64, from, to enums.OrderStatus) (bool, error) {
	result := r.client.DB(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, errors.Wrap(errors.CodeDependency, result.Error, "advancing order status")
	}
	return result.RowsAffected == 1, nil
}

// DeleteWithItems removes the order and its items in one transaction, items
// first so the foreign key never dangles.
func (r *repository) DeleteWithItems(ctx context.Context, id int64) error {
	return r.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return errors.Wrap(errors.CodeDependency, err, "deleting order items")
		}
		result := tx.Delete(&models.Order{}, id)
		if result.Error != nil {
			return errors.Wrap(errors.CodeDependency, result.Error, "deleting order")
		}
		if result.RowsAffected == 0 {
			return errors.New(errors.CodeNotFound, "order not found")
		}
		return nil
	})
}

func (r *repository) CountByStatus(ctx context.Context) (map[enums.OrderStatus]int64, error) {
	type row struct {
		Status enums.OrderStatus
		N      int64
	}
	var rows []row
	err := r.client.DB(ctx).
		Model(&models.Order{}).
		Select("status, count(*) as n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "counting orders by status")
	}

	counts := make(map[enums.OrderStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.N
	}
	return counts, nil
}
