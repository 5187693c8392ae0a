package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brewthree/brewpos-backend/internal/cart"
	"github.com/brewthree/brewpos-backend/pkg/db"
	"github.com/brewthree/brewpos-backend/pkg/db/models"
	"github.com/brewthree/brewpos-backend/pkg/enums"
	"github.com/brewthree/brewpos-backend/pkg/errors"
	"github.com/brewthree/brewpos-backend/pkg/logger"
)

// maxNumberRetries bounds how many times Commit retries a colliding order
// number before giving up.
const maxNumberRetries = 3

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service commits carts into persisted orders.
type Service interface {
	Commit(ctx context.Context, userID int64, opts CommitOptions) (*models.Order, error)
}

// CommitOptions carries per-order flags chosen at the counter.
type CommitOptions struct {
	Takeaway bool `json:"takeaway"`
}

type Params struct {
	DB       txRunner
	Sessions *cart.Sessions
	Log      *logger.Logger

	// Now and NewNumberSuffix are injectable for tests.
	Now             func() time.Time
	NewNumberSuffix func() string
}

type service struct {
	db        txRunner
	sessions  *cart.Sessions
	log       *logger.Logger
	now       func() time.Time
	newSuffix func() string
}

func NewService(p Params) (Service, error) {
	if p.DB == nil {
		return nil, errors.New(errors.CodeInternal, "checkout: db is required")
	}
	if p.Sessions == nil {
		return nil, errors.New(errors.CodeInternal, "checkout: sessions is required")
	}
	if p.Log == nil {
		return nil, errors.New(errors.CodeInternal, "checkout: logger is required")
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	if p.NewNumberSuffix == nil {
		p.NewNumberSuffix = defaultNumberSuffix
	}
	return &service{
		db:        p.DB,
		sessions:  p.Sessions,
		log:       p.Log,
		now:       p.Now,
		newSuffix: p.NewNumberSuffix,
	}, nil
}

func defaultNumberSuffix() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

// Commit turns the user's cart into an order. The order row and all item
// rows are written in a single transaction; the cart is emptied only after
// the transaction commits, so a failed commit leaves the cart intact. A
// colliding order number is retried with a fresh suffix.
func (s *service) Commit(ctx context.Context, userID int64, opts CommitOptions) (*models.Order, error) {
	userCart := s.sessions.For(userID)
	lines := userCart.Lines()
	if len(lines) == 0 {
		return nil, errors.New(errors.CodeEmptyCart, "cannot commit an empty cart")
	}

	now := s.now()
	total := userCart.Total()

	var committed *models.Order
	var lastErr error
	for attempt := 0; attempt < maxNumberRetries; attempt++ {
		order := &models.Order{
			OrderNumber: s.orderNumber(now),
			UserID:      userID,
			Status:      enums.OrderStatusNew,
			Total:       total,
			IsTakeaway:  opts.Takeaway,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
			if err := tx.Create(order).Error; err != nil {
				return err
			}
			items := make([]models.OrderItem, 0, len(lines))
			for _, line := range lines {
				items = append(items, models.OrderItem{
					OrderID:   order.ID,
					ProductID: line.ProductID,
					Quantity:  line.Quantity,
					UnitPrice: line.UnitPrice,
				})
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
			order.Items = items
			return nil
		})
		if err == nil {
			committed = order
			break
		}
		if db.IsUniqueViolation(err) {
			lastErr = err
			continue
		}
		return nil, errors.Wrap(errors.CodeDependency, err, "committing order")
	}
	if committed == nil {
		return nil, errors.Wrap(errors.CodeDuplicateOrderNumber, lastErr, "exhausted order number retries")
	}

	userCart.Clear()

	ctx = s.log.WithFields(ctx, map[string]any{
		"order_id":     committed.ID,
		"order_number": committed.OrderNumber,
		"user_id":      userID,
		"total":        committed.Total.String(),
	})
	s.log.Info(ctx, "order committed")

	return committed, nil
}

// orderNumber builds ORD-<yyyymmdd>-<8 char suffix>.
func (s *service) orderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), s.newSuffix())
}
