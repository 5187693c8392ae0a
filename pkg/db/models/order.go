package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/brewthree/brewpos-backend/pkg/enums"
)

// Order is a committed purchase. Total is frozen at commit time and does not
// follow later catalog price changes.
type Order struct {
	ID          int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber string            `gorm:"size:32;not null;uniqueIndex" json:"order_number"`
	UserID      int64             `gorm:"not null;index" json:"user_id"`
	Status      enums.OrderStatus `gorm:"size:32;not null;default:'NEW';index" json:"status"`
	Total       decimal.Decimal   `gorm:"type:numeric(10,2);not null" json:"total"`
	IsTakeaway  bool              `gorm:"not null;default:false" json:"is_takeaway"`
	CreatedAt   time.Time         `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`

	User  *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}
