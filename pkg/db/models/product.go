package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/brewthree/brewpos-backend/pkg/enums"
)

// Product is a sellable catalog item.
type Product struct {
	ID          int64                 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string                `gorm:"size:255;not null" json:"name"`
	Description string                `gorm:"type:text" json:"description"`
	Category    enums.ProductCategory `gorm:"size:32;not null;index" json:"category"`
	Price       decimal.Decimal       `gorm:"type:numeric(10,2);not null" json:"price"`
	ImagePath   string                `gorm:"size:512" json:"image_path,omitempty"`
	IsAvailable bool                  `gorm:"not null;default:true;index" json:"is_available"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`

	Ingredients []ProductIngredient `gorm:"foreignKey:ProductID" json:"ingredients,omitempty"`
}

func (Product) TableName() string {
	return "products"
}
