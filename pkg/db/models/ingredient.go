package models

import "time"

// Ingredient is a stockable component of products.
type Ingredient struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Unit          string    `gorm:"size:32;not null" json:"unit"`
	StockQuantity float64   `gorm:"not null;default:0" json:"stock_quantity"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}
