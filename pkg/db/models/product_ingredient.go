package models

// ProductIngredient links a product to an ingredient with the amount a
// single serving consumes.
type ProductIngredient struct {
	ID           int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID    int64   `gorm:"not null;index;uniqueIndex:ux_product_ingredient" json:"product_id"`
	IngredientID int64   `gorm:"not null;index;uniqueIndex:ux_product_ingredient" json:"ingredient_id"`
	Quantity     float64 `gorm:"not null" json:"quantity"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}

func (ProductIngredient) TableName() string {
	return "product_ingredients"
}
