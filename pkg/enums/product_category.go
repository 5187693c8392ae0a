package enums

import "fmt"

// ProductCategory groups catalog items for display and reporting.
type ProductCategory string

const (
	ProductCategoryCoffee  ProductCategory = "COFFEE"
	ProductCategoryTea     ProductCategory = "TEA"
	ProductCategoryPastry  ProductCategory = "PASTRY"
	ProductCategorySnack   ProductCategory = "SNACK"
	ProductCategoryDessert ProductCategory = "DESSERT"
)

func (c ProductCategory) String() string {
	return string(c)
}

func (c ProductCategory) IsValid() bool {
	switch c {
	case ProductCategoryCoffee, ProductCategoryTea, ProductCategoryPastry,
		ProductCategorySnack, ProductCategoryDessert:
		return true
	}
	return false
}

func ParseProductCategory(value string) (ProductCategory, error) {
	category := ProductCategory(value)
	if !category.IsValid() {
		return "", fmt.Errorf("invalid product category %q", value)
	}
	return category, nil
}
