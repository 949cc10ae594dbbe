package model

// Category groups products for browsing. Products reference categories
// through the product_categories join table.
type Category struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:255;not null;index"`

	// Relations
	Products []Product `json:"-" gorm:"many2many:product_categories"`
}
