package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item. The category association is owned by the
// product and is fully replaced on update, never merged.
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"size:255;not null;index"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null"`
	ImgURL      string          `json:"imgUrl" gorm:"column:img_url;size:255"`
	CreatedAt   time.Time       `json:"createdAt"`

	// Relations
	Categories []Category `json:"categories" gorm:"many2many:product_categories"`
}
