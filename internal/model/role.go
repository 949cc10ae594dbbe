package model

// Role is static reference data granted to users many-to-many.
type Role struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Authority string `json:"authority" gorm:"uniqueIndex;size:255;not null"`
}
