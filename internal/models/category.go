// internal/models/category.go
package models

import "time"

// Category rows of the non-normal kinds are filter vocabulary only; the
// matching product attribute lives in a scalar column on Product.
type Category struct {
	ID       uint         `json:"id" gorm:"primaryKey"`
	Name     string       `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Slug     string       `json:"slug" gorm:"size:100;not null"`
	Kind     CategoryKind `json:"kind" gorm:"type:varchar(20);not null;default:'normal';index"`
	ParentID *uint        `json:"parent_id,omitempty" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Parent   *Category  `json:"-" gorm:"foreignKey:ParentID"`
	Products []Product  `json:"-" gorm:"many2many:product_categories"`
	Children []Category `json:"children,omitempty" gorm:"foreignKey:ParentID"`
}
