// internal/models/engagement.go
package models

import (
	"errors"
	"time"
)

// ErrInvalidOwner is returned when an Owner does not carry exactly one
// identity side.
var ErrInvalidOwner = errors.New("owner must be exactly one of customer or visitor")

// Owner is the acting identity behind an engagement record: an authenticated
// customer id or an anonymous visitor token, never both and never neither.
type Owner struct {
	CustomerID *uint
	VisitorID  *string
}

func CustomerOwner(id uint) Owner {
	return Owner{CustomerID: &id}
}

func VisitorOwner(token string) Owner {
	if token == "" {
		return Owner{}
	}
	return Owner{VisitorID: &token}
}

func (o Owner) IsZero() bool {
	return o.CustomerID == nil && (o.VisitorID == nil || *o.VisitorID == "")
}

func (o Owner) Validate() error {
	hasCustomer := o.CustomerID != nil
	hasVisitor := o.VisitorID != nil && *o.VisitorID != ""
	if hasCustomer == hasVisitor {
		return ErrInvalidOwner
	}
	return nil
}

// ProductView is one counted view. At most one row may exist per
// (product, owner, UTC calendar day); the partial unique indexes in the
// database layer enforce that per owner branch.
type ProductView struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ProductID  uint      `json:"product_id" gorm:"not null;index"`
	CustomerID *uint     `json:"customer_id,omitempty" gorm:"index"`
	VisitorID  *string   `json:"visitor_id,omitempty" gorm:"size:64;index"`
	IP         string    `json:"ip" gorm:"size:45"`
	UserAgent  string    `json:"user_agent" gorm:"size:512"`
	ViewDate   string    `json:"view_date" gorm:"size:10;not null;index;check:chk_view_owner,(customer_id IS NULL) <> (visitor_id IS NULL)"`
	CreatedAt  time.Time `json:"created_at"`

	Product Product `json:"-" gorm:"foreignKey:ProductID"`
}

type ProductLike struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ProductID  uint      `json:"product_id" gorm:"not null;index"`
	CustomerID *uint     `json:"customer_id,omitempty" gorm:"index;check:chk_like_owner,(customer_id IS NULL) <> (visitor_id IS NULL)"`
	VisitorID  *string   `json:"visitor_id,omitempty" gorm:"size:64;index"`
	CreatedAt  time.Time `json:"created_at"`

	Product Product `json:"-" gorm:"foreignKey:ProductID"`
}

type ProductRating struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ProductID  uint      `json:"product_id" gorm:"not null;index"`
	CustomerID *uint     `json:"customer_id,omitempty" gorm:"index;check:chk_rating_owner,(customer_id IS NULL) <> (visitor_id IS NULL)"`
	VisitorID  *string   `json:"visitor_id,omitempty" gorm:"size:64;index"`
	Rating     int       `json:"rating" gorm:"not null"`
	Comment    string    `json:"comment" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Product Product `json:"-" gorm:"foreignKey:ProductID"`
}

// ViewDateOf derives the dedup key for a view: the UTC calendar day.
func ViewDateOf(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
