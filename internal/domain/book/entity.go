// internal/domain/book/entity.go
package book

import (
	"time"

	"github.com/your-org/bookmarket-backend/internal/domain/user"
)

// BookCondition describes the physical state of a used book
type BookCondition string

const (
	ConditionNew      BookCondition = "New"
	ConditionLikeNew  BookCondition = "Like New"
	ConditionVeryGood BookCondition = "Very Good"
	ConditionGood     BookCondition = "Good"
	ConditionFair     BookCondition = "Fair"
)

// ValidCondition reports whether c is one of the allowed conditions.
func ValidCondition(c BookCondition) bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionVeryGood, ConditionGood, ConditionFair:
		return true
	}
	return false
}

// BookStatus tracks a listing through its sales lifecycle
type BookStatus string

const (
	StatusAvailable BookStatus = "Available"
	StatusReserved  BookStatus = "Reserved"
	StatusSold      BookStatus = "Sold"
)

// ValidStatus reports whether s is one of the allowed listing statuses.
func ValidStatus(s BookStatus) bool {
	switch s {
	case StatusAvailable, StatusReserved, StatusSold:
		return true
	}
	return false
}

// Book represents a used-book listing
type Book struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	Title           string        `gorm:"not null;size:500;index" json:"title"`
	Author          string        `gorm:"not null;size:255;index" json:"author"`
	Price           float64       `gorm:"not null;check:price >= 0" json:"price"`
	Description     string        `gorm:"size:1000" json:"description"`
	Condition       BookCondition `gorm:"not null;size:50;default:'Good'" json:"condition"`
	Genre           string        `gorm:"size:100;index" json:"genre"`
	PublicationYear *int          `json:"publication_year"`
	ISBN            *string       `gorm:"size:13" json:"isbn"`
	Status          BookStatus    `gorm:"not null;size:50;default:'Available';index" json:"status"`
	ImageURL        string        `gorm:"size:500" json:"image_url"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	SellerID uint       `gorm:"not null;index" json:"seller_id"`
	Seller   *user.User `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
}

// TableName overrides the table name for Book
func (Book) TableName() string {
	return "books"
}
