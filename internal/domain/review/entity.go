// internal/domain/review/entity.go
package review

import (
	"time"
)

// Review is a buyer's rating of a seller, optionally tied to the book and
// order that prompted it. A buyer gets one review per seller.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   *string   `gorm:"size:500" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SellerID uint  `gorm:"not null;index;uniqueIndex:idx_reviews_buyer_seller,priority:2" json:"seller_id"`
	BuyerID  uint  `gorm:"not null;index;uniqueIndex:idx_reviews_buyer_seller,priority:1" json:"buyer_id"`
	BookID   *uint `gorm:"index" json:"book_id"`
	OrderID  *uint `json:"order_id"`
}

// TableName overrides the table name for Review
func (Review) TableName() string {
	return "reviews"
}

// ValidRating reports whether r is within the allowed 1..5 range.
func ValidRating(r int) bool {
	return r >= 1 && r <= 5
}
