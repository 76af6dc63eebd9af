// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/your-org/bookmarket-backend/internal/domain/book"
	"github.com/your-org/bookmarket-backend/internal/domain/user"
)

// OrderStatus represents the fulfillment lifecycle of an order
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// ValidStatus reports whether s is a member of the order status set.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// PaymentStatus represents the payment lifecycle of an order
type PaymentStatus string

const (
	PaymentUnpaid     PaymentStatus = "Unpaid"
	PaymentProcessing PaymentStatus = "Processing"
	PaymentPaid       PaymentStatus = "Paid"
	PaymentRefunded   PaymentStatus = "Refunded"
)

// ValidPaymentStatus reports whether s is a member of the payment status set.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentUnpaid, PaymentProcessing, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}

// Order represents a purchase of one or more books. The buyer reference is
// nullable so orders survive account deletion.
type Order struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	OrderDate      time.Time     `gorm:"not null" json:"order_date"`
	TotalAmount    float64       `gorm:"not null;check:total_amount >= 0" json:"total_amount"`
	Status         OrderStatus   `gorm:"not null;size:50;default:'Pending';index" json:"status"`
	PaymentStatus  PaymentStatus `gorm:"not null;size:50;default:'Unpaid'" json:"payment_status"`
	TrackingNumber *string       `gorm:"uniqueIndex;size:100" json:"tracking_number"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	UserID            *uint         `gorm:"index" json:"user_id"`
	ShippingAddressID *uint         `json:"shipping_address_id"`
	ShippingAddress   *user.Address `gorm:"foreignKey:ShippingAddressID" json:"shipping_address,omitempty"`
	Books             []book.Book   `gorm:"many2many:order_books;" json:"books,omitempty"`
}

// TableName overrides the table name for Order
func (Order) TableName() string {
	return "orders"
}

// CanShip reports whether the order carries the tracking number required
// before it may move to Shipped.
func (o *Order) CanShip() bool {
	return o.TrackingNumber != nil && *o.TrackingNumber != ""
}
