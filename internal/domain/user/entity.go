// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User represents a marketplace account. Every user can buy; sellers
// additionally carry a rating and sales counter.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;size:30" json:"name"`
	LastName    string    `gorm:"not null;size:30" json:"last_name"`
	PhoneNumber string    `gorm:"not null;size:15" json:"phone_number"`
	Email       string    `gorm:"uniqueIndex;not null;size:100" json:"email"`
	Password    *string   `gorm:"size:255" json:"-"` // Nullable - guest accounts have no password
	IsSeller    bool      `gorm:"default:false" json:"is_seller"`
	Rating      float64   `gorm:"not null;default:0" json:"rating"` // Derived: mean of received review ratings, 0 when none
	TotalSales  int       `gorm:"not null;default:0" json:"total_sales"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Addresses []Address `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"addresses,omitempty"`
}

// AddressType categorizes an address
type AddressType string

const (
	AddressTypeHome  AddressType = "Home"
	AddressTypeWork  AddressType = "Work"
	AddressTypeOther AddressType = "Other"
)

// ValidAddressType reports whether t is one of the allowed address types.
func ValidAddressType(t AddressType) bool {
	switch t {
	case AddressTypeHome, AddressTypeWork, AddressTypeOther:
		return true
	}
	return false
}

// Address represents a user shipping address. At most one address per user
// carries is_default.
type Address struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	UserID      uint         `gorm:"not null;index" json:"user_id"`
	Street      string       `gorm:"not null;size:255" json:"street"`
	City        string       `gorm:"not null;size:100" json:"city"`
	State       string       `gorm:"not null;size:100" json:"state"`
	PostalCode  string       `gorm:"not null;size:20" json:"postal_code"`
	Country     string       `gorm:"not null;size:100" json:"country"`
	IsDefault   bool         `gorm:"default:false" json:"is_default"`
	AddressType *AddressType `gorm:"size:50" json:"address_type"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// TableName overrides the table name for Address
func (Address) TableName() string {
	return "addresses"
}

// BeforeCreate hook to handle business logic before user creation
func (u *User) BeforeCreate(tx *gorm.DB) error {
	// Email should be lowercase
	u.Email = strings.ToLower(u.Email)
	return nil
}

// GetFullName returns the user's full name
func (u *User) GetFullName() string {
	return strings.TrimSpace(u.Name + " " + u.LastName)
}

// IsGuest reports whether the account was created without a password.
// Guests cannot log in.
func (u *User) IsGuest() bool {
	return u.Password == nil || *u.Password == ""
}
