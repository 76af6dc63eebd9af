// internal/domain/user/response.go
package user

import "time"

// Response is the API representation of a user. It starts as the minimal
// scalar projection and grows relation blocks only when they were requested,
// so an absent block means "not looked at", never "empty". Password hashes
// are write-only and never appear here.
type Response struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number"`
	Email       string    `json:"email"`
	IsSeller    bool      `json:"is_seller"`
	Rating      float64   `json:"rating"`
	TotalSales  int       `json:"total_sales"`
	CreatedAt   time.Time `json:"created_at"`

	Addresses *[]AddressResponse `json:"addresses,omitempty"`
	Orders    *[]OrderSummary    `json:"orders,omitempty"`
}

// AddressResponse is the address projection nested in user responses
type AddressResponse struct {
	ID          uint         `json:"id"`
	Street      string       `json:"street"`
	City        string       `json:"city"`
	State       string       `json:"state"`
	PostalCode  string       `json:"postal_code"`
	Country     string       `json:"country"`
	IsDefault   bool         `json:"is_default"`
	AddressType *AddressType `json:"address_type"`
}

// OrderSummary is the reduced order projection nested in user responses.
// It deliberately omits the order's own relations to bound recursion.
type OrderSummary struct {
	ID             uint      `json:"id"`
	OrderDate      time.Time `json:"order_date"`
	TotalAmount    float64   `json:"total_amount"`
	Status         string    `json:"status"`
	PaymentStatus  string    `json:"payment_status"`
	TrackingNumber *string   `json:"tracking_number"`
}

// BuildResponse creates the minimal projection of a user
func BuildResponse(u *User) *Response {
	return &Response{
		ID:          u.ID,
		Name:        u.Name,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Email:       u.Email,
		IsSeller:    u.IsSeller,
		Rating:      u.Rating,
		TotalSales:  u.TotalSales,
		CreatedAt:   u.CreatedAt,
	}
}

// AttachAddresses adds the addresses relation block. An empty slice still
// renders as [] so callers can tell "checked, none" from "not requested".
func (r *Response) AttachAddresses(addresses []Address) {
	block := make([]AddressResponse, len(addresses))
	for i, a := range addresses {
		block[i] = AddressResponse{
			ID:          a.ID,
			Street:      a.Street,
			City:        a.City,
			State:       a.State,
			PostalCode:  a.PostalCode,
			Country:     a.Country,
			IsDefault:   a.IsDefault,
			AddressType: a.AddressType,
		}
	}
	r.Addresses = &block
}

// AttachOrders adds the orders relation block
func (r *Response) AttachOrders(orders []OrderSummary) {
	if orders == nil {
		orders = []OrderSummary{}
	}
	r.Orders = &orders
}
