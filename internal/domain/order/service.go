// internal/domain/order/service.go
package order

import (
	"strings"
	"time"

	"github.com/your-org/bookmarket-backend/internal/config"
	"github.com/your-org/bookmarket-backend/internal/domain/book"
	"github.com/your-org/bookmarket-backend/internal/pkg/apperror"
	"gorm.io/gorm"
)

// Service handles order business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateOrderRequest represents order creation data
type CreateOrderRequest struct {
	UserID            uint    `json:"user_id" binding:"required"`
	TotalAmount       float64 `json:"total_amount" binding:"required"`
	BookIDs           []uint  `json:"book_ids" binding:"required,min=1"`
	ShippingAddressID *uint   `json:"shipping_address_id"`
}

// ListOrdersRequest represents order list query parameters
type ListOrdersRequest struct {
	UserID uint   `form:"user_id"`
	Status string `form:"status"`
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// BookSummary is the reduced book projection nested in order responses
type BookSummary struct {
	ID       uint    `json:"id"`
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	Price    float64 `json:"price"`
	SellerID uint    `json:"seller_id"`
}

// Response is the API representation of an order
type Response struct {
	ID                uint          `json:"id"`
	OrderDate         time.Time     `json:"order_date"`
	TotalAmount       float64       `json:"total_amount"`
	Status            OrderStatus   `json:"status"`
	PaymentStatus     PaymentStatus `json:"payment_status"`
	TrackingNumber    *string       `json:"tracking_number"`
	UserID            *uint         `json:"user_id"`
	ShippingAddressID *uint         `json:"shipping_address_id"`
	CreatedAt         time.Time     `json:"created_at"`

	Books *[]BookSummary `json:"books,omitempty"`
}

// ListOrdersResponse represents a page of orders
type ListOrdersResponse struct {
	Orders     []Response `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

// BuildResponse creates the minimal projection of an order
func BuildResponse(o *Order) *Response {
	return &Response{
		ID:                o.ID,
		OrderDate:         o.OrderDate,
		TotalAmount:       o.TotalAmount,
		Status:            o.Status,
		PaymentStatus:     o.PaymentStatus,
		TrackingNumber:    o.TrackingNumber,
		UserID:            o.UserID,
		ShippingAddressID: o.ShippingAddressID,
		CreatedAt:         o.CreatedAt,
	}
}

// AttachBooks adds the books relation block. An empty slice still renders
// as [] so callers can tell "checked, none" from "not requested".
func (r *Response) AttachBooks(books []BookSummary) {
	if books == nil {
		books = []BookSummary{}
	}
	r.Books = &books
}

// CreateOrder places an order for the given books. The order row and every
// junction row commit together, so a missing book aborts the whole order.
// Without an explicit shipping address the buyer's default address is used
// when one exists.
func (s *Service) CreateOrder(req *CreateOrderRequest) (*Response, error) {
	if req.TotalAmount < 0 {
		return nil, apperror.Validation("total amount must not be negative")
	}
	if len(req.BookIDs) == 0 {
		return nil, apperror.Validation("an order needs at least one book")
	}

	var buyerCount int64
	err := s.db.Table("users").Where("id = ?", req.UserID).Count(&buyerCount).Error
	if err != nil {
		return nil, apperror.FromDB(err, "user")
	}
	if buyerCount == 0 {
		return nil, apperror.NotFound("user not found")
	}

	shippingAddressID := req.ShippingAddressID
	if shippingAddressID == nil {
		if id, err := s.lookupDefaultAddress(req.UserID); err != nil {
			return nil, err
		} else if id != nil {
			shippingAddressID = id
		}
	} else {
		// A missing address and someone else's address are different
		// failures to the caller.
		var owner struct {
			ID     uint
			UserID uint
		}
		err := s.db.Table("addresses").
			Select("id, user_id").
			Where("id = ?", *shippingAddressID).
			Scan(&owner).Error
		if err != nil {
			return nil, apperror.FromDB(err, "address")
		}
		if owner.ID == 0 {
			return nil, apperror.NotFound("shipping address not found")
		}
		if owner.UserID != req.UserID {
			return nil, apperror.BusinessRule("shipping address does not belong to this user")
		}
	}

	userID := req.UserID
	o := Order{
		OrderDate:         time.Now().UTC(),
		TotalAmount:       req.TotalAmount,
		Status:            StatusPending,
		PaymentStatus:     PaymentUnpaid,
		UserID:            &userID,
		ShippingAddressID: shippingAddressID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Books").Create(&o).Error; err != nil {
			return apperror.FromDB(err, "order")
		}
		for _, bookID := range req.BookIDs {
			var count int64
			if err := tx.Model(&book.Book{}).Where("id = ?", bookID).Count(&count).Error; err != nil {
				return apperror.FromDB(err, "book")
			}
			if count == 0 {
				return apperror.NotFound("book not found")
			}
			err := tx.Exec(
				"INSERT INTO order_books (order_id, book_id) VALUES (?, ?)", o.ID, bookID,
			).Error
			if err != nil {
				return apperror.FromDB(err, "order")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := BuildResponse(&o)
	books, err := s.loadBookSummaries(o.ID)
	if err != nil {
		return nil, err
	}
	resp.AttachBooks(books)
	return resp, nil
}

// GetOrder retrieves an order, attaching its books when requested.
// Unknown relation names are ignored for forward compatibility.
func (s *Service) GetOrder(id uint, include []string) (*Response, error) {
	var o Order
	if err := s.db.First(&o, id).Error; err != nil {
		return nil, apperror.FromDB(err, "order")
	}

	resp := BuildResponse(&o)

	if includeRequested(include, "books") {
		books, err := s.loadBookSummaries(id)
		if err != nil {
			return nil, err
		}
		resp.AttachBooks(books)
	}

	return resp, nil
}

// GetOrderWithRelations loads the full order entity with its books and
// shipping address, for invoice rendering.
func (s *Service) GetOrderWithRelations(id uint) (*Order, error) {
	var o Order
	err := s.db.Preload("Books").Preload("ShippingAddress").First(&o, id).Error
	if err != nil {
		return nil, apperror.FromDB(err, "order")
	}
	return &o, nil
}

// ListOrders retrieves orders newest first. Cancelled orders stay out of
// the listing unless explicitly filtered for.
func (s *Service) ListOrders(req *ListOrdersRequest) (*ListOrdersResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.Model(&Order{})

	if req.UserID != 0 {
		query = query.Where("user_id = ?", req.UserID)
	}
	if req.Status != "" {
		if !ValidStatus(OrderStatus(req.Status)) {
			return nil, apperror.Validation("invalid status: %s", req.Status)
		}
		query = query.Where("status = ?", req.Status)
	} else {
		query = query.Where("status <> ?", StatusCancelled)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperror.FromDB(err, "order")
	}

	var orders []Order
	offset := (req.Page - 1) * req.Limit
	err := query.Order("order_date DESC").Offset(offset).Limit(req.Limit).Find(&orders).Error
	if err != nil {
		return nil, apperror.FromDB(err, "order")
	}

	responses := make([]Response, len(orders))
	for i := range orders {
		responses[i] = *BuildResponse(&orders[i])
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &ListOrdersResponse{
		Orders: responses,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1,
		},
	}, nil
}

// CancelOrder moves an order to Cancelled. Cancellation is always allowed
// once the order exists, whatever its current status.
func (s *Service) CancelOrder(id uint) (*Response, error) {
	var o Order
	if err := s.db.First(&o, id).Error; err != nil {
		return nil, apperror.FromDB(err, "order")
	}

	err := s.db.Model(&o).Updates(map[string]interface{}{
		"status":     StatusCancelled,
		"updated_at": time.Now().UTC(),
	}).Error
	if err != nil {
		return nil, apperror.FromDB(err, "order")
	}

	o.Status = StatusCancelled
	return BuildResponse(&o), nil
}

// UpdateStatus moves an order to a new fulfillment status. Shipping demands
// a tracking number on the order; a rejected transition leaves the stored
// status untouched. Delivery bumps each distinct seller's sales counter.
func (s *Service) UpdateStatus(id uint, status OrderStatus) (*Response, error) {
	if !ValidStatus(status) {
		return nil, apperror.BusinessRule("invalid status: %s", status)
	}

	var o Order
	if err := s.db.First(&o, id).Error; err != nil {
		return nil, apperror.FromDB(err, "order")
	}

	if status == StatusShipped && !o.CanShip() {
		return nil, apperror.BusinessRule("order cannot ship without a tracking number")
	}

	// Updates mutates o.Status in memory, so the pre-transition status has
	// to be captured first for the delivery check below.
	prev := o.Status

	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&o).Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now().UTC(),
		}).Error
		if err != nil {
			return apperror.FromDB(err, "order")
		}

		if status == StatusDelivered && prev != StatusDelivered {
			return creditSellers(tx, o.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.Status = status
	return BuildResponse(&o), nil
}

// UpdatePaymentStatus moves an order to a new payment status
func (s *Service) UpdatePaymentStatus(id uint, status PaymentStatus) (*Response, error) {
	if !ValidPaymentStatus(status) {
		return nil, apperror.BusinessRule("invalid payment status: %s", status)
	}

	var o Order
	if err := s.db.First(&o, id).Error; err != nil {
		return nil, apperror.FromDB(err, "order")
	}

	err := s.db.Model(&o).Updates(map[string]interface{}{
		"payment_status": status,
		"updated_at":     time.Now().UTC(),
	}).Error
	if err != nil {
		return nil, apperror.FromDB(err, "order")
	}

	o.PaymentStatus = status
	return BuildResponse(&o), nil
}

// SetTrackingNumber records the carrier tracking number for an order
func (s *Service) SetTrackingNumber(id uint, trackingNumber string) (*Response, error) {
	if strings.TrimSpace(trackingNumber) == "" {
		return nil, apperror.Validation("tracking number must not be empty")
	}

	var o Order
	if err := s.db.First(&o, id).Error; err != nil {
		return nil, apperror.FromDB(err, "order")
	}

	err := s.db.Model(&o).Updates(map[string]interface{}{
		"tracking_number": trackingNumber,
		"updated_at":      time.Now().UTC(),
	}).Error
	if err != nil {
		return nil, apperror.FromDB(err, "order")
	}

	o.TrackingNumber = &trackingNumber
	return BuildResponse(&o), nil
}

// creditSellers increments total_sales once per distinct seller with a book
// in the delivered order.
func creditSellers(tx *gorm.DB, orderID uint) error {
	var sellerIDs []uint
	err := tx.Table("books").
		Distinct("books.seller_id").
		Joins("JOIN order_books ON order_books.book_id = books.id").
		Where("order_books.order_id = ?", orderID).
		Pluck("books.seller_id", &sellerIDs).Error
	if err != nil {
		return apperror.FromDB(err, "order")
	}

	for _, sellerID := range sellerIDs {
		err := tx.Exec(
			"UPDATE users SET total_sales = total_sales + 1 WHERE id = ?", sellerID,
		).Error
		if err != nil {
			return apperror.FromDB(err, "user")
		}
	}
	return nil
}

// lookupDefaultAddress finds the buyer's default address id, if any.
func (s *Service) lookupDefaultAddress(userID uint) (*uint, error) {
	var ids []uint
	err := s.db.Table("addresses").
		Where("user_id = ? AND is_default = ?", userID, true).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, apperror.FromDB(err, "address")
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return &ids[0], nil
}

// loadBookSummaries scans the order's books into the reduced projection
// used inside order responses.
func (s *Service) loadBookSummaries(orderID uint) ([]BookSummary, error) {
	var books []BookSummary
	err := s.db.Table("books").
		Select("books.id, books.title, books.author, books.price, books.seller_id").
		Joins("JOIN order_books ON order_books.book_id = books.id").
		Where("order_books.order_id = ?", orderID).
		Scan(&books).Error
	if err != nil {
		return nil, apperror.FromDB(err, "book")
	}
	return books, nil
}

// includeRequested reports whether a relation name was asked for
func includeRequested(include []string, name string) bool {
	for _, item := range include {
		if strings.EqualFold(strings.TrimSpace(item), name) {
			return true
		}
	}
	return false
}
