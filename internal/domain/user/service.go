// internal/domain/user/service.go
package user

import (
	"strings"
	"time"

	"github.com/your-org/bookmarket-backend/internal/config"
	"github.com/your-org/bookmarket-backend/internal/domain/review"
	"github.com/your-org/bookmarket-backend/internal/pkg/apperror"
	"github.com/your-org/bookmarket-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// Service handles user business logic
type Service struct {
	db        *gorm.DB
	config    *config.Config
	passwords *auth.PasswordManager
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:        db,
		config:    cfg,
		passwords: auth.NewPasswordManager(cfg),
	}
}

// CreateUserRequest represents registration data
type CreateUserRequest struct {
	Name        string  `json:"name" binding:"required,max=30"`
	LastName    string  `json:"last_name" binding:"required,max=30"`
	PhoneNumber string  `json:"phone_number" binding:"required,max=15"`
	Email       string  `json:"email" binding:"required,email,max=100"`
	Password    *string `json:"password"` // Omit for guest accounts
	IsSeller    bool    `json:"is_seller"`
}

// UpdateUserRequest represents a partial profile update. Only the named
// fields can be patched; rating and total_sales are derived and never
// caller-writable.
type UpdateUserRequest struct {
	Name        *string `json:"name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
	Email       *string `json:"email"`
	IsSeller    *bool   `json:"is_seller"`
}

// ListUsersRequest represents user list query parameters
type ListUsersRequest struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
	Search string `form:"search"`
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

// ListUsersResponse represents a page of users
type ListUsersResponse struct {
	Users      []Response `json:"users"`
	Pagination Pagination `json:"pagination"`
}

// CreateUser registers a new user. A nil password creates a guest account.
func (s *Service) CreateUser(req *CreateUserRequest) (*Response, error) {
	u := User{
		Name:        req.Name,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		IsSeller:    req.IsSeller,
	}

	if req.Password != nil && *req.Password != "" {
		if err := auth.ValidatePassword(*req.Password); err != nil {
			return nil, apperror.Validation("%s", err.Error())
		}
		hash, err := s.passwords.HashPassword(*req.Password)
		if err != nil {
			return nil, apperror.Internal(err, "failed to process password")
		}
		u.Password = &hash
	}

	if err := s.db.Create(&u).Error; err != nil {
		return nil, apperror.FromDB(err, "user")
	}

	return BuildResponse(&u), nil
}

// Authenticate verifies credentials and returns the matching user.
// Guest accounts can never authenticate.
func (s *Service) Authenticate(email, password string) (*User, error) {
	var u User
	err := s.db.Where("email = ?", strings.ToLower(email)).First(&u).Error
	if err != nil {
		return nil, apperror.FromDB(err, "user")
	}

	if u.IsGuest() {
		return nil, apperror.BusinessRule("invalid credentials")
	}

	if err := s.passwords.VerifyPassword(password, *u.Password); err != nil {
		return nil, apperror.BusinessRule("invalid credentials")
	}

	return &u, nil
}

// GetUser retrieves a user and attaches the requested relation blocks.
// Unknown relation names are ignored for forward compatibility.
func (s *Service) GetUser(id uint, include []string) (*Response, error) {
	var u User
	if err := s.db.First(&u, id).Error; err != nil {
		return nil, apperror.FromDB(err, "user")
	}

	resp := BuildResponse(&u)

	if includeRequested(include, "addresses") {
		var addresses []Address
		err := s.db.Where("user_id = ?", id).
			Order("is_default DESC, created_at DESC").
			Find(&addresses).Error
		if err != nil {
			return nil, apperror.FromDB(err, "address")
		}
		resp.AttachAddresses(addresses)
	}

	if includeRequested(include, "orders") {
		summaries, err := s.loadOrderSummaries(id)
		if err != nil {
			return nil, err
		}
		resp.AttachOrders(summaries)
	}

	return resp, nil
}

// ListUsers retrieves users with optional name/email search and pagination
func (s *Service) ListUsers(req *ListUsersRequest) (*ListUsersResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.Model(&User{})

	if req.Search != "" {
		term := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?",
			term, term, term,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperror.FromDB(err, "user")
	}

	var users []User
	offset := (req.Page - 1) * req.Limit
	err := query.Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&users).Error
	if err != nil {
		return nil, apperror.FromDB(err, "user")
	}

	responses := make([]Response, len(users))
	for i := range users {
		responses[i] = *BuildResponse(&users[i])
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &ListUsersResponse{
		Users: responses,
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

// UpdateUser applies a partial profile update
func (s *Service) UpdateUser(id uint, req *UpdateUserRequest) (*Response, error) {
	var u User
	if err := s.db.First(&u, id).Error; err != nil {
		return nil, apperror.FromDB(err, "user")
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.Email != nil {
		updates["email"] = strings.ToLower(*req.Email)
	}
	if req.IsSeller != nil {
		updates["is_seller"] = *req.IsSeller
	}

	if len(updates) == 0 {
		return BuildResponse(&u), nil
	}
	updates["updated_at"] = time.Now().UTC()

	if err := s.db.Model(&u).Updates(updates).Error; err != nil {
		return nil, apperror.FromDB(err, "user")
	}

	if err := s.db.First(&u, id).Error; err != nil {
		return nil, apperror.FromDB(err, "user")
	}
	return BuildResponse(&u), nil
}

// DeleteUser removes a user together with their books, addresses and
// reviews. Orders survive with the user reference cleared so purchase
// history stays queryable. Ratings of sellers the user reviewed are
// recomputed from the remaining review set.
func (s *Service) DeleteUser(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var u User
		if err := tx.First(&u, id).Error; err != nil {
			return apperror.FromDB(err, "user")
		}

		// Sellers whose aggregates change once this user's authored
		// reviews disappear.
		var reviewedSellers []uint
		err := tx.Table("reviews").
			Distinct("seller_id").
			Where("buyer_id = ? AND seller_id <> ?", id, id).
			Pluck("seller_id", &reviewedSellers).Error
		if err != nil {
			return apperror.FromDB(err, "review")
		}

		// Reviews received as a seller, then reviews written as a buyer.
		if err := tx.Exec("DELETE FROM reviews WHERE seller_id = ?", id).Error; err != nil {
			return apperror.FromDB(err, "review")
		}
		if err := tx.Exec("DELETE FROM reviews WHERE buyer_id = ?", id).Error; err != nil {
			return apperror.FromDB(err, "review")
		}

		// Junction rows of the user's books go before the books themselves
		// so no order ever points at a deleted book.
		err = tx.Exec(
			"DELETE FROM order_books WHERE book_id IN (SELECT id FROM books WHERE seller_id = ?)", id,
		).Error
		if err != nil {
			return apperror.FromDB(err, "order")
		}
		if err := tx.Exec("DELETE FROM books WHERE seller_id = ?", id).Error; err != nil {
			return apperror.FromDB(err, "book")
		}

		// Orders may still point at the user's addresses through the
		// shipping reference; detach them before the addresses go.
		err = tx.Exec(
			"UPDATE orders SET shipping_address_id = NULL WHERE shipping_address_id IN (SELECT id FROM addresses WHERE user_id = ?)", id,
		).Error
		if err != nil {
			return apperror.FromDB(err, "order")
		}

		if err := tx.Exec("DELETE FROM addresses WHERE user_id = ?", id).Error; err != nil {
			return apperror.FromDB(err, "address")
		}

		// Orders are kept for record-keeping with the owner reference nulled.
		err = tx.Exec("UPDATE orders SET user_id = NULL WHERE user_id = ?", id).Error
		if err != nil {
			return apperror.FromDB(err, "order")
		}

		if err := tx.Delete(&User{}, id).Error; err != nil {
			return apperror.FromDB(err, "user")
		}

		for _, sellerID := range reviewedSellers {
			if err := review.RecomputeSellerRating(tx, sellerID); err != nil {
				return err
			}
		}

		return nil
	})
	return err
}

// loadOrderSummaries scans the user's order history into the reduced
// projection used inside user responses.
func (s *Service) loadOrderSummaries(userID uint) ([]OrderSummary, error) {
	var summaries []OrderSummary
	err := s.db.Table("orders").
		Select("id, order_date, total_amount, status, payment_status, tracking_number").
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Scan(&summaries).Error
	if err != nil {
		return nil, apperror.FromDB(err, "order")
	}
	return summaries, nil
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
