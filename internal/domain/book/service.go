// internal/domain/book/service.go
package book

import (
	"strings"
	"time"

	"github.com/your-org/bookmarket-backend/internal/config"
	"github.com/your-org/bookmarket-backend/internal/domain/review"
	"github.com/your-org/bookmarket-backend/internal/pkg/apperror"
	"gorm.io/gorm"
)

const (
	maxPrice        = 10000
	minPublishYear  = 1800
	maxPublishYear  = 2100
	isbnLength      = 13
	maxSearchLimit  = 100
	defaultPageSize = 20
)

// Service handles book business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new book service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateBookRequest represents listing creation data
type CreateBookRequest struct {
	Title           string        `json:"title" binding:"required,max=500"`
	Author          string        `json:"author" binding:"required,max=255"`
	Price           float64       `json:"price" binding:"required"`
	Description     string        `json:"description" binding:"max=1000"`
	Condition       BookCondition `json:"condition"`
	Genre           string        `json:"genre" binding:"max=100"`
	PublicationYear *int          `json:"publication_year"`
	ISBN            *string       `json:"isbn"`
	ImageURL        string        `json:"image_url" binding:"max=500"`
	SellerID        uint          `json:"seller_id" binding:"required"`
}

// UpdateBookRequest represents a partial listing update. Status changes go
// through UpdateStatus so the lifecycle rules apply.
type UpdateBookRequest struct {
	Title           *string        `json:"title"`
	Author          *string        `json:"author"`
	Price           *float64       `json:"price"`
	Description     *string        `json:"description"`
	Condition       *BookCondition `json:"condition"`
	Genre           *string        `json:"genre"`
	PublicationYear *int           `json:"publication_year"`
	ISBN            *string        `json:"isbn"`
	ImageURL        *string        `json:"image_url"`
}

// SearchBooksRequest represents catalog search parameters
type SearchBooksRequest struct {
	Query     string  `form:"q"`
	Genre     string  `form:"genre"`
	Author    string  `form:"author"`
	Condition string  `form:"condition"`
	Status    string  `form:"status"`
	MinPrice  float64 `form:"min_price"`
	MaxPrice  float64 `form:"max_price"`
	MinYear   int     `form:"min_year"`
	MaxYear   int     `form:"max_year"`
	SortBy    string  `form:"sort_by,default=created_at"`
	SortOrder string  `form:"sort_order,default=desc"`
	Page      int     `form:"page,default=1"`
	Limit     int     `form:"limit,default=20"`
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

// SellerSummary is the reduced seller projection nested in book responses
type SellerSummary struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	LastName string  `json:"last_name"`
	Rating   float64 `json:"rating"`
}

// Response is the API representation of a book listing
type Response struct {
	ID              uint          `json:"id"`
	Title           string        `json:"title"`
	Author          string        `json:"author"`
	Price           float64       `json:"price"`
	Description     string        `json:"description"`
	Condition       BookCondition `json:"condition"`
	Genre           string        `json:"genre"`
	PublicationYear *int          `json:"publication_year"`
	ISBN            *string       `json:"isbn"`
	Status          BookStatus    `json:"status"`
	ImageURL        string        `json:"image_url"`
	SellerID        uint          `json:"seller_id"`
	CreatedAt       time.Time     `json:"created_at"`

	Seller *SellerSummary `json:"seller,omitempty"`
}

// SearchBooksResponse represents a page of listings
type SearchBooksResponse struct {
	Books      []Response `json:"books"`
	Pagination Pagination `json:"pagination"`
}

// BuildResponse creates the minimal projection of a book
func BuildResponse(b *Book) *Response {
	return &Response{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		Price:           b.Price,
		Description:     b.Description,
		Condition:       b.Condition,
		Genre:           b.Genre,
		PublicationYear: b.PublicationYear,
		ISBN:            b.ISBN,
		Status:          b.Status,
		ImageURL:        b.ImageURL,
		SellerID:        b.SellerID,
		CreatedAt:       b.CreatedAt,
	}
}

// ValidatePrice checks a listing price against the allowed range.
func ValidatePrice(price float64) error {
	if price < 0 || price > maxPrice {
		return apperror.Validation("price must be between 0 and %d", maxPrice)
	}
	return nil
}

// ValidateISBN checks an ISBN-13 for the expected length.
func ValidateISBN(isbn string) error {
	if len(isbn) != isbnLength {
		return apperror.Validation("isbn must be exactly %d characters", isbnLength)
	}
	return nil
}

// ValidatePublicationYear checks a publication year for plausibility.
func ValidatePublicationYear(year int) error {
	if year < minPublishYear || year > maxPublishYear {
		return apperror.Validation("publication year must be between %d and %d", minPublishYear, maxPublishYear)
	}
	return nil
}

// CreateBook validates and stores a new listing for a seller
func (s *Service) CreateBook(req *CreateBookRequest) (*Response, error) {
	if err := ValidatePrice(req.Price); err != nil {
		return nil, err
	}
	if req.Condition == "" {
		req.Condition = ConditionGood
	}
	if !ValidCondition(req.Condition) {
		return nil, apperror.Validation("invalid condition: %s", req.Condition)
	}
	if req.ISBN != nil {
		if err := ValidateISBN(*req.ISBN); err != nil {
			return nil, err
		}
	}
	if req.PublicationYear != nil {
		if err := ValidatePublicationYear(*req.PublicationYear); err != nil {
			return nil, err
		}
	}

	var sellerCount int64
	err := s.db.Table("users").Where("id = ?", req.SellerID).Count(&sellerCount).Error
	if err != nil {
		return nil, apperror.FromDB(err, "user")
	}
	if sellerCount == 0 {
		return nil, apperror.NotFound("seller not found")
	}

	b := Book{
		Title:           req.Title,
		Author:          req.Author,
		Price:           req.Price,
		Description:     req.Description,
		Condition:       req.Condition,
		Genre:           req.Genre,
		PublicationYear: req.PublicationYear,
		ISBN:            req.ISBN,
		Status:          StatusAvailable,
		ImageURL:        req.ImageURL,
		SellerID:        req.SellerID,
	}

	if err := s.db.Create(&b).Error; err != nil {
		return nil, apperror.FromDB(err, "book")
	}

	return BuildResponse(&b), nil
}

// GetBook retrieves a listing, attaching the seller summary when requested.
// Unknown relation names are ignored for forward compatibility.
func (s *Service) GetBook(id uint, include []string) (*Response, error) {
	var b Book
	if err := s.db.First(&b, id).Error; err != nil {
		return nil, apperror.FromDB(err, "book")
	}

	resp := BuildResponse(&b)

	if includeRequested(include, "seller") {
		var seller SellerSummary
		err := s.db.Table("users").
			Select("id, name, last_name, rating").
			Where("id = ?", b.SellerID).
			Scan(&seller).Error
		if err != nil {
			return nil, apperror.FromDB(err, "user")
		}
		if seller.ID != 0 {
			resp.Seller = &seller
		}
	}

	return resp, nil
}

// sortColumns is the allow-list of sortable fields. Anything else falls back
// to creation time.
var sortColumns = map[string]string{
	"created_at": "created_at",
	"price":      "price",
	"title":      "title",
	"author":     "author",
	"year":       "publication_year",
}

// SearchBooks retrieves listings matching free-text search and filters
func (s *Service) SearchBooks(req *SearchBooksRequest) (*SearchBooksResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Limit <= 0 || req.Limit > maxSearchLimit {
		req.Limit = defaultPageSize
	}

	query := s.db.Model(&Book{})

	if req.Query != "" {
		term := "%" + strings.ToLower(req.Query) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(author) LIKE ? OR LOWER(description) LIKE ? OR LOWER(genre) LIKE ?",
			term, term, term, term,
		)
	}
	if req.Genre != "" {
		query = query.Where("LOWER(genre) = ?", strings.ToLower(req.Genre))
	}
	if req.Author != "" {
		query = query.Where("LOWER(author) LIKE ?", "%"+strings.ToLower(req.Author)+"%")
	}
	if req.Condition != "" {
		if !ValidCondition(BookCondition(req.Condition)) {
			return nil, apperror.Validation("invalid condition: %s", req.Condition)
		}
		query = query.Where("condition = ?", req.Condition)
	}
	if req.Status != "" {
		if !ValidStatus(BookStatus(req.Status)) {
			return nil, apperror.Validation("invalid status: %s", req.Status)
		}
		query = query.Where("status = ?", req.Status)
	}
	if req.MinPrice > 0 {
		query = query.Where("price >= ?", req.MinPrice)
	}
	if req.MaxPrice > 0 {
		query = query.Where("price <= ?", req.MaxPrice)
	}
	if req.MinYear > 0 {
		query = query.Where("publication_year >= ?", req.MinYear)
	}
	if req.MaxYear > 0 {
		query = query.Where("publication_year <= ?", req.MaxYear)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperror.FromDB(err, "book")
	}

	column, ok := sortColumns[req.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(req.SortOrder, "asc") {
		direction = "ASC"
	}

	var books []Book
	offset := (req.Page - 1) * req.Limit
	err := query.Order(column + " " + direction).Offset(offset).Limit(req.Limit).Find(&books).Error
	if err != nil {
		return nil, apperror.FromDB(err, "book")
	}

	responses := make([]Response, len(books))
	for i := range books {
		responses[i] = *BuildResponse(&books[i])
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &SearchBooksResponse{
		Books: responses,
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

// UpdateBook applies a partial update to a listing
func (s *Service) UpdateBook(id uint, req *UpdateBookRequest) (*Response, error) {
	var b Book
	if err := s.db.First(&b, id).Error; err != nil {
		return nil, apperror.FromDB(err, "book")
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Author != nil {
		updates["author"] = *req.Author
	}
	if req.Price != nil {
		if err := ValidatePrice(*req.Price); err != nil {
			return nil, err
		}
		updates["price"] = *req.Price
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Condition != nil {
		if !ValidCondition(*req.Condition) {
			return nil, apperror.Validation("invalid condition: %s", *req.Condition)
		}
		updates["condition"] = *req.Condition
	}
	if req.Genre != nil {
		updates["genre"] = *req.Genre
	}
	if req.PublicationYear != nil {
		if err := ValidatePublicationYear(*req.PublicationYear); err != nil {
			return nil, err
		}
		updates["publication_year"] = *req.PublicationYear
	}
	if req.ISBN != nil {
		if err := ValidateISBN(*req.ISBN); err != nil {
			return nil, err
		}
		updates["isbn"] = *req.ISBN
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}

	if len(updates) == 0 {
		return BuildResponse(&b), nil
	}
	updates["updated_at"] = time.Now().UTC()

	if err := s.db.Model(&b).Updates(updates).Error; err != nil {
		return nil, apperror.FromDB(err, "book")
	}

	if err := s.db.First(&b, id).Error; err != nil {
		return nil, apperror.FromDB(err, "book")
	}
	return BuildResponse(&b), nil
}

// UpdateStatus moves a listing to a new lifecycle status. The listing
// stays untouched when the target is not a member of the status set.
func (s *Service) UpdateStatus(id uint, status BookStatus) (*Response, error) {
	if !ValidStatus(status) {
		return nil, apperror.BusinessRule("invalid status: %s", status)
	}

	var b Book
	if err := s.db.First(&b, id).Error; err != nil {
		return nil, apperror.FromDB(err, "book")
	}

	err := s.db.Model(&b).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}).Error
	if err != nil {
		return nil, apperror.FromDB(err, "book")
	}

	b.Status = status
	return BuildResponse(&b), nil
}

// DeleteBook removes a listing together with its reviews and order junction
// rows, then refreshes the seller's rating from the remaining reviews.
func (s *Service) DeleteBook(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var b Book
		if err := tx.First(&b, id).Error; err != nil {
			return apperror.FromDB(err, "book")
		}

		err := tx.Exec("DELETE FROM order_books WHERE book_id = ?", id).Error
		if err != nil {
			return apperror.FromDB(err, "order")
		}

		if err := tx.Exec("DELETE FROM reviews WHERE book_id = ?", id).Error; err != nil {
			return apperror.FromDB(err, "review")
		}

		if err := tx.Delete(&Book{}, id).Error; err != nil {
			return apperror.FromDB(err, "book")
		}

		return review.RecomputeSellerRating(tx, b.SellerID)
	})
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
