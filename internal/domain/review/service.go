// internal/domain/review/service.go
package review

import (
	"time"

	"github.com/your-org/bookmarket-backend/internal/config"
	"github.com/your-org/bookmarket-backend/internal/pkg/apperror"
	"gorm.io/gorm"
)

// Service handles review business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new review service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateReviewRequest represents review creation data
type CreateReviewRequest struct {
	SellerID uint    `json:"seller_id" binding:"required"`
	Rating   int     `json:"rating" binding:"required"`
	Comment  *string `json:"comment" binding:"omitempty,max=500"`
	BookID   *uint   `json:"book_id"`
	OrderID  *uint   `json:"order_id"`
}

// UpdateReviewRequest represents a partial review update
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

// ListReviewsRequest represents review list query parameters
type ListReviewsRequest struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=20"`
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

// BuyerSummary is the reduced reviewer projection nested in review responses
type BuyerSummary struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"last_name"`
}

// Response is the API representation of a review
type Response struct {
	ID        uint          `json:"id"`
	Rating    int           `json:"rating"`
	Comment   *string       `json:"comment"`
	SellerID  uint          `json:"seller_id"`
	BuyerID   uint          `json:"buyer_id"`
	BookID    *uint         `json:"book_id"`
	OrderID   *uint         `json:"order_id"`
	CreatedAt time.Time     `json:"created_at"`
	Buyer     *BuyerSummary `json:"buyer,omitempty"`
}

// ListReviewsResponse represents a page of reviews
type ListReviewsResponse struct {
	Reviews    []Response `json:"reviews"`
	Pagination Pagination `json:"pagination"`
}

// CreateReview records a buyer's review of a seller and refreshes the
// seller's rating aggregate in the same transaction.
func (s *Service) CreateReview(buyerID uint, req *CreateReviewRequest) (*Response, error) {
	if !ValidRating(req.Rating) {
		return nil, apperror.Validation("rating must be between 1 and 5")
	}
	if buyerID == req.SellerID {
		return nil, apperror.BusinessRule("you cannot review yourself")
	}

	if err := s.ensureSellerExists(req.SellerID); err != nil {
		return nil, err
	}
	if req.BookID != nil {
		if err := s.ensureBookBelongsToSeller(*req.BookID, req.SellerID); err != nil {
			return nil, err
		}
	}

	var existing int64
	err := s.db.Model(&Review{}).
		Where("buyer_id = ? AND seller_id = ?", buyerID, req.SellerID).
		Count(&existing).Error
	if err != nil {
		return nil, apperror.FromDB(err, "review")
	}
	if existing > 0 {
		return nil, apperror.Conflict("you have already reviewed this seller")
	}

	review := Review{
		Rating:   req.Rating,
		Comment:  req.Comment,
		SellerID: req.SellerID,
		BuyerID:  buyerID,
		BookID:   req.BookID,
		OrderID:  req.OrderID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			// The unique index backstops the pre-check under concurrency.
			dbErr := apperror.FromDB(err, "review")
			if apperror.KindOf(dbErr) == apperror.KindConflict {
				return apperror.Conflict("you have already reviewed this seller")
			}
			return dbErr
		}
		return RecomputeSellerRating(tx, req.SellerID)
	})
	if err != nil {
		return nil, err
	}

	return s.buildResponse(&review, false)
}

// GetReview retrieves a single review
func (s *Service) GetReview(id uint) (*Response, error) {
	var review Review
	if err := s.db.First(&review, id).Error; err != nil {
		return nil, apperror.FromDB(err, "review")
	}
	return s.buildResponse(&review, true)
}

// UpdateReview applies a partial update to a review. A rating change
// triggers a recompute of the seller's aggregate.
func (s *Service) UpdateReview(id uint, req *UpdateReviewRequest) (*Response, error) {
	if req.Rating != nil && !ValidRating(*req.Rating) {
		return nil, apperror.Validation("rating must be between 1 and 5")
	}

	var review Review
	if err := s.db.First(&review, id).Error; err != nil {
		return nil, apperror.FromDB(err, "review")
	}

	updates := make(map[string]interface{})
	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}
	if req.Comment != nil {
		updates["comment"] = *req.Comment
	}
	if len(updates) == 0 {
		return s.buildResponse(&review, true)
	}

	ratingChanged := req.Rating != nil && *req.Rating != review.Rating

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&review).Updates(updates).Error; err != nil {
			return apperror.FromDB(err, "review")
		}
		if ratingChanged {
			return RecomputeSellerRating(tx, review.SellerID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.First(&review, id).Error; err != nil {
		return nil, apperror.FromDB(err, "review")
	}
	return s.buildResponse(&review, true)
}

// DeleteReview removes a review and refreshes the seller's rating from the
// remaining set.
func (s *Service) DeleteReview(id uint) error {
	var review Review
	if err := s.db.First(&review, id).Error; err != nil {
		return apperror.FromDB(err, "review")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&Review{}, id).Error; err != nil {
			return apperror.FromDB(err, "review")
		}
		return RecomputeSellerRating(tx, review.SellerID)
	})
}

// ListSellerReviews retrieves reviews received by a seller, newest first
func (s *Service) ListSellerReviews(sellerID uint, req *ListReviewsRequest) (*ListReviewsResponse, error) {
	return s.listReviews("seller_id", sellerID, req)
}

// ListBuyerReviews retrieves reviews written by a buyer, newest first
func (s *Service) ListBuyerReviews(buyerID uint, req *ListReviewsRequest) (*ListReviewsResponse, error) {
	return s.listReviews("buyer_id", buyerID, req)
}

// ListBookReviews retrieves reviews attached to a book, newest first
func (s *Service) ListBookReviews(bookID uint, req *ListReviewsRequest) (*ListReviewsResponse, error) {
	return s.listReviews("book_id", bookID, req)
}

func (s *Service) listReviews(column string, id uint, req *ListReviewsRequest) (*ListReviewsResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.Model(&Review{}).Where(column+" = ?", id)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperror.FromDB(err, "review")
	}

	var reviews []Review
	offset := (req.Page - 1) * req.Limit
	err := query.Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&reviews).Error
	if err != nil {
		return nil, apperror.FromDB(err, "review")
	}

	responses := make([]Response, 0, len(reviews))
	for i := range reviews {
		resp, err := s.buildResponse(&reviews[i], true)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &ListReviewsResponse{
		Reviews: responses,
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

// buildResponse converts a review to its API shape, optionally resolving
// the reviewer through the users table.
func (s *Service) buildResponse(review *Review, withBuyer bool) (*Response, error) {
	resp := &Response{
		ID:        review.ID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		SellerID:  review.SellerID,
		BuyerID:   review.BuyerID,
		BookID:    review.BookID,
		OrderID:   review.OrderID,
		CreatedAt: review.CreatedAt,
	}

	if withBuyer {
		var buyer BuyerSummary
		err := s.db.Table("users").
			Select("id, name, last_name").
			Where("id = ?", review.BuyerID).
			Scan(&buyer).Error
		if err != nil {
			return nil, apperror.FromDB(err, "user")
		}
		if buyer.ID != 0 {
			resp.Buyer = &buyer
		}
	}

	return resp, nil
}

// ensureSellerExists checks the target of a review is a real account.
func (s *Service) ensureSellerExists(sellerID uint) error {
	var count int64
	err := s.db.Table("users").Where("id = ?", sellerID).Count(&count).Error
	if err != nil {
		return apperror.FromDB(err, "user")
	}
	if count == 0 {
		return apperror.NotFound("seller not found")
	}
	return nil
}

// ensureBookBelongsToSeller checks the referenced book exists and is listed
// by the seller being reviewed.
func (s *Service) ensureBookBelongsToSeller(bookID, sellerID uint) error {
	var owner struct {
		ID       uint
		SellerID uint
	}
	err := s.db.Table("books").
		Select("id, seller_id").
		Where("id = ?", bookID).
		Scan(&owner).Error
	if err != nil {
		return apperror.FromDB(err, "book")
	}
	if owner.ID == 0 {
		return apperror.NotFound("book not found")
	}
	if owner.SellerID != sellerID {
		return apperror.BusinessRule("book does not belong to this seller")
	}
	return nil
}
