// internal/interfaces/http/handlers/review.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/bookmarket-backend/internal/config"
	"github.com/your-org/bookmarket-backend/internal/domain/review"
	"github.com/your-org/bookmarket-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// ReviewHandler handles seller review endpoints
type ReviewHandler struct {
	reviewService *review.Service
	config        *config.Config
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(db *gorm.DB, cfg *config.Config) *ReviewHandler {
	return &ReviewHandler{
		reviewService: review.NewService(db, cfg),
		config:        cfg,
	}
}

// CreateReview records a review of a seller by the authenticated buyer
// POST /api/v1/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	buyerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	var req review.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data",
		})
		return
	}

	resp, err := h.reviewService.CreateReview(buyerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": resp})
}

// GetReview retrieves a single review
// GET /api/v1/reviews/:id
func (h *ReviewHandler) GetReview(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.reviewService.GetReview(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": resp})
}

// UpdateReview applies a partial update to a review
// PATCH /api/v1/reviews/:id
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req review.UpdateReviewRequest
	if err := bindStrictJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.reviewService.UpdateReview(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": resp})
}

// DeleteReview removes a review
// DELETE /api/v1/reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.reviewService.DeleteReview(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}

// ListUserReviews retrieves reviews received by a seller, or written by a
// buyer when side=buyer is given
// GET /api/v1/users/:id/reviews?side=seller|buyer
func (h *ReviewHandler) ListUserReviews(c *gin.Context) {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req review.ListReviewsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	var resp *review.ListReviewsResponse
	if c.Query("side") == "buyer" {
		resp, err = h.reviewService.ListBuyerReviews(userID, &req)
	} else {
		resp, err = h.reviewService.ListSellerReviews(userID, &req)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListBookReviews retrieves reviews attached to a book
// GET /api/v1/books/:id/reviews
func (h *ReviewHandler) ListBookReviews(c *gin.Context) {
	bookID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req review.ListReviewsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	resp, err := h.reviewService.ListBookReviews(bookID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
