// internal/interfaces/http/handlers/book.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/bookmarket-backend/internal/config"
	"github.com/your-org/bookmarket-backend/internal/domain/book"
	"gorm.io/gorm"
)

// BookHandler handles book listing endpoints
type BookHandler struct {
	bookService *book.Service
	config      *config.Config
}

// NewBookHandler creates a new book handler
func NewBookHandler(db *gorm.DB, cfg *config.Config) *BookHandler {
	return &BookHandler{
		bookService: book.NewService(db, cfg),
		config:      cfg,
	}
}

// UpdateBookStatusRequest represents a listing status change
type UpdateBookStatusRequest struct {
	Status book.BookStatus `json:"status" binding:"required"`
}

// CreateBook creates a new listing
// POST /api/v1/books
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req book.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data",
		})
		return
	}

	resp, err := h.bookService.CreateBook(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"book": resp})
}

// GetBook retrieves a listing with optional relation blocks
// GET /api/v1/books/:id?include=seller
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.bookService.GetBook(id, parseInclude(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"book": resp})
}

// SearchBooks retrieves listings with search, filters and pagination
// GET /api/v1/books
func (h *BookHandler) SearchBooks(c *gin.Context) {
	var req book.SearchBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	resp, err := h.bookService.SearchBooks(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateBook applies a partial update to a listing
// PATCH /api/v1/books/:id
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req book.UpdateBookRequest
	if err := bindStrictJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.bookService.UpdateBook(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"book": resp})
}

// UpdateBookStatus moves a listing through its sales lifecycle
// PUT /api/v1/books/:id/status
func (h *BookHandler) UpdateBookStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req UpdateBookStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data",
		})
		return
	}

	resp, err := h.bookService.UpdateStatus(id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"book": resp})
}

// DeleteBook removes a listing and its dependent records
// DELETE /api/v1/books/:id
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.bookService.DeleteBook(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Book deleted successfully"})
}
