// internal/interfaces/http/handlers/address.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/bookmarket-backend/internal/config"
	"github.com/your-org/bookmarket-backend/internal/domain/user"
	"gorm.io/gorm"
)

// AddressHandler handles address endpoints
type AddressHandler struct {
	addressService *user.AddressService
	config         *config.Config
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(db *gorm.DB, cfg *config.Config) *AddressHandler {
	return &AddressHandler{
		addressService: user.NewAddressService(db, cfg),
		config:         cfg,
	}
}

// ListAddresses retrieves a user's addresses, default first
// GET /api/v1/users/:id/addresses
func (h *AddressHandler) ListAddresses(c *gin.Context) {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	addresses, err := h.addressService.GetUserAddresses(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

// CreateAddress creates a new address for a user
// POST /api/v1/users/:id/addresses
func (h *AddressHandler) CreateAddress(c *gin.Context) {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req user.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data",
		})
		return
	}

	address, err := h.addressService.CreateAddress(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"address": address})
}

// GetAddress retrieves a single owned address
// GET /api/v1/users/:id/addresses/:address_id
func (h *AddressHandler) GetAddress(c *gin.Context) {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	addressID, err := parseIDParam(c, "address_id")
	if err != nil {
		respondError(c, err)
		return
	}

	address, err := h.addressService.GetAddress(userID, addressID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"address": address})
}

// UpdateAddress applies a partial update to an owned address
// PATCH /api/v1/users/:id/addresses/:address_id
func (h *AddressHandler) UpdateAddress(c *gin.Context) {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	addressID, err := parseIDParam(c, "address_id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req user.UpdateAddressRequest
	if err := bindStrictJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	address, err := h.addressService.UpdateAddress(userID, addressID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"address": address})
}

// DeleteAddress deletes an owned address
// DELETE /api/v1/users/:id/addresses/:address_id
func (h *AddressHandler) DeleteAddress(c *gin.Context) {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	addressID, err := parseIDParam(c, "address_id")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.addressService.DeleteAddress(userID, addressID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address deleted successfully"})
}

// SetDefaultAddress makes an address the user's single default
// PUT /api/v1/users/:id/addresses/:address_id/default
func (h *AddressHandler) SetDefaultAddress(c *gin.Context) {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	addressID, err := parseIDParam(c, "address_id")
	if err != nil {
		respondError(c, err)
		return
	}

	addresses, err := h.addressService.SetDefaultAddress(userID, addressID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Default address updated successfully",
		"addresses": addresses,
	})
}
