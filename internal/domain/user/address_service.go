// internal/domain/user/address_service.go
package user

import (
	"github.com/your-org/bookmarket-backend/internal/config"
	"github.com/your-org/bookmarket-backend/internal/pkg/apperror"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AddressService handles address business logic
type AddressService struct {
	db     *gorm.DB
	config *config.Config
}

// NewAddressService creates a new address service
func NewAddressService(db *gorm.DB, cfg *config.Config) *AddressService {
	return &AddressService{
		db:     db,
		config: cfg,
	}
}

// CreateAddressRequest represents address creation data
type CreateAddressRequest struct {
	Street      string       `json:"street" binding:"required,max=255"`
	City        string       `json:"city" binding:"required,max=100"`
	State       string       `json:"state" binding:"required,max=100"`
	PostalCode  string       `json:"postal_code" binding:"required,max=20"`
	Country     string       `json:"country" binding:"required,max=100"`
	IsDefault   bool         `json:"is_default"`
	AddressType *AddressType `json:"address_type"`
}

// UpdateAddressRequest represents a partial address update
type UpdateAddressRequest struct {
	Street      *string      `json:"street"`
	City        *string      `json:"city"`
	State       *string      `json:"state"`
	PostalCode  *string      `json:"postal_code"`
	Country     *string      `json:"country"`
	AddressType *AddressType `json:"address_type"`
}

// GetUserAddresses retrieves all addresses for a user, default first
func (s *AddressService) GetUserAddresses(userID uint) ([]Address, error) {
	var addresses []Address
	err := s.db.Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&addresses).Error
	if err != nil {
		return nil, apperror.FromDB(err, "address")
	}
	return addresses, nil
}

// GetAddress retrieves a specific address owned by the user
func (s *AddressService) GetAddress(userID, addressID uint) (*Address, error) {
	var address Address
	err := s.db.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error
	if err != nil {
		return nil, apperror.FromDB(err, "address")
	}
	return &address, nil
}

// CreateAddress creates a new address for a user. Every address needs an
// owner; orphaned addresses are rejected up front.
func (s *AddressService) CreateAddress(userID uint, req *CreateAddressRequest) (*Address, error) {
	if userID == 0 {
		return nil, apperror.Validation("address requires an owning user")
	}
	if req.AddressType != nil && !ValidAddressType(*req.AddressType) {
		return nil, apperror.Validation("invalid address type: %s", *req.AddressType)
	}

	address := Address{
		UserID:      userID,
		Street:      req.Street,
		City:        req.City,
		State:       req.State,
		PostalCode:  req.PostalCode,
		Country:     req.Country,
		IsDefault:   req.IsDefault,
		AddressType: req.AddressType,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// The new default displaces any existing one inside the same
		// transaction, keeping the single-default invariant observable.
		if req.IsDefault {
			if err := clearDefaultAddresses(tx, userID); err != nil {
				return err
			}
		}
		if err := tx.Create(&address).Error; err != nil {
			return apperror.FromDB(err, "address")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &address, nil
}

// UpdateAddress applies a partial update to an owned address
func (s *AddressService) UpdateAddress(userID, addressID uint, req *UpdateAddressRequest) (*Address, error) {
	if req.AddressType != nil && !ValidAddressType(*req.AddressType) {
		return nil, apperror.Validation("invalid address type: %s", *req.AddressType)
	}

	address, err := s.GetAddress(userID, addressID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Street != nil {
		updates["street"] = *req.Street
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.State != nil {
		updates["state"] = *req.State
	}
	if req.PostalCode != nil {
		updates["postal_code"] = *req.PostalCode
	}
	if req.Country != nil {
		updates["country"] = *req.Country
	}
	if req.AddressType != nil {
		updates["address_type"] = *req.AddressType
	}

	if len(updates) == 0 {
		return address, nil
	}

	if err := s.db.Model(address).Updates(updates).Error; err != nil {
		return nil, apperror.FromDB(err, "address")
	}

	return s.GetAddress(userID, addressID)
}

// DeleteAddress deletes an owned address
func (s *AddressService) DeleteAddress(userID, addressID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", addressID, userID).Delete(&Address{})
	if result.Error != nil {
		return apperror.FromDB(result.Error, "address")
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("address not found")
	}
	return nil
}

// SetDefaultAddress makes addressID the single default for the user.
// The clear-then-set pair runs in one transaction holding row locks on the
// user's address set, so two concurrent calls serialize and can never leave
// two defaults behind.
func (s *AddressService) SetDefaultAddress(userID, addressID uint) ([]Address, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var owned []Address
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			Find(&owned).Error
		if err != nil {
			return apperror.FromDB(err, "address")
		}

		found := false
		for _, a := range owned {
			if a.ID == addressID {
				found = true
				break
			}
		}
		if !found {
			// Distinguish a missing address from one owned by someone else.
			var count int64
			if err := tx.Model(&Address{}).Where("id = ?", addressID).Count(&count).Error; err != nil {
				return apperror.FromDB(err, "address")
			}
			if count == 0 {
				return apperror.NotFound("address not found")
			}
			return apperror.BusinessRule("address does not belong to this user")
		}

		err = tx.Model(&Address{}).
			Where("user_id = ? AND is_default = ?", userID, true).
			Update("is_default", false).Error
		if err != nil {
			return apperror.FromDB(err, "address")
		}

		err = tx.Model(&Address{}).
			Where("id = ?", addressID).
			Update("is_default", true).Error
		if err != nil {
			return apperror.FromDB(err, "address")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetUserAddresses(userID)
}

// GetDefaultAddress returns the user's default address, or NotFound when
// none is flagged
func (s *AddressService) GetDefaultAddress(userID uint) (*Address, error) {
	var address Address
	err := s.db.Where("user_id = ? AND is_default = ?", userID, true).First(&address).Error
	if err != nil {
		return nil, apperror.FromDB(err, "address")
	}
	return &address, nil
}

// clearDefaultAddresses removes the default flag from all of a user's addresses
func clearDefaultAddresses(tx *gorm.DB, userID uint) error {
	err := tx.Model(&Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
	if err != nil {
		return apperror.FromDB(err, "address")
	}
	return nil
}
