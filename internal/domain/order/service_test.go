package order

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/bookmarket-backend/internal/config"
	"github.com/your-org/bookmarket-backend/internal/domain/book"
	"github.com/your-org/bookmarket-backend/internal/domain/user"
	"github.com/your-org/bookmarket-backend/internal/pkg/apperror"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "orders.db") + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&user.User{}, &user.Address{}, &book.Book{}, &Order{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, isSeller bool) *user.User {
	t.Helper()
	u := &user.User{
		Name:        "Test",
		LastName:    "User",
		PhoneNumber: "5550000",
		Email:       email,
		IsSeller:    isSeller,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedBook(t *testing.T, db *gorm.DB, sellerID uint) *book.Book {
	t.Helper()
	b := &book.Book{
		Title:     "The Go Programming Language",
		Author:    "Donovan & Kernighan",
		Price:     25,
		Condition: book.ConditionGood,
		Status:    book.StatusAvailable,
		SellerID:  sellerID,
	}
	require.NoError(t, db.Create(b).Error)
	return b
}

func TestUpdateStatusDeliveredCreditsSellers(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, &config.Config{})

	seller := seedUser(t, db, "seller@example.com", true)
	buyer := seedUser(t, db, "buyer@example.com", false)
	b := seedBook(t, db, seller.ID)

	resp, err := svc.CreateOrder(&CreateOrderRequest{
		UserID:      buyer.ID,
		TotalAmount: 25,
		BookIDs:     []uint{b.ID},
	})
	require.NoError(t, err)

	_, err = svc.SetTrackingNumber(resp.ID, "TRK-1001")
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(resp.ID, StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, updated.Status)

	var totalSales int
	require.NoError(t, db.Table("users").Where("id = ?", seller.ID).Pluck("total_sales", &totalSales).Error)
	assert.Equal(t, 1, totalSales)

	// Re-delivering an already delivered order must not credit again.
	_, err = svc.UpdateStatus(resp.ID, StatusDelivered)
	require.NoError(t, err)
	require.NoError(t, db.Table("users").Where("id = ?", seller.ID).Pluck("total_sales", &totalSales).Error)
	assert.Equal(t, 1, totalSales)
}

func TestUpdateStatusDeliveredCreditsEachSellerOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, &config.Config{})

	seller := seedUser(t, db, "seller@example.com", true)
	buyer := seedUser(t, db, "buyer@example.com", false)
	first := seedBook(t, db, seller.ID)
	second := seedBook(t, db, seller.ID)

	resp, err := svc.CreateOrder(&CreateOrderRequest{
		UserID:      buyer.ID,
		TotalAmount: 50,
		BookIDs:     []uint{first.ID, second.ID},
	})
	require.NoError(t, err)

	_, err = svc.SetTrackingNumber(resp.ID, "TRK-1002")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(resp.ID, StatusDelivered)
	require.NoError(t, err)

	var totalSales int
	require.NoError(t, db.Table("users").Where("id = ?", seller.ID).Pluck("total_sales", &totalSales).Error)
	assert.Equal(t, 1, totalSales, "two books from one seller credit a single sale")
}

func TestUpdateStatusShippedRequiresTracking(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, &config.Config{})

	seller := seedUser(t, db, "seller@example.com", true)
	buyer := seedUser(t, db, "buyer@example.com", false)
	b := seedBook(t, db, seller.ID)

	resp, err := svc.CreateOrder(&CreateOrderRequest{
		UserID:      buyer.ID,
		TotalAmount: 25,
		BookIDs:     []uint{b.ID},
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(resp.ID, StatusShipped)
	require.Error(t, err)
	assert.Equal(t, apperror.KindBusinessRule, apperror.KindOf(err))

	// Rejected transition leaves the stored status untouched.
	var stored Order
	require.NoError(t, db.First(&stored, resp.ID).Error)
	assert.Equal(t, StatusPending, stored.Status)
}

func TestCreateOrderMissingShippingAddress(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, &config.Config{})

	seller := seedUser(t, db, "seller@example.com", true)
	buyer := seedUser(t, db, "buyer@example.com", false)
	b := seedBook(t, db, seller.ID)

	missing := uint(9999)
	_, err := svc.CreateOrder(&CreateOrderRequest{
		UserID:            buyer.ID,
		TotalAmount:       25,
		BookIDs:           []uint{b.ID},
		ShippingAddressID: &missing,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestCreateOrderForeignShippingAddress(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, &config.Config{})

	seller := seedUser(t, db, "seller@example.com", true)
	buyer := seedUser(t, db, "buyer@example.com", false)
	other := seedUser(t, db, "other@example.com", false)
	b := seedBook(t, db, seller.ID)

	foreign := user.Address{
		UserID: other.ID, Street: "9 Elsewhere Rd", City: "Springfield",
		State: "IL", PostalCode: "62701", Country: "US",
	}
	require.NoError(t, db.Create(&foreign).Error)

	_, err := svc.CreateOrder(&CreateOrderRequest{
		UserID:            buyer.ID,
		TotalAmount:       25,
		BookIDs:           []uint{b.ID},
		ShippingAddressID: &foreign.ID,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindBusinessRule, apperror.KindOf(err))
}

func TestCreateOrderFallsBackToDefaultAddress(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, &config.Config{})

	seller := seedUser(t, db, "seller@example.com", true)
	buyer := seedUser(t, db, "buyer@example.com", false)
	b := seedBook(t, db, seller.ID)

	addr := user.Address{
		UserID: buyer.ID, Street: "1 Main St", City: "Springfield",
		State: "IL", PostalCode: "62701", Country: "US", IsDefault: true,
	}
	require.NoError(t, db.Create(&addr).Error)

	resp, err := svc.CreateOrder(&CreateOrderRequest{
		UserID:      buyer.ID,
		TotalAmount: 25,
		BookIDs:     []uint{b.ID},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.ShippingAddressID)
	assert.Equal(t, addr.ID, *resp.ShippingAddressID)
}
