package review_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/bookmarket-backend/internal/config"
	"github.com/your-org/bookmarket-backend/internal/domain/book"
	"github.com/your-org/bookmarket-backend/internal/domain/review"
	"github.com/your-org/bookmarket-backend/internal/domain/user"
	"github.com/your-org/bookmarket-backend/internal/pkg/apperror"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "reviews.db") + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&user.User{}, &user.Address{}, &book.Book{}, &review.Review{}))
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

func sellerRating(t *testing.T, db *gorm.DB, sellerID uint) float64 {
	t.Helper()
	var rating float64
	require.NoError(t, db.Table("users").Where("id = ?", sellerID).Pluck("rating", &rating).Error)
	return rating
}

func TestCreateReviewRejectsDuplicate(t *testing.T) {
	db := newTestDB(t)
	svc := review.NewService(db, &config.Config{})

	seller := seedUser(t, db, "seller@example.com", true)
	buyer := seedUser(t, db, "buyer@example.com", false)

	_, err := svc.CreateReview(buyer.ID, &review.CreateReviewRequest{
		SellerID: seller.ID,
		Rating:   5,
	})
	require.NoError(t, err)

	_, err = svc.CreateReview(buyer.ID, &review.CreateReviewRequest{
		SellerID: seller.ID,
		Rating:   3,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	// The rejected duplicate must not have touched the aggregate.
	assert.Equal(t, 5.0, sellerRating(t, db, seller.ID))
}

func TestSellerRatingFollowsReviewLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := review.NewService(db, &config.Config{})

	seller := seedUser(t, db, "seller@example.com", true)
	buyer := seedUser(t, db, "buyer@example.com", false)

	created, err := svc.CreateReview(buyer.ID, &review.CreateReviewRequest{
		SellerID: seller.ID,
		Rating:   4,
	})
	require.NoError(t, err)
	assert.Equal(t, 4.0, sellerRating(t, db, seller.ID))

	newRating := 2
	_, err = svc.UpdateReview(created.ID, &review.UpdateReviewRequest{Rating: &newRating})
	require.NoError(t, err)
	assert.Equal(t, 2.0, sellerRating(t, db, seller.ID))

	require.NoError(t, svc.DeleteReview(created.ID))
	assert.Equal(t, 0.0, sellerRating(t, db, seller.ID), "rating resets when the last review goes")
}

func TestSellerRatingAveragesAcrossBuyers(t *testing.T) {
	db := newTestDB(t)
	svc := review.NewService(db, &config.Config{})

	seller := seedUser(t, db, "seller@example.com", true)
	first := seedUser(t, db, "first@example.com", false)
	second := seedUser(t, db, "second@example.com", false)

	_, err := svc.CreateReview(first.ID, &review.CreateReviewRequest{SellerID: seller.ID, Rating: 5})
	require.NoError(t, err)
	_, err = svc.CreateReview(second.ID, &review.CreateReviewRequest{SellerID: seller.ID, Rating: 2})
	require.NoError(t, err)

	assert.Equal(t, 3.5, sellerRating(t, db, seller.ID))
}
