// internal/domain/review/rating.go
package review

import (
	"math"

	"github.com/your-org/bookmarket-backend/internal/pkg/apperror"
	"gorm.io/gorm"
)

// AverageRating computes the mean of ratings rounded to two decimals.
// An empty slice yields 0, the "no reviews yet" sentinel stored on sellers.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	mean := float64(sum) / float64(len(ratings))
	return math.Round(mean*100) / 100
}

// RecomputeSellerRating rebuilds the seller's stored rating from the full
// remaining review set. It must run inside the same transaction as the
// review write that made the stored value stale.
func RecomputeSellerRating(tx *gorm.DB, sellerID uint) error {
	var ratings []int
	err := tx.Model(&Review{}).
		Where("seller_id = ?", sellerID).
		Pluck("rating", &ratings).Error
	if err != nil {
		return apperror.FromDB(err, "review")
	}

	err = tx.Table("users").
		Where("id = ?", sellerID).
		Update("rating", AverageRating(ratings)).Error
	if err != nil {
		return apperror.FromDB(err, "user")
	}
	return nil
}
