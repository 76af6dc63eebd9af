package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/your-org/bookmarket-backend/internal/pkg/apperror"
)

func TestValidCondition(t *testing.T) {
	valid := []BookCondition{ConditionNew, ConditionLikeNew, ConditionVeryGood, ConditionGood, ConditionFair}
	for _, c := range valid {
		assert.True(t, ValidCondition(c), "expected %q to be valid", c)
	}

	assert.False(t, ValidCondition("Mint"))
	assert.False(t, ValidCondition("good"))
	assert.False(t, ValidCondition(""))
}

func TestValidStatus(t *testing.T) {
	valid := []BookStatus{StatusAvailable, StatusReserved, StatusSold}
	for _, s := range valid {
		assert.True(t, ValidStatus(s), "expected %q to be valid", s)
	}

	assert.False(t, ValidStatus("Pending"))
	assert.False(t, ValidStatus("available"))
	assert.False(t, ValidStatus(""))
}

func TestValidatePrice(t *testing.T) {
	assert.NoError(t, ValidatePrice(0))
	assert.NoError(t, ValidatePrice(19.99))
	assert.NoError(t, ValidatePrice(10000))

	err := ValidatePrice(-0.01)
	assert.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	err = ValidatePrice(10000.01)
	assert.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestValidateISBN(t *testing.T) {
	assert.NoError(t, ValidateISBN("9780132350884"))

	err := ValidateISBN("978013235088")
	assert.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	assert.Error(t, ValidateISBN(""))
	assert.Error(t, ValidateISBN("97801323508844"))
}

func TestValidatePublicationYear(t *testing.T) {
	assert.NoError(t, ValidatePublicationYear(1800))
	assert.NoError(t, ValidatePublicationYear(2024))
	assert.NoError(t, ValidatePublicationYear(2100))

	err := ValidatePublicationYear(1799)
	assert.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	assert.Error(t, ValidatePublicationYear(2101))
	assert.Error(t, ValidatePublicationYear(0))
}

func TestSortColumnsAllowList(t *testing.T) {
	// Only allow-listed columns may reach the ORDER BY clause.
	for key, column := range sortColumns {
		assert.NotEmpty(t, key)
		assert.NotEmpty(t, column)
	}

	_, ok := sortColumns["created_at"]
	assert.True(t, ok)
	_, ok = sortColumns["price"]
	assert.True(t, ok)
	_, ok = sortColumns["seller_id; DROP TABLE books"]
	assert.False(t, ok)
}
