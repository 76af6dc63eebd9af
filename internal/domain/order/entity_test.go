package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	valid := []OrderStatus{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}
	for _, s := range valid {
		assert.True(t, ValidStatus(s), "expected %q to be valid", s)
	}

	assert.False(t, ValidStatus("Returned"))
	assert.False(t, ValidStatus("pending"))
	assert.False(t, ValidStatus(""))
}

func TestValidPaymentStatus(t *testing.T) {
	valid := []PaymentStatus{PaymentUnpaid, PaymentProcessing, PaymentPaid, PaymentRefunded}
	for _, s := range valid {
		assert.True(t, ValidPaymentStatus(s), "expected %q to be valid", s)
	}

	assert.False(t, ValidPaymentStatus("Chargeback"))
	assert.False(t, ValidPaymentStatus("paid"))
	assert.False(t, ValidPaymentStatus(""))
}

func TestCanShip(t *testing.T) {
	o := &Order{}
	assert.False(t, o.CanShip(), "order without tracking number must not ship")

	empty := ""
	o.TrackingNumber = &empty
	assert.False(t, o.CanShip(), "empty tracking number must not ship")

	tracking := "TRK-123456"
	o.TrackingNumber = &tracking
	assert.True(t, o.CanShip())
}

func TestAttachBooksAlwaysRendersSlice(t *testing.T) {
	resp := BuildResponse(&Order{ID: 1, Status: StatusPending, PaymentStatus: PaymentUnpaid})
	assert.Nil(t, resp.Books, "books block absent when not requested")

	resp.AttachBooks(nil)
	assert.NotNil(t, resp.Books)
	assert.Empty(t, *resp.Books, "requested but empty renders []")

	resp.AttachBooks([]BookSummary{{ID: 7, Title: "Dune", Author: "Frank Herbert", Price: 9.5, SellerID: 2}})
	assert.Len(t, *resp.Books, 1)
	assert.Equal(t, "Dune", (*resp.Books)[0].Title)
}

func TestIncludeRequested(t *testing.T) {
	assert.True(t, includeRequested([]string{"books"}, "books"))
	assert.True(t, includeRequested([]string{" Books "}, "books"))
	assert.False(t, includeRequested([]string{"addresses"}, "books"))
	assert.False(t, includeRequested(nil, "books"))
}
