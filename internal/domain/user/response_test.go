package user

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildResponseOmitsSecretsAndRelations(t *testing.T) {
	hash := "$2a$12$abcdefghijklmnopqrstuv"
	u := &User{
		ID:          1,
		Name:        "Ada",
		LastName:    "Lovelace",
		PhoneNumber: "5551234",
		Email:       "ada@example.com",
		Password:    &hash,
		IsSeller:    true,
		Rating:      4.5,
		TotalSales:  3,
		CreatedAt:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	resp := BuildResponse(u)

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	assert.NotContains(t, string(data), hash)
	assert.NotContains(t, string(data), "addresses")
	assert.NotContains(t, string(data), "orders")
	assert.Contains(t, string(data), `"rating":4.5`)
}

func TestAttachAddressesEmptyRendersBracket(t *testing.T) {
	resp := BuildResponse(&User{ID: 1})
	resp.AttachAddresses([]Address{})

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	// Requested-but-empty must be distinguishable from not requested.
	assert.Contains(t, string(data), `"addresses":[]`)
}

func TestAttachAddressesCarriesDefaultFlag(t *testing.T) {
	resp := BuildResponse(&User{ID: 1})
	home := AddressTypeHome
	resp.AttachAddresses([]Address{
		{ID: 10, Street: "1 Main St", City: "Springfield", IsDefault: true, AddressType: &home},
		{ID: 11, Street: "2 Side St", City: "Springfield"},
	})

	require.NotNil(t, resp.Addresses)
	require.Len(t, *resp.Addresses, 2)
	assert.True(t, (*resp.Addresses)[0].IsDefault)
	assert.False(t, (*resp.Addresses)[1].IsDefault)
}

func TestAttachOrdersNilBecomesEmpty(t *testing.T) {
	resp := BuildResponse(&User{ID: 1})
	resp.AttachOrders(nil)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"orders":[]`)
}

func TestIncludeRequested(t *testing.T) {
	assert.True(t, includeRequested([]string{"addresses", "orders"}, "orders"))
	assert.True(t, includeRequested([]string{"ADDRESSES"}, "addresses"))
	assert.True(t, includeRequested([]string{"  addresses  "}, "addresses"))
	assert.False(t, includeRequested([]string{"addresses"}, "orders"))
	assert.False(t, includeRequested(nil, "addresses"))

	// Unknown names are simply never matched; they do not error.
	assert.False(t, includeRequested([]string{"wishlists"}, "addresses"))
}
