package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsGuest(t *testing.T) {
	u := &User{}
	assert.True(t, u.IsGuest(), "nil password marks a guest")

	empty := ""
	u.Password = &empty
	assert.True(t, u.IsGuest(), "empty password marks a guest")

	hash := "$2a$12$abcdefghijklmnopqrstuv"
	u.Password = &hash
	assert.False(t, u.IsGuest())
}

func TestGetFullName(t *testing.T) {
	u := &User{Name: "Ada", LastName: "Lovelace"}
	assert.Equal(t, "Ada Lovelace", u.GetFullName())

	u = &User{Name: "Plato"}
	assert.Equal(t, "Plato", u.GetFullName())
}

func TestValidAddressType(t *testing.T) {
	assert.True(t, ValidAddressType(AddressTypeHome))
	assert.True(t, ValidAddressType(AddressTypeWork))
	assert.True(t, ValidAddressType(AddressTypeOther))
	assert.False(t, ValidAddressType("home"))
	assert.False(t, ValidAddressType("Vacation"))
	assert.False(t, ValidAddressType(""))
}
