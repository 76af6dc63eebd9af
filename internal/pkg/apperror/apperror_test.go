package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestKindCodes(t *testing.T) {
	assert.Equal(t, "validation_error", KindValidation.String())
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "constraint_violation", KindConflict.String())
	assert.Equal(t, "business_rule_violation", KindBusinessRule.String())
	assert.Equal(t, "transient_failure", KindTransient.String())
	assert.Equal(t, "internal_error", KindInternal.String())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad input")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("user not found")))
	assert.Equal(t, KindConflict, KindOf(Conflict("duplicate")))
	assert.Equal(t, KindBusinessRule, KindOf(BusinessRule("not allowed")))
	assert.Equal(t, KindTransient, KindOf(Transient(errors.New("conn reset"))))
	assert.Equal(t, KindInternal, KindOf(errors.New("anything else")))
}

func TestKindOfWrappedError(t *testing.T) {
	inner := NotFound("book not found")
	wrapped := fmt.Errorf("loading listing: %w", inner)
	assert.Equal(t, KindNotFound, KindOf(wrapped))
}

func TestClientMessageHidesInternals(t *testing.T) {
	dbErr := errors.New("pq: connection refused host=10.0.0.5")

	msg := ClientMessage(Internal(dbErr, "failed to access user storage"))
	assert.Equal(t, "internal server error", msg)
	assert.NotContains(t, msg, "10.0.0.5")

	msg = ClientMessage(Transient(dbErr))
	assert.Equal(t, "service temporarily unavailable, please retry", msg)

	msg = ClientMessage(BusinessRule("you cannot review yourself"))
	assert.Equal(t, "you cannot review yourself", msg)

	msg = ClientMessage(errors.New("raw driver error"))
	assert.Equal(t, "internal server error", msg)
}

func TestFromDB(t *testing.T) {
	assert.NoError(t, FromDB(nil, "user"))

	err := FromDB(gorm.ErrRecordNotFound, "user")
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "user not found", ClientMessage(err))

	err = FromDB(gorm.ErrDuplicatedKey, "user")
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, "user already exists", ClientMessage(err))

	err = FromDB(gorm.ErrForeignKeyViolated, "order")
	assert.Equal(t, KindConflict, KindOf(err))

	err = FromDB(gorm.ErrCheckConstraintViolated, "review")
	assert.Equal(t, KindConflict, KindOf(err))

	err = FromDB(gorm.ErrInvalidTransaction, "order")
	assert.Equal(t, KindTransient, KindOf(err))

	err = FromDB(errors.New("driver: bad connection"), "book")
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, "internal server error", ClientMessage(err))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Internal(cause, "something broke")
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "root cause")
}
