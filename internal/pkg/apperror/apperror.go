// internal/pkg/apperror/apperror.go
package apperror

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Kind classifies an error into one of the categories callers can act on.
type Kind int

const (
	// KindInternal is the fallback for unexpected failures. Its detail must
	// never reach API clients.
	KindInternal Kind = iota
	// KindValidation marks malformed or out-of-range input, rejected before
	// any write happened.
	KindValidation
	// KindNotFound marks a missing referenced entity.
	KindNotFound
	// KindConflict marks a uniqueness, foreign-key or check violation
	// surfaced by the store.
	KindConflict
	// KindBusinessRule marks a domain rule rejection (self review, missing
	// tracking number, invalid status target, address not owned).
	KindBusinessRule
	// KindTransient marks a store connectivity failure. The whole operation
	// is safe to retry because nothing was committed.
	KindTransient
)

// String returns the machine-readable code for the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation_error"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "constraint_violation"
	case KindBusinessRule:
		return "business_rule_violation"
	case KindTransient:
		return "transient_failure"
	default:
		return "internal_error"
	}
}

// Error carries a kind plus a client-safe message. The wrapped cause stays
// server-side for logging.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Validation creates a validation error.
func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a not-found error.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict creates a constraint-violation error.
func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// BusinessRule creates a business-rule-violation error.
func BusinessRule(format string, args ...interface{}) *Error {
	return &Error{Kind: KindBusinessRule, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected failure behind a generic message.
func Internal(cause error, message string) *Error {
	return &Error{Kind: KindInternal, Message: message, cause: cause}
}

// Transient wraps a retryable store failure.
func Transient(cause error) *Error {
	return &Error{Kind: KindTransient, Message: "storage temporarily unavailable", cause: cause}
}

// KindOf extracts the kind from any error chain. Unknown errors are internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// ClientMessage returns the message safe to expose to API callers.
// Internal and transient errors get a generic message so store error text
// never leaks.
func ClientMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case KindInternal:
			return "internal server error"
		case KindTransient:
			return "service temporarily unavailable, please retry"
		default:
			return appErr.Message
		}
	}
	return "internal server error"
}

// FromDB translates a gorm/driver error into the taxonomy. Requires the
// connection to be opened with TranslateError so the postgres driver maps
// SQLSTATEs onto gorm sentinel errors.
func FromDB(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound("%s not found", entity)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Conflict("%s already exists", entity)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return Conflict("%s references a missing record", entity)
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return Conflict("%s violates a data constraint", entity)
	case errors.Is(err, gorm.ErrInvalidTransaction):
		return Transient(err)
	default:
		return Internal(err, fmt.Sprintf("failed to access %s storage", entity))
	}
}
