package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/bookmarket-backend/internal/pkg/apperror"
)

func newTestContext(t *testing.T, method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	c.Request = req

	return c, w
}

func TestRespondErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "validation maps to 400",
			err:        apperror.Validation("rating must be between 1 and 5"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "validation_error",
		},
		{
			name:       "business rule maps to 400",
			err:        apperror.BusinessRule("you cannot review yourself"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "business_rule_violation",
		},
		{
			name:       "not found maps to 404",
			err:        apperror.NotFound("book not found"),
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
		{
			name:       "conflict maps to 409",
			err:        apperror.Conflict("you have already reviewed this seller"),
			wantStatus: http.StatusConflict,
			wantCode:   "constraint_violation",
		},
		{
			name:       "transient maps to 503",
			err:        apperror.Transient(errors.New("conn reset")),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "transient_failure",
		},
		{
			name:       "unknown maps to 500",
			err:        errors.New("pq: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(t, http.MethodGet, "/", "")
			respondError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantCode)
		})
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	c, w := newTestContext(t, http.MethodGet, "/", "")
	respondError(c, apperror.Internal(errors.New("pq: password authentication failed for host 10.0.0.5"), "failed to access user storage"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestBindStrictJSONRejectsUnknownFields(t *testing.T) {
	type patch struct {
		Name *string `json:"name"`
	}

	c, _ := newTestContext(t, http.MethodPatch, "/", `{"name":"Ada","rating":5}`)
	var dest patch
	err := bindStrictJSON(c, &dest)
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	c, _ = newTestContext(t, http.MethodPatch, "/", `{"name":"Ada"}`)
	dest = patch{}
	require.NoError(t, bindStrictJSON(c, &dest))
	require.NotNil(t, dest.Name)
	assert.Equal(t, "Ada", *dest.Name)
}

func TestParseInclude(t *testing.T) {
	c, _ := newTestContext(t, http.MethodGet, "/users/1?include=addresses,orders", "")
	assert.Equal(t, []string{"addresses", "orders"}, parseInclude(c))

	c, _ = newTestContext(t, http.MethodGet, "/users/1", "")
	assert.Nil(t, parseInclude(c))
}

func TestParseIDParam(t *testing.T) {
	c, _ := newTestContext(t, http.MethodGet, "/users/7", "")
	c.Params = gin.Params{{Key: "id", Value: "7"}}

	id, err := parseIDParam(c, "id")
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)

	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	_, err = parseIDParam(c, "id")
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}
