// internal/interfaces/http/handlers/common.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/your-org/bookmarket-backend/internal/pkg/apperror"
)

// respondError maps the error taxonomy onto HTTP status codes. Internal
// and transient details never reach the client.
func respondError(c *gin.Context, err error) {
	kind := apperror.KindOf(err)

	status := http.StatusInternalServerError
	switch kind {
	case apperror.KindValidation, apperror.KindBusinessRule:
		status = http.StatusBadRequest
	case apperror.KindNotFound:
		status = http.StatusNotFound
	case apperror.KindConflict:
		status = http.StatusConflict
	case apperror.KindTransient:
		status = http.StatusServiceUnavailable
	}

	if status >= 500 {
		_ = c.Error(err)
	}

	c.JSON(status, gin.H{
		"error": apperror.ClientMessage(err),
		"code":  kind.String(),
	})
}

// bindStrictJSON decodes a JSON body rejecting unknown fields, so patch
// requests cannot silently target fields outside the allow-list.
func bindStrictJSON(c *gin.Context, dest interface{}) error {
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return apperror.Validation("invalid request body: %s", err.Error())
	}
	return nil
}

// parseIDParam parses a numeric path parameter
func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, apperror.Validation("invalid %s", name)
	}
	return uint(id), nil
}

// parseInclude splits the include query parameter into relation names
func parseInclude(c *gin.Context) []string {
	raw := c.Query("include")
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
