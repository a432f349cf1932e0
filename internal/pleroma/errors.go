// ABOUTME: Error values returned by the API client
// ABOUTME: APIError carries the HTTP status and the server's error message

package pleroma

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoToken is returned by calls that need an access token when none is configured.
var ErrNoToken = errors.New("pleroma: access token required")

// APIError is a non-2xx response from the instance.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("pleroma: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("pleroma: %d %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is a 401 or 403 from the instance.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}
