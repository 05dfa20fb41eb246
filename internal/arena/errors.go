package arena

import (
	"fmt"
	"strings"
)

// APIError is a non-2xx response from the Arena API. The status code and raw
// body are preserved so callers can report exactly what the remote said. An
// expired session surfaces here as a plain 401; it is not distinguished from
// any other rejected request.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("arena api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("arena api: status %d: %s", e.StatusCode, body)
}

// AuthError means no usable session exists: credentials are missing, the
// remote rejected the login, or the login response was unusable.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *AuthError) Unwrap() error { return e.Err }
