package errors

import (
	"context"
	"errors"
	"strings"
)

// IsAuthError reports whether err is a credential failure.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrAuthFailed) || errors.Is(err, ErrNoAPIKey) {
		return true
	}
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// IsRateLimitError reports whether err is a quota or rate limit rejection.
func IsRateLimitError(err error) bool {
	var limitErr *UsageLimitError
	return errors.As(err, &limitErr)
}

// IsNetworkError reports whether err happened at the transport level.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsTimeoutError reports whether err is a timeout, including context deadlines.
func IsTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var timeoutErr *TimeoutError
	return errors.As(err, &timeoutErr)
}

// IsBlockedError reports whether err is a safety block.
func IsBlockedError(err error) bool {
	var blockedErr *BlockedError
	return errors.As(err, &blockedErr)
}

// IsParseError reports whether err came from decoding the response.
func IsParseError(err error) bool {
	return errors.Is(err, ErrInvalidResponse)
}

// GetHTTPStatus returns the HTTP status attached to err, or 0.
func GetHTTPStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// GetEndpoint returns the endpoint attached to err, or "".
func GetEndpoint(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Endpoint
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.Endpoint
	}
	return ""
}

// GetResponseBody returns the response body attached to err, or "".
func GetResponseBody(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Body
	}
	return ""
}

// Kind returns a short category name for err, used as a log field.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsAuthError(err):
		return "auth"
	case IsRateLimitError(err):
		return "usage_limit"
	case IsTimeoutError(err):
		return "timeout"
	case IsNetworkError(err):
		return "network"
	case IsBlockedError(err):
		return "blocked"
	case IsParseError(err):
		return "parse"
	case GetHTTPStatus(err) > 0:
		return "api"
	default:
		return "unknown"
	}
}

func containsAPIKeyInvalid(body string) bool {
	return strings.Contains(body, "API_KEY_INVALID")
}
