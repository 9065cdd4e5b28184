// Package apierr provides shared error sentinels and retry infrastructure
// for Microsoft Graph calls. Service errors are classified into these
// sentinels at the client boundary.
//
// Classify maps an HTTP status to a sentinel using fmt.Errorf("%s: %w", msg, sentinel).
// Callers check with errors.Is(err, apierr.ErrRateLimit) etc.
package apierr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for Graph API failures.
var (
	// ErrRateLimit indicates Graph throttled the request (temporary, retryable).
	ErrRateLimit = errors.New("rate limit exceeded")

	// ErrTimeout indicates a request timed out.
	ErrTimeout = errors.New("request timeout")

	// ErrAuthFailed indicates the credential was rejected or lacks consent.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrNotFound indicates the user or message does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrBadRequest indicates a client error (4xx) that is not otherwise classified.
	ErrBadRequest = errors.New("bad request")

	// ErrUnavailable indicates a server-side failure (5xx).
	ErrUnavailable = errors.New("service unavailable")
)

// Classify wraps msg with the sentinel matching an HTTP status.
// Statuses without a sentinel yield a plain error.
func Classify(status int, msg string) error {
	switch {
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%s: %w", msg, ErrRateLimit)
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return fmt.Errorf("%s: %w", msg, ErrAuthFailed)
	case status == http.StatusNotFound:
		return fmt.Errorf("%s: %w", msg, ErrNotFound)
	case status == http.StatusRequestTimeout, status == http.StatusGatewayTimeout:
		return fmt.Errorf("%s: %w", msg, ErrTimeout)
	case status >= 500:
		return fmt.Errorf("%s: %w", msg, ErrUnavailable)
	case status >= 400:
		return fmt.Errorf("%s: %w", msg, ErrBadRequest)
	default:
		return errors.New(msg)
	}
}

// IsRetryable reports whether err is transient: throttling, timeouts,
// server-side failures, or an expired per-attempt deadline.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRateLimit) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrUnavailable) ||
		errors.Is(err, context.DeadlineExceeded)
}
