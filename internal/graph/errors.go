package graph

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/microsoftgraph/msgraph-sdk-go/models/odataerrors"

	"github.com/alnah/go-profilestamp/internal/apierr"
)

var (
	// ErrClientIDMissing indicates no application (client) id was configured.
	ErrClientIDMissing = errors.New("graph client id not set")

	// ErrUserRequired indicates app-only credentials were given without a target user.
	ErrUserRequired = errors.New("a target user is required with a client secret")

	// ErrNotDraft indicates the message exists but is no longer a draft.
	ErrNotDraft = errors.New("message is not a draft")
)

// classifyError maps Graph SDK and credential errors onto apierr sentinels.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var odataErr *odataerrors.ODataError
	if errors.As(err, &odataErr) {
		msg := odataErr.Error()
		if main := odataErr.GetErrorEscaped(); main != nil && main.GetMessage() != nil {
			msg = *main.GetMessage()
			if main.GetCode() != nil {
				msg = *main.GetCode() + ": " + msg
			}
		}
		return apierr.WithRetryAfter(apierr.Classify(odataErr.ResponseStatusCode, msg), retryAfter(odataErr))
	}

	var authErr *azidentity.AuthenticationFailedError
	if errors.As(err, &authErr) {
		return fmt.Errorf("%v: %w", err, apierr.ErrAuthFailed)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", apierr.ErrTimeout)
	}

	return err
}

// retryAfter reads the Retry-After header Graph sends with throttled
// responses, in seconds. Zero means no hint.
func retryAfter(e *odataerrors.ODataError) time.Duration {
	if e.ResponseHeaders == nil {
		return 0
	}
	for _, v := range e.ResponseHeaders.Get("Retry-After") {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return 0
}
