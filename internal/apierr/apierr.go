// Package apierr provides centralized error definitions and error handling
// utilities for boardctl. It defines sentinel errors for conditions the
// client distinguishes, typed errors that carry remote-call and workflow
// context, and classification helpers.
//
// # Error Types
//
// Two typed errors cover the interesting failure surfaces:
//   - APIError: a remote call returned a non-2xx status
//   - ApplyError: the plan-apply workflow failed mid-run
//
// # Usage
//
// Creating errors:
//
//	err := apierr.NewAPIError("create story", resp.StatusCode, body)
//	err := apierr.NewApplyError("backlog", item.Title, cause)
//
// Checking errors:
//
//	if apierr.Is(err, apierr.ErrUnauthorized) { ... }
//
//	var apiErr *apierr.APIError
//	if apierr.As(err, &apiErr) { ... }
//
//	if apierr.IsRetryable(err) { ... }
package apierr

import (
	"errors"
	"fmt"
	"net"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Remote API sentinel errors
var (
	// ErrUnauthorized indicates the bearer token is missing, expired or rejected.
	ErrUnauthorized = New("unauthorized")
	// ErrForbidden indicates the authenticated user lacks access to the resource.
	ErrForbidden = New("forbidden")
	// ErrNotFound indicates the requested remote resource does not exist.
	ErrNotFound = New("resource not found")
	// ErrServerUnavailable indicates the API returned a 5xx status.
	ErrServerUnavailable = New("server unavailable")
)

// Plan-related sentinel errors
var (
	// ErrPlanInvalid indicates the plan payload failed structural validation.
	ErrPlanInvalid = New("plan is invalid")
	// ErrPlanNotFound indicates no plan file exists at the expected path.
	ErrPlanNotFound = New("plan not found")
	// ErrNoPlanJSON indicates no JSON object could be extracted from generator output.
	ErrNoPlanJSON = New("no JSON object found in generator output")
)

// Apply workflow sentinel errors
var (
	// ErrApplyAborted indicates the apply run stopped before completing all stages.
	ErrApplyAborted = New("apply run aborted")
	// ErrNoMatchingStory indicates a developer item's title matched no created story.
	// The workflow skips such items rather than failing; this sentinel exists for
	// callers that want to surface the condition.
	ErrNoMatchingStory = New("no matching story for title")
)

// General sentinel errors
var (
	// ErrNotLoggedIn indicates no stored credentials were found.
	ErrNotLoggedIn = New("not logged in")
	// ErrInvalidInput indicates input validation failed.
	ErrInvalidInput = New("invalid input")
)

// APIError represents a non-2xx response from the remote Scrum API.
//
// Example:
//
//	err := apierr.NewAPIError("create sprint", 409, body)
//	fmt.Println(err) // `create sprint: unexpected status 409: {"error":"duplicate"}`
type APIError struct {
	// Op is the logical operation that failed, e.g. "create story".
	Op string
	// StatusCode is the HTTP status returned by the server.
	StatusCode int
	// Body is the raw response body, truncated by the caller if large.
	Body string
}

// NewAPIError creates a new APIError for the given operation and response.
func NewAPIError(op string, statusCode int, body string) *APIError {
	return &APIError{Op: op, StatusCode: statusCode, Body: body}
}

// Error returns the formatted error message.
func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.StatusCode, e.Body)
}

// Is maps status codes onto the package sentinels so callers can use
// errors.Is without inspecting the code directly.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == 401
	case ErrForbidden:
		return e.StatusCode == 403
	case ErrNotFound:
		return e.StatusCode == 404
	case ErrServerUnavailable:
		return e.StatusCode >= 500
	}
	return false
}

// ApplyError represents a failure inside the plan-apply workflow. It records
// which stage and which plan item were in flight when the run aborted, so the
// user can reconcile partial server-side state by hand.
type ApplyError struct {
	// Stage is "backlog" or "sprints".
	Stage string
	// Item is the title of the plan item being processed, if any.
	Item string
	// Err is the underlying cause.
	Err error
}

// NewApplyError creates a new ApplyError.
func NewApplyError(stage, item string, err error) *ApplyError {
	return &ApplyError{Stage: stage, Item: item, Err: err}
}

// Error returns the formatted error message.
func (e *ApplyError) Error() string {
	if e.Item != "" {
		return fmt.Sprintf("apply %s stage [item=%q]: %v", e.Stage, e.Item, e.Err)
	}
	return fmt.Sprintf("apply %s stage: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *ApplyError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether the error is transient: a 5xx response or a
// network-level failure. The apply workflow itself never retries; this exists
// so callers can tell the user whether trying again is plausible.
func IsRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500 || apiErr.StatusCode == 429
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

// IsAuth reports whether the error is an authentication or authorization
// failure, prompting the user to log in again.
func IsAuth(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden) || errors.Is(err, ErrNotLoggedIn)
}
