// Package errors defines the closed failure taxonomy for the LLM
// orchestration layer. Every failure path inside the layer resolves to
// exactly one Kind; callers translate kinds into user-facing statuses and
// never see an unclassified error.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind categorizes orchestration failures for caller-side handling.
// The set is total: the orchestrator never returns an error outside it.
type Kind string

const (
	// KindConfigurationMissing indicates no API credential is configured.
	// Detected locally before any network I/O (non-retryable).
	KindConfigurationMissing Kind = "configuration_missing"

	// KindTimeout indicates the call exceeded its wall-clock budget (retryable).
	KindTimeout Kind = "timeout"

	// KindTransportFailure indicates a connection-level failure such as DNS,
	// refused, or reset (transient, surfaced for caller-side backoff).
	KindTransportFailure Kind = "transport_failure"

	// KindAuthRejected indicates the endpoint rejected the credential (non-retryable).
	KindAuthRejected Kind = "auth_rejected"

	// KindRateLimited indicates HTTP 429 from the endpoint. The orchestrator
	// never backs off internally; the kind exists so callers can.
	KindRateLimited Kind = "rate_limited"

	// KindQuotaExceeded indicates HTTP 402, an exhausted billing quota (non-retryable).
	KindQuotaExceeded Kind = "quota_exceeded"

	// KindUpstreamServerError indicates any other non-2xx status (retryable).
	KindUpstreamServerError Kind = "upstream_server_error"

	// KindMalformedResponse indicates the endpoint returned an envelope or
	// completion text that could not be decoded (non-retryable).
	KindMalformedResponse Kind = "malformed_response"

	// KindSchemaViolation indicates the decoded object lacks required fields
	// for the requested operation kind (non-retryable).
	KindSchemaViolation Kind = "schema_violation"
)

// Error is the single error type crossing the orchestration boundary.
// Detail is operator-facing; MissingFields is populated only for
// KindSchemaViolation; StatusCode only for HTTP-status-derived kinds.
type Error struct {
	Kind          Kind
	Detail        string
	MissingFields []string
	StatusCode    int
	Cause         error
}

// Error formats the failure with its kind tag and detail.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if len(e.MissingFields) > 0 {
		fmt.Fprintf(&b, " (missing: %s)", strings.Join(e.MissingFields, ", "))
	}
	return b.String()
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.Cause }

// Retryable reports whether the failure is worth a bounded retry.
// Only timeouts and upstream 5xx-class failures qualify; auth, quota,
// schema, and configuration failures never do, and rate limits are left
// to caller-side backoff.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindTimeout, KindUpstreamServerError:
		return true
	default:
		return false
	}
}

// New constructs a tagged error with a formatted detail string.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Wrap constructs a tagged error preserving the underlying cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...), Cause: cause}
}

// SchemaViolation constructs a schema failure naming the missing fields.
func SchemaViolation(missing []string) *Error {
	return &Error{
		Kind:          KindSchemaViolation,
		Detail:        "response missing required fields",
		MissingFields: missing,
	}
}

// FromStatus maps an endpoint HTTP status to its taxonomy kind.
// body should already be truncated by the caller; it becomes the detail.
func FromStatus(status int, body string) *Error {
	var kind Kind
	switch status {
	case http.StatusUnauthorized:
		kind = KindAuthRejected
	case http.StatusTooManyRequests:
		kind = KindRateLimited
	case http.StatusPaymentRequired:
		kind = KindQuotaExceeded
	default:
		kind = KindUpstreamServerError
	}
	return &Error{
		Kind:       kind,
		Detail:     fmt.Sprintf("endpoint returned HTTP %d: %s", status, body),
		StatusCode: status,
	}
}

// KindOf extracts the taxonomy kind from any error in the chain.
// Returns false for errors that did not originate in the orchestration layer.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// IsRetryable reports whether err carries a retryable taxonomy kind.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable()
}
