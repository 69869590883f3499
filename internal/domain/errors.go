package domain

import "errors"

// Rejection reasons. Candidates failing with these are dropped, never fatal.
var (
	ErrMissingTitle  = errors.New("missing title")
	ErrTitleTooShort = errors.New("title too short")
	ErrInvalidLink   = errors.New("invalid link")
	ErrWeakSignal    = errors.New("classification signal too weak")
)

// ErrStoreUnavailable marks a failed read or write of the persisted history.
var ErrStoreUnavailable = errors.New("article store unavailable")

// RejectionReason maps an assembler error to a short label for logs and metrics.
func RejectionReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingTitle):
		return "missing_title"
	case errors.Is(err, ErrTitleTooShort):
		return "short_title"
	case errors.Is(err, ErrInvalidLink):
		return "invalid_link"
	case errors.Is(err, ErrWeakSignal):
		return "weak_signal"
	default:
		return "other"
	}
}
