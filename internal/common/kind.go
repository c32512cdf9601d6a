package common

import "errors"

// Kind is a stable, transport-friendly classification of an error.
type Kind string

const (
	KindNone                Kind = ""
	KindUnauthorized        Kind = "unauthorized"
	KindNotFound            Kind = "not_found"
	KindStaleState          Kind = "stale_state"
	KindTransactionConflict Kind = "transaction_conflict"
	KindValidation          Kind = "validation"
	KindInternal            Kind = "internal"
)

// KindOf classifies err. Unknown errors are internal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrorUnauthorized),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrTokenExpired):
		return KindUnauthorized
	case errors.Is(err, ErrorNotFound):
		return KindNotFound
	case errors.Is(err, ErrStaleState):
		return KindStaleState
	case errors.Is(err, ErrTxConflict):
		return KindTransactionConflict
	case errors.Is(err, ErrorValidation),
		errors.Is(err, ErrAlreadyMatched),
		errors.Is(err, ErrMatchNotActive),
		errors.Is(err, ErrorAlreadyExists):
		return KindValidation
	default:
		return KindInternal
	}
}

// Retryable reports whether the caller may simply repeat the request.
func (k Kind) Retryable() bool {
	return k == KindStaleState || k == KindTransactionConflict
}
