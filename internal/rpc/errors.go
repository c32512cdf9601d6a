package rpc

import (
	"github.com/dmitrijs2005/langmatch/internal/common"
)

// KindError is a failure reported inside a Result.
type KindError struct {
	Kind    common.Kind
	Message string
}

func (e *KindError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// Is lets errors.Is match the sentinel behind the kind.
func (e *KindError) Is(target error) bool {
	switch e.Kind {
	case common.KindUnauthorized:
		return target == common.ErrorUnauthorized
	case common.KindNotFound:
		return target == common.ErrorNotFound
	case common.KindStaleState:
		return target == common.ErrStaleState
	case common.KindTransactionConflict:
		return target == common.ErrTxConflict
	case common.KindValidation:
		return target == common.ErrorValidation
	case common.KindInternal:
		return target == common.ErrorInternal
	}
	return false
}
