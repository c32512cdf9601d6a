package grpc

import (
	"errors"

	"github.com/dmitrijs2005/langmatch/internal/common"
	"github.com/dmitrijs2005/langmatch/internal/rpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const internalMessage = "internal error"

// publicMessage hides internal failures from callers.
func publicMessage(err error) string {
	if common.KindOf(err) == common.KindInternal {
		return internalMessage
	}
	return err.Error()
}

// toResult fills the envelope of the core calls.
func toResult(err error) rpc.Result {
	if err == nil {
		return rpc.Result{Success: true}
	}
	return rpc.Result{Error: publicMessage(err), ErrorKind: common.KindOf(err)}
}

// toStatus maps service errors to gRPC status codes.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	var code codes.Code
	switch {
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		code = codes.Unauthenticated
	case errors.Is(err, common.ErrorUnauthorized):
		code = codes.PermissionDenied
	case errors.Is(err, common.ErrorNotFound):
		code = codes.NotFound
	case errors.Is(err, common.ErrorAlreadyExists):
		code = codes.AlreadyExists
	case errors.Is(err, common.ErrAlreadyMatched), errors.Is(err, common.ErrMatchNotActive):
		code = codes.FailedPrecondition
	case errors.Is(err, common.ErrorValidation):
		code = codes.InvalidArgument
	case errors.Is(err, common.ErrStaleState), errors.Is(err, common.ErrTxConflict):
		code = codes.Aborted
	default:
		code = codes.Internal
	}
	return status.Error(code, publicMessage(err))
}
