package grpc

import (
	"context"
	"errors"
	"sort"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apperrors "github.com/narwhalmedia/splice/pkg/errors"
)

// ToStatus converts an application error into a gRPC status error.
// Field messages of validation errors travel as BadRequest details.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return status.FromContextError(err).Err()
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return status.Error(codes.Internal, err.Error())
	}

	st := status.New(codeFor(appErr.Type), appErr.Message)
	if len(appErr.Fields) == 0 {
		return st.Err()
	}

	fields := make([]string, 0, len(appErr.Fields))
	for f := range appErr.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	br := &errdetails.BadRequest{}
	for _, f := range fields {
		br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       f,
			Description: appErr.Fields[f],
		})
	}
	if detailed, derr := st.WithDetails(br); derr == nil {
		st = detailed
	}
	return st.Err()
}

func codeFor(t apperrors.ErrorType) codes.Code {
	switch t {
	case apperrors.ErrorTypeNotFound:
		return codes.NotFound
	case apperrors.ErrorTypeBadRequest:
		return codes.InvalidArgument
	case apperrors.ErrorTypeConflict:
		return codes.FailedPrecondition
	case apperrors.ErrorTypeUnavailable:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}

// FieldViolations returns the field messages carried by a status, if any
func FieldViolations(st *status.Status) map[string]string {
	var out map[string]string
	for _, d := range st.Details() {
		br, ok := d.(*errdetails.BadRequest)
		if !ok {
			continue
		}
		for _, v := range br.GetFieldViolations() {
			if out == nil {
				out = make(map[string]string)
			}
			out[v.GetField()] = v.GetDescription()
		}
	}
	return out
}
