package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/signalsfoundry/constellation-deployment/core"
	"github.com/signalsfoundry/constellation-deployment/internal/manifest"
	"github.com/signalsfoundry/constellation-deployment/kb"
	"github.com/signalsfoundry/constellation-deployment/model"
	"github.com/signalsfoundry/constellation-deployment/planner"
)

// ErrInvalidRequest is the sentinel behind every ValidationError.
var ErrInvalidRequest = errors.New("invalid request")

// FieldViolation names one bad request field.
type FieldViolation struct {
	Field       string
	Description string
}

// ValidationError collects the field violations of a request.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Field + ": " + v.Description
	}
	return fmt.Sprintf("%v: %s", ErrInvalidRequest, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidRequest }

func (e *ValidationError) add(field, format string, args ...any) {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Description: fmt.Sprintf(format, args...)})
}

func (e *ValidationError) orNil() error {
	if len(e.Violations) == 0 {
		return nil
	}
	return e
}

// ToStatusError maps planner errors onto gRPC status codes. Validation
// failures carry an errdetails.BadRequest listing each field violation.
func ToStatusError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return badRequest(verr)

	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, manifest.ErrInvalidManifest),
		errors.Is(err, planner.ErrInvalidConfig),
		errors.Is(err, model.ErrOutOfBounds),
		errors.Is(err, core.ErrDegenerateState):
		return status.Error(codes.InvalidArgument, err.Error())

	case errors.Is(err, kb.ErrLaunchSiteNotFound):
		return status.Error(codes.NotFound, err.Error())

	case errors.Is(err, planner.ErrInfeasible):
		return status.Error(codes.FailedPrecondition, err.Error())

	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())

	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())

	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func badRequest(verr *ValidationError) error {
	st := status.New(codes.InvalidArgument, verr.Error())
	br := &errdetails.BadRequest{}
	for _, v := range verr.Violations {
		br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       v.Field,
			Description: v.Description,
		})
	}
	detailed, err := st.WithDetails(br)
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}
