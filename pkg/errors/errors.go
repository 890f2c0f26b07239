// Package errors provides the error taxonomy shared by the hashing packages.
// Codes map onto gRPC status codes so a matcher service can surface them unchanged.
package errors

import (
	stderrors "errors"
	"fmt"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"
)

// Domain is reported in ErrorInfo details.
const Domain = "phash.griffincancode.github.com"

// Code classifies an AppError.
type Code int

const (
	CodeUnknown Code = iota
	CodeInternal
	CodeInvalidArgument
	CodeInvalidResolution
	CodeInvalidFilter
	CodeUnknownKind
	CodeInvalidImage
	CodeEngineLocked
	CodeFingerprintMismatch
	CodeNotFound
)

var codeNames = map[Code]string{
	CodeUnknown:             "UNKNOWN",
	CodeInternal:            "INTERNAL",
	CodeInvalidArgument:     "INVALID_ARGUMENT",
	CodeInvalidResolution:   "INVALID_RESOLUTION",
	CodeInvalidFilter:       "INVALID_FILTER",
	CodeUnknownKind:         "UNKNOWN_KIND",
	CodeInvalidImage:        "INVALID_IMAGE",
	CodeEngineLocked:        "ENGINE_LOCKED",
	CodeFingerprintMismatch: "FINGERPRINT_MISMATCH",
	CodeNotFound:            "NOT_FOUND",
}

func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("CODE(%d)", int(c))
}

// codeFromString is the inverse of Code.String.
func codeFromString(s string) Code {
	for c, name := range codeNames {
		if name == s {
			return c
		}
	}
	return CodeUnknown
}

// grpcCodeMap maps error codes to gRPC status codes.
var grpcCodeMap = map[Code]codes.Code{
	CodeUnknown:             codes.Unknown,
	CodeInternal:            codes.Internal,
	CodeInvalidArgument:     codes.InvalidArgument,
	CodeInvalidResolution:   codes.InvalidArgument,
	CodeInvalidFilter:       codes.InvalidArgument,
	CodeUnknownKind:         codes.InvalidArgument,
	CodeInvalidImage:        codes.InvalidArgument,
	CodeEngineLocked:        codes.FailedPrecondition,
	CodeFingerprintMismatch: codes.FailedPrecondition,
	CodeNotFound:            codes.NotFound,
}

// AppError is the base error type with structured error code and metadata.
type AppError struct {
	Code     Code
	Message  string
	Metadata map[string]string
	Cause    error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	s := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if len(e.Metadata) > 0 {
		s += fmt.Sprintf(" %v", e.Metadata)
	}
	if e.Cause != nil {
		s += fmt.Sprintf(" caused by: %v", e.Cause)
	}
	return s
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *AppError) Unwrap() error { return e.Cause }

// GRPCCode returns the corresponding gRPC status code.
func (e *AppError) GRPCCode() codes.Code {
	if c, ok := grpcCodeMap[e.Code]; ok {
		return c
	}
	return codes.Unknown
}

// ToProto converts to an ErrorInfo detail message.
func (e *AppError) ToProto() *errdetails.ErrorInfo {
	info := &errdetails.ErrorInfo{Reason: e.Code.String(), Domain: Domain}
	if len(e.Metadata) > 0 {
		info.Metadata = e.Metadata
	}
	return info
}

// GRPCStatus returns a gRPC status with the ErrorInfo attached.
func (e *AppError) GRPCStatus() *status.Status {
	st := status.New(e.GRPCCode(), e.Error())
	detail, _ := anypb.New(e.ToProto())
	st, _ = st.WithDetails(detail)
	return st
}

// New creates a new AppError with the given code and message.
func New(code Code, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}

// Newf creates a new AppError with formatted message.
func Newf(code Code, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with an AppError.
func Wrap(err error, code Code, msg string) *AppError {
	return &AppError{Code: code, Message: msg, Cause: err}
}

// Wrapf wraps an existing error with formatted message.
func Wrapf(err error, code Code, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// WithMetadata adds metadata to an AppError.
func (e *AppError) WithMetadata(key, value string) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]string)
	}
	e.Metadata[key] = value
	return e
}

// FromGRPCError extracts AppError from a gRPC error if present.
func FromGRPCError(err error) *AppError {
	st, ok := status.FromError(err)
	if !ok {
		return &AppError{Code: CodeUnknown, Message: err.Error(), Cause: err}
	}

	for _, detail := range st.Details() {
		// Details packed by GRPCStatus arrive as Any wrapping ErrorInfo
		if any, ok := detail.(*anypb.Any); ok {
			var info errdetails.ErrorInfo
			if err := any.UnmarshalTo(&info); err == nil && info.Domain == Domain {
				return &AppError{Code: codeFromString(info.Reason), Message: st.Message(), Metadata: info.Metadata}
			}
		}
		if info, ok := detail.(*errdetails.ErrorInfo); ok && info.Domain == Domain {
			return &AppError{Code: codeFromString(info.Reason), Message: st.Message(), Metadata: info.Metadata}
		}
	}

	return &AppError{Code: grpcToCode(st.Code()), Message: st.Message()}
}

// grpcToCode maps gRPC codes back to our error codes (best effort).
func grpcToCode(c codes.Code) Code {
	switch c {
	case codes.InvalidArgument:
		return CodeInvalidArgument
	case codes.FailedPrecondition:
		return CodeEngineLocked
	case codes.NotFound:
		return CodeNotFound
	case codes.Internal:
		return CodeInternal
	default:
		return CodeUnknown
	}
}

// IsCode checks if err, or any error it wraps, is an AppError with the given code.
func IsCode(err error, code Code) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// CodeOf returns the code of the first AppError in err's chain.
func CodeOf(err error) Code {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// Ensure ErrorInfo satisfies proto.Message for anypb packing.
var _ proto.Message = (*errdetails.ErrorInfo)(nil)
