package main

import (
	"errors"

	"google.golang.org/grpc/codes"

	apperrors "github.com/GriffinCanCode/phash/pkg/errors"
)

// exitCode maps a command error to the process status. Application errors
// exit with their gRPC status code (3 for invalid input, 5 for a missing
// file, 9 for a locked engine); anything else exits with 1.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if c := appErr.GRPCCode(); c != codes.OK {
			return int(c)
		}
	}
	return 1
}
