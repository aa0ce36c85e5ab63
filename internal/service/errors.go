package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/dinelink/dinelink/internal/auth"
	"github.com/dinelink/dinelink/internal/billing"
	"github.com/dinelink/dinelink/internal/middleware"
	"github.com/dinelink/dinelink/internal/notify"
	"github.com/dinelink/dinelink/internal/storage"
)

// toConnectError maps domain errors onto Connect codes. The message of the
// original error is kept so clients can show it.
func toConnectError(err error) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	code := connect.CodeInternal
	switch {
	case errors.Is(err, billing.ErrNotFound), errors.Is(err, storage.ErrNotFound), errors.Is(err, notify.ErrNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, billing.ErrAccessDenied), errors.Is(err, billing.ErrUnauthorized):
		code = connect.CodePermissionDenied
	case errors.Is(err, billing.ErrInvalidInput):
		code = connect.CodeInvalidArgument
	case errors.Is(err, billing.ErrInvalidState):
		code = connect.CodeFailedPrecondition
	case errors.Is(err, context.Canceled):
		code = connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		code = connect.CodeDeadlineExceeded
	}
	return connect.NewError(code, err)
}

// callerID returns the authenticated user, or CodeUnauthenticated.
func callerID(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}
