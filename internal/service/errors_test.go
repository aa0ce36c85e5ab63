package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"connectrpc.com/connect"

	"github.com/dinelink/dinelink/internal/billing"
	"github.com/dinelink/dinelink/internal/notify"
	"github.com/dinelink/dinelink/internal/storage"
)

func TestToConnectError(t *testing.T) {
	tests := []struct {
		err  error
		want connect.Code
	}{
		{fmt.Errorf("%w: bill b1", billing.ErrNotFound), connect.CodeNotFound},
		{fmt.Errorf("wrapped: %w", storage.ErrNotFound), connect.CodeNotFound},
		{fmt.Errorf("%w: n1", notify.ErrNotFound), connect.CodeNotFound},
		{fmt.Errorf("%w: not a member", billing.ErrAccessDenied), connect.CodePermissionDenied},
		{fmt.Errorf("%w: not the payer", billing.ErrUnauthorized), connect.CodePermissionDenied},
		{fmt.Errorf("%w: bad amount", billing.ErrInvalidInput), connect.CodeInvalidArgument},
		{fmt.Errorf("%w: finalized", billing.ErrInvalidState), connect.CodeFailedPrecondition},
		{fmt.Errorf("%w: disk full", billing.ErrStorage), connect.CodeInternal},
		{context.DeadlineExceeded, connect.CodeDeadlineExceeded},
		{errors.New("boom"), connect.CodeInternal},
		{connect.NewError(connect.CodeAlreadyExists, errors.New("dup")), connect.CodeAlreadyExists},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := connect.CodeOf(toConnectError(tt.err)); got != tt.want {
				t.Errorf("toConnectError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
