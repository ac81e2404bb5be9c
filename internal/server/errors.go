package server

import (
	"context"
	"errors"

	"draft-order/internal/domain"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

func codeOf(err error) connect.Code {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return connect.CodeInvalidArgument
	case errors.Is(err, domain.ErrConflict):
		return connect.CodeAlreadyExists
	case errors.Is(err, domain.ErrState):
		return connect.CodeFailedPrecondition
	case errors.Is(err, domain.ErrNotFound):
		return connect.CodeNotFound
	case errors.Is(err, domain.ErrUnauthenticated):
		return connect.CodeUnauthenticated
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	}
	return connect.CodeInternal
}

// toConnectError maps domain errors onto connect codes. Internal failures are
// logged and replaced by a generic message.
func toConnectError(ctx context.Context, err error) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	code := codeOf(err)
	if code == connect.CodeInternal {
		zerolog.Ctx(ctx).Error().Err(err).Msg("request failed")
		return connect.NewError(code, errors.New("internal error"))
	}

	zerolog.Ctx(ctx).Debug().Err(err).Str("code", code.String()).Msg("request rejected")
	return connect.NewError(code, err)
}
