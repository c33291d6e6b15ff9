package transport

import (
	"context"
	"errors"
	"net"
	"strings"

	"switchtrace/internal/domain"
)

// classifyConnectError maps dial and handshake failures to a transport kind
func classifyConnectError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.ErrTimeout
	}

	// x/crypto/ssh reports rejected credentials only through its message
	if strings.Contains(err.Error(), "unable to authenticate") {
		return domain.ErrAuth
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.ErrTimeout
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return domain.ErrUnreachable
	}

	return domain.ErrSession
}

// classifyCLIError maps shell dialog failures to a transport kind
func classifyCLIError(err error) error {
	switch {
	case errors.Is(err, errEnableRejected):
		return domain.ErrAuth
	case errors.Is(err, errReadTimeout), errors.Is(err, context.DeadlineExceeded):
		return domain.ErrTimeout
	default:
		return domain.ErrSession
	}
}
