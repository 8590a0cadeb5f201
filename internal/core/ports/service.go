package ports

import (
	"context"
	"errors"
)

// Toaster shows transient success/error messages to the user.
type Toaster interface {
	Success(msg string)
	Error(msg string)
}

// TokenSource is what the gateway needs from the session.
type TokenSource interface {
	Token() string
	Invalidate(ctx context.Context)
}

// IsSessionExpired reports whether err carries a rejected-session status.
func IsSessionExpired(err error) bool {
	var se interface{ SessionExpired() bool }
	return errors.As(err, &se) && se.SessionExpired()
}
