package domain

import "errors"

var (
	ErrRequestCompleted = errors.New("request is already completed")
	ErrSelfProtection   = errors.New("cannot deactivate or deny your own account")
)
