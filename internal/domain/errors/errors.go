package errors

import "errors"

var (
	ErrAlreadyExists             = errors.New("already exists")
	ErrNotFound                  = errors.New("not found")
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrUnauthorized              = errors.New("unauthorized")
	ErrPaymentVerificationFailed = errors.New("payment verification failed")
	ErrInvalidTransition         = errors.New("invalid status transition")
	ErrStatusConflict            = errors.New("order status changed concurrently")
	ErrTokenUnavailable          = errors.New("token unavailable")
	ErrInvalidOrder              = errors.New("invalid order")
	ErrInvalidTarget             = errors.New("invalid protein target")
	ErrCapacityExceeded          = errors.New("capacity exceeded")
	ErrInvalidMenuItem           = errors.New("invalid menu item")
)
