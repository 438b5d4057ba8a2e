package account

import "errors"

var (
	// ErrValidation marks malformed or missing input, rejected before any lookup.
	ErrValidation = errors.New("invalid input")

	// ErrDuplicateAccount marks an email already bound to an account.
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrAccountNotFound marks a lookup miss by email or id.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidOrExpiredCode marks a verification code that is absent or stale.
	ErrInvalidOrExpiredCode = errors.New("code expired or invalid")

	// ErrInvalidCredentials marks a failed password check at login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
