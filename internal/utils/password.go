package utils

import "errors"

// bcrypt silently ignores input past 72 bytes, so anything longer would
// hash the same as its truncation. Reject it up front instead.
const maxPasswordBytes = 72

var ErrPasswordTooLong = errors.New("password must be at most 72 bytes")

// ValidatePassword checks a new or reset password against the platform
// policy. Any non-empty password is acceptable; only inputs bcrypt cannot
// hash faithfully are rejected.
func ValidatePassword(password string) error {
	if len(password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}
