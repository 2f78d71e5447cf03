package service

import "errors"

var (
	// ErrInvalidDataProvided is returned when a request payload fails
	// shape validation (empty email, empty message, and the like).
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrWrongPassword is returned on a login attempt where the password
	// does not match the stored hash.
	ErrWrongPassword = errors.New("wrong password")

	// ErrTokenIsExpiredOrInvalid is returned when a presented JWT fails
	// signature, issuer, or expiry checks.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrOracleUnavailable is returned when the conversational fallback
	// cannot reach the language oracle. Classification failures never
	// produce it; they degrade silently.
	ErrOracleUnavailable = errors.New("language oracle is unavailable")
)
