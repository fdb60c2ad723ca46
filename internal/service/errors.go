package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	// ErrTokenIsExpiredOrInvalid covers every JWT validation failure:
	// bad signature, wrong issuer, expired, malformed.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrNotLoggedIn is returned when a presented token does not match the
	// token currently stored for the user, i.e. the session was revoked by
	// a logout or superseded by a newer login.
	ErrNotLoggedIn = errors.New("user is not logged in")

	// ErrRootAlreadyClaimed is returned when the bootstrap root account is
	// asked to log in without a password after it has already been claimed.
	ErrRootAlreadyClaimed = errors.New("root account is already claimed")

	// ErrNotResourceOwner is returned when an authenticated user tries to
	// modify an account other than their own.
	ErrNotResourceOwner = errors.New("authenticated user does not own this resource")

	ErrTokenCreationFailed = errors.New("token creation failed")
)
