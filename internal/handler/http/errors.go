// SPDX-License-Identifier: Apache-2.0

package http

import "errors"

// Sentinel errors used by the transport layer when decoding requests.
// Callers can match against them with [errors.Is].
var (
	// ErrInvalidJSON is returned when a request body cannot be decoded
	// into the expected payload shape.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidID is returned when a path parameter cannot be parsed as
	// a numeric identifier.
	ErrInvalidID = errors.New("incorrect parameter type")

	// ErrMissingToken is returned by the auth middleware when a mutating
	// request carries neither an auth cookie nor an Authorization header.
	ErrMissingToken = errors.New("no auth token was provided")

	// ErrNoLocalConfig is returned by the localConfig endpoints when the
	// server was started without a JSON config file.
	ErrNoLocalConfig = errors.New("server is running without a config file")
)
