package models

// User represents an account entity used for authentication and
// authorization of mutating API calls.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the internal unique identifier of the user.
	// It is used only at the persistence layer.
	ID int64 `json:"id"`

	// Username is the unique login identifier. It is carried as the
	// "sub" claim of issued tokens.
	Username string `json:"username"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized.
	PasswordHash string `json:"-"`

	// AuthToken holds the last issued session token, or nil when the
	// user is logged out. Authenticated requests are checked by verbatim
	// comparison against this value, so clearing or overwriting it
	// invalidates every previously issued token.
	AuthToken *string `json:"-"`
}

// MutUser is the payload accepted by the user create, update and login
// endpoints. Password is the plain-text password; it is hashed before it
// ever reaches the store.
type MutUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
