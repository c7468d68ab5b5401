package model

// User is a registered account.
// Password holds an already-hashed credential; this package never inspects it.
type User struct {
	// UserID is the row id of the user.
	UserID int64 `json:"user_id"`

	// Username is the unique login name.
	Username string `json:"username"`

	// Email is the unique contact address.
	Email string `json:"email"`

	// EmailVerified reports whether the email address has been confirmed.
	EmailVerified bool `json:"email_verified"`

	// Password is the stored password hash.
	Password string `json:"-"`

	// Administrator grants access to moderation features.
	Administrator bool `json:"administrator"`
}

// NewUser is the input for registering a user.
type NewUser struct {
	Username     string `validate:"required,max=64"`
	Email        string `validate:"required,email"`
	PasswordHash string `validate:"required"`
	// Administrator marks the account as an administrator.
	Administrator bool
}
