package domain

import (
	"regexp"
	"time"
	"unicode/utf8"
)

// User represents a registered account. PasswordHash never leaves the
// process: JSON serialization always yields the public projection.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"created_at"`
}

const (
	MinUsernameLen = 3
	MaxUsernameLen = 30
	MinPasswordLen = 6
	// bcrypt silently truncates anything beyond 72 bytes.
	MaxPasswordLen = 72
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidUsername reports whether the username length is acceptable. The
// bound counts characters, not bytes, so multibyte names are not
// penalized.
func ValidUsername(username string) bool {
	n := utf8.RuneCountInString(username)
	return n >= MinUsernameLen && n <= MaxUsernameLen
}

// ValidPassword reports whether a plaintext password is acceptable for hashing.
func ValidPassword(password string) bool {
	return len(password) >= MinPasswordLen && len(password) <= MaxPasswordLen
}

// ValidEmail checks the basic local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateCredentials checks all registration invariants and returns the
// first violation as an INVALID domain error.
func ValidateCredentials(username, password, email string) error {
	if !ValidUsername(username) {
		return NewError(ErrCodeInvalid, "username must be between 3 and 30 characters")
	}
	if !ValidPassword(password) {
		return NewError(ErrCodeInvalid, "password must be between 6 and 72 characters")
	}
	if !ValidEmail(email) {
		return NewError(ErrCodeInvalid, "invalid email address")
	}
	return nil
}
