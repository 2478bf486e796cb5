package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// EmailRegex validates email format
var EmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// UsernameMarker is the reserved prefix every username must carry.
const UsernameMarker = "@"

// FieldError reports a single rejected input field. It is produced before
// any storage is touched.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func NewFieldError(field, reason string) *FieldError {
	return &FieldError{Field: field, Reason: reason}
}

// ValidateEmail validates email address
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return NewFieldError("email", "email is required")
	}
	if len(email) > 100 {
		return NewFieldError("email", "email is too long (max 100 characters)")
	}
	if !EmailRegex.MatchString(email) {
		return NewFieldError("email", "invalid email format")
	}
	return nil
}

// ValidateUsername validates username; it must start with the marker sign.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return NewFieldError("username", "username is required")
	}
	if !strings.HasPrefix(username, UsernameMarker) {
		return NewFieldError("username", "username should start with "+UsernameMarker+" sign")
	}
	if len(username) < 2 {
		return NewFieldError("username", "username must contain characters after the marker")
	}
	if len(username) > 100 {
		return NewFieldError("username", "username is too long (max 100 characters)")
	}
	return nil
}

// ValidatePassword validates the opaque hashed password field.
func ValidatePassword(hashed string) error {
	if hashed == "" {
		return NewFieldError("hashed_password", "hashed_password is required")
	}
	return nil
}

// ValidateChannelName validates channel name
func ValidateChannelName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return NewFieldError("name", "name is required")
	}
	if len(name) > 100 {
		return NewFieldError("name", "name is too long (max 100 characters)")
	}
	return nil
}
