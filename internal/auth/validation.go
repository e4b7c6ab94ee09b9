package auth

import (
	"errors"
	"strings"
	"unicode"
)

var (
	ErrInvalidUsername  = errors.New("username must be between 1 and 100 characters")
	ErrInvalidPassword  = errors.New("password must be at least 8 characters long")
	ErrInvalidWorkspace = errors.New("workspace name must be between 1 and 100 characters")
)

// ValidateUsername checks the member id used for login.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if len(username) == 0 || len(username) > 100 {
		return ErrInvalidUsername
	}

	for _, r := range username {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != '-' && r != '_' {
			return ErrInvalidUsername
		}
	}
	return nil
}

// ValidatePassword checks password requirements.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrInvalidPassword
	}
	if len(password) > 128 {
		return ErrInvalidPassword
	}

	hasLetter := false
	hasDigit := false
	for _, r := range password {
		if unicode.IsLetter(r) {
			hasLetter = true
		}
		if unicode.IsDigit(r) {
			hasDigit = true
		}
		if hasLetter && hasDigit {
			break
		}
	}
	if !hasLetter || !hasDigit {
		return ErrInvalidPassword
	}
	return nil
}

// ValidateWorkspaceName checks the tenant name supplied at registration.
func ValidateWorkspaceName(name string) error {
	name = strings.TrimSpace(name)
	if len(name) == 0 || len(name) > 100 {
		return ErrInvalidWorkspace
	}
	return nil
}

// SanitizeString strips control characters from free-text input.
func SanitizeString(s string) string {
	s = strings.TrimSpace(s)
	var builder strings.Builder
	for _, r := range s {
		if r >= 32 && r != 127 {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}
