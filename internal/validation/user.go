// Package validation holds input rules shared by services and handlers.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"craveconnect/internal/models"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
	MinPasswordLength = 6
	MaxPasswordLength = 128
	MaxBioLength      = 500
)

var (
	emailRegex    = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
)

// NormalizeEmail lowercases and trims an address before storage or lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateUsername checks length and allowed characters.
func ValidateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < MinUsernameLength || n > MaxUsernameLength {
		return fmt.Errorf("username must be between %d and %d characters", MinUsernameLength, MaxUsernameLength)
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username may only contain letters, numbers, dots, dashes and underscores")
	}
	return nil
}

// ValidateEmail checks the address shape.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("please provide a valid email")
	}
	return nil
}

// ValidatePassword enforces the length bounds.
func ValidatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	if n > MaxPasswordLength {
		return fmt.Errorf("password must be at most %d characters", MaxPasswordLength)
	}
	return nil
}

// ValidateBio bounds the profile text.
func ValidateBio(bio string) error {
	if utf8.RuneCountInString(bio) > MaxBioLength {
		return fmt.Errorf("bio cannot exceed %d characters", MaxBioLength)
	}
	return nil
}

// ValidateRole accepts only the known roles.
func ValidateRole(role models.Role) error {
	if !role.Valid() {
		return fmt.Errorf("invalid role %q", role)
	}
	return nil
}

// ValidateSignupRole rejects roles that cannot be self-assigned.
func ValidateSignupRole(role models.Role) error {
	switch role {
	case models.RoleFoodie, models.RoleChef:
		return nil
	case models.RoleAdmin:
		return fmt.Errorf("admin accounts cannot be self-registered")
	default:
		return fmt.Errorf("invalid role %q", role)
	}
}
