// Package validation checks request payloads before they reach storage.
package validation

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	"saathi/internal/models"
)

const maxUsernameLength = 64

// ValidateUsername rejects empty usernames and usernames containing whitespace.
func ValidateUsername(username string) error {
	if username == "" {
		return errors.New("username is required")
	}
	if len(username) > maxUsernameLength {
		return fmt.Errorf("username must be at most %d characters", maxUsernameLength)
	}
	if strings.IndexFunc(username, unicode.IsSpace) >= 0 {
		return errors.New("username cannot contain whitespace")
	}
	return nil
}

// ValidateEmail accepts a bare RFC 5322 address without a display name.
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("invalid email address %q", email)
	}
	return nil
}

// ValidateRegistration checks a signup body.
func ValidateRegistration(r models.Registration) error {
	if err := ValidateUsername(r.Username); err != nil {
		return err
	}
	if err := ValidateEmail(r.Email); err != nil {
		return err
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// ValidateProfile checks a profile save or update body. years_exp is
// required on both since an update rewrites every descriptive field.
func ValidateProfile(in models.ProfileInput) error {
	if in.YearsExp == nil {
		return errors.New("years_exp is required")
	}
	if *in.YearsExp < 0 {
		return errors.New("years_exp cannot be negative")
	}
	if in.Skills != nil {
		if err := validateEntries("skills", *in.Skills); err != nil {
			return err
		}
	}
	if in.Projects != nil {
		for i, p := range *in.Projects {
			if strings.TrimSpace(p.Title) == "" {
				return fmt.Errorf("projects[%d]: title is required", i)
			}
		}
	}
	return nil
}

func validateEntries(field string, entries []string) error {
	for i, e := range entries {
		if strings.TrimSpace(e) == "" {
			return fmt.Errorf("%s[%d] cannot be empty", field, i)
		}
	}
	return nil
}
