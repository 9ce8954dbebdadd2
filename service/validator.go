package service

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// MaxNameLength is the maximum number of characters in a first or last name
	MaxNameLength = 128
	// MinimumAge is the minimum age in years of a stored user
	MinimumAge = 18
)

// Field names as they appear on the wire
const (
	FieldID          = "id"
	FieldFirstName   = "firstName"
	FieldLastName    = "lastName"
	FieldEmail       = "email"
	FieldDateOfBirth = "dateOfBirth"
)

// ValidateNewUser normalizes a user submitted for creation and checks it against
// the field rules and the existing records. The candidate is not modified.
func ValidateNewUser(candidate *User, existing []*User, now time.Time) (*User, error) {
	return validateUser(candidate, existing, now, false)
}

// ValidateUserUpdate is like ValidateNewUser but requires an id, and the record
// stored under that id is excluded from the email uniqueness check.
func ValidateUserUpdate(candidate *User, existing []*User, now time.Time) (*User, error) {
	return validateUser(candidate, existing, now, true)
}

func validateUser(candidate *User, existing []*User, now time.Time, update bool) (*User, error) {
	if candidate == nil {
		return nil, missingBody()
	}

	if update && candidate.ID == uuid.Nil {
		return nil, requiredField(FieldID)
	}

	user, err := candidate.Clone()
	if err != nil {
		return nil, err
	}

	user.FirstName = strings.TrimSpace(user.FirstName)
	if user.FirstName == "" {
		return nil, requiredField(FieldFirstName)
	}
	if utf8.RuneCountInString(user.FirstName) > MaxNameLength {
		return nil, maxLength(FieldFirstName, MaxNameLength)
	}

	if user.LastName != nil {
		lastName := strings.TrimSpace(*user.LastName)
		if utf8.RuneCountInString(lastName) > MaxNameLength {
			return nil, maxLength(FieldLastName, MaxNameLength)
		}
		user.LastName = &lastName
	}

	user.Email = strings.TrimSpace(user.Email)
	if user.Email == "" {
		return nil, requiredField(FieldEmail)
	}
	if _, ok := ParseEmail(user.Email); !ok {
		return nil, invalidFormat(FieldEmail)
	}

	if user.DateOfBirth.IsZero() {
		return nil, requiredField(FieldDateOfBirth)
	}
	if !IsAdult(user.DateOfBirth, now) {
		return nil, constraintViolation(FieldDateOfBirth, "user must be 18 years or older")
	}

	for _, other := range existing {
		if other == nil || (update && other.ID == user.ID) {
			continue
		}
		if strings.EqualFold(other.Email, user.Email) {
			return nil, constraintViolation(FieldEmail, "already exists")
		}
	}

	return user, nil
}

// ParseEmail parses a bare email address. It fails when the input has
// surrounding whitespace, ends with a period, or only becomes an address
// after normalization (a display name or angle brackets, for example).
// Quoted local parts and domain literals are not accepted.
func ParseEmail(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || trimmed != s {
		return "", false
	}
	if strings.HasSuffix(trimmed, ".") || strings.ContainsAny(trimmed, `"[]`) {
		return "", false
	}

	addr, err := mail.ParseAddress(trimmed)
	if err != nil {
		return "", false
	}
	if addr.Address != trimmed {
		return "", false
	}

	return addr.Address, true
}

// IsAdult reports whether someone born at dob is at least MinimumAge years old
// at the start of the UTC day containing now.
func IsAdult(dob, now time.Time) bool {
	return !dob.After(minimumBirthDate(now))
}

// minimumBirthDate is midnight UTC of the current day, MinimumAge years back.
// Feb 29 maps to Feb 28 when the target year is not a leap year.
func minimumBirthDate(now time.Time) time.Time {
	now = now.UTC()
	year, month, day := now.Year()-MinimumAge, now.Month(), now.Day()
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
