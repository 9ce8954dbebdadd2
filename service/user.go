package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// dateLayouts are tried in order when reading a date of birth.
// Layouts without an offset are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	time.DateOnly,
}

// User is a user record managed by the service
type User struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    *string   `json:"lastName"`
	Email       string    `json:"email"`
	DateOfBirth time.Time `json:"dateOfBirth"`
}

// Clone returns a deep copy of the user
func (user *User) Clone() (*User, error) {
	other := &User{}

	err := copier.Copy(other, user)
	if err != nil {
		return nil, err
	}

	return other, nil
}

// UnmarshalJSON reads a user, accepting a date of birth as a plain date,
// a date-time without offset or an RFC 3339 timestamp
func (user *User) UnmarshalJSON(data []byte) error {
	type plainUser User

	aux := struct {
		*plainUser
		DateOfBirth *string `json:"dateOfBirth"`
	}{plainUser: (*plainUser)(user)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if aux.DateOfBirth == nil {
		return nil
	}

	dateOfBirth, err := ParseDate(*aux.DateOfBirth)
	if err != nil {
		return err
	}

	user.DateOfBirth = dateOfBirth
	return nil
}

// ParseDate parses s as 2006-01-02, 2006-01-02T15:04:05 (UTC) or RFC 3339
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%s: cannot parse %q as a date", FieldDateOfBirth, s)
}
