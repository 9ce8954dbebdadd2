package sample

import (
	"strings"

	"otmane/userbook/service"
)

// NewUser returns a new random user that passes validation
func NewUser() *service.User {
	firstName := randomFirstName()
	lastName := randomLastName()

	return &service.User{
		FirstName:   firstName,
		LastName:    &lastName,
		Email:       strings.ToLower(randomEmail(firstName, lastName)),
		DateOfBirth: randomDateOfBirth(),
	}
}
