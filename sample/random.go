package sample

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

var firstNames = []string{"Ann", "Bob", "Carla", "Dmitri", "Eun-ji", "Farah", "Gustavo", "Hana"}

var lastNames = []string{"Adams", "Brown", "Costa", "Dubois", "Evans", "Fischer", "Garcia", "Haddad"}

func randomStringFromSet(a ...string) string {
	n := len(a)
	if n == 0 {
		return ""
	}
	return a[rand.Intn(n)]
}

func randomInt(min, max int) int {
	return min + rand.Intn(max-min+1)
}

func randomFirstName() string {
	return randomStringFromSet(firstNames...)
}

func randomLastName() string {
	return randomStringFromSet(lastNames...)
}

// randomEmail is unique per call so sample users never collide
func randomEmail(firstName, lastName string) string {
	return fmt.Sprintf("%s.%s.%s@example.com", firstName, lastName, uuid.NewString()[:8])
}

// randomDateOfBirth is between 20 and 80 years ago, at midnight UTC
func randomDateOfBirth() time.Time {
	now := time.Now().UTC()
	dob := now.AddDate(-randomInt(20, 80), -randomInt(0, 11), -randomInt(0, 27))
	return time.Date(dob.Year(), dob.Month(), dob.Day(), 0, 0, 0, 0, time.UTC)
}
