package service_test

import (
	"strings"
	"testing"
	"time"

	"otmane/userbook/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC)

func newValidUser() *service.User {
	lastName := "Smith"
	return &service.User{
		FirstName:   "Ann",
		LastName:    &lastName,
		Email:       "ann@example.com",
		DateOfBirth: time.Date(1996, 10, 14, 0, 0, 0, 0, time.UTC),
	}
}

func requireValidationError(t *testing.T, err error, kind service.ErrorKind, field string) {
	t.Helper()

	var validationErr *service.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, kind, validationErr.Kind)
	require.Equal(t, field, validationErr.Field)
}

func TestValidateNewUserNormalizes(t *testing.T) {
	t.Parallel()

	candidate := newValidUser()
	candidate.FirstName = "  Ann \t"
	lastName := " Smith  "
	candidate.LastName = &lastName
	candidate.Email = " ann@example.com\n"

	user, err := service.ValidateNewUser(candidate, nil, testNow)
	require.NoError(t, err)
	require.Equal(t, "Ann", user.FirstName)
	require.Equal(t, "Smith", *user.LastName)
	require.Equal(t, "ann@example.com", user.Email)
	require.True(t, candidate.DateOfBirth.Equal(user.DateOfBirth))

	// the candidate itself is left untouched
	require.Equal(t, "  Ann \t", candidate.FirstName)
	require.Equal(t, " Smith  ", *candidate.LastName)
	require.Equal(t, " ann@example.com\n", candidate.Email)
}

func TestValidateNewUserMissingBody(t *testing.T) {
	t.Parallel()

	_, err := service.ValidateNewUser(nil, nil, testNow)
	requireValidationError(t, err, service.KindMissingBody, "")
	require.EqualError(t, err, "missing request body")
}

func TestValidateUserFields(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		modify func(user *service.User)
		kind   service.ErrorKind
		field  string
	}{
		{
			name:   "empty first name",
			modify: func(user *service.User) { user.FirstName = "" },
			kind:   service.KindRequired,
			field:  service.FieldFirstName,
		},
		{
			name:   "blank first name",
			modify: func(user *service.User) { user.FirstName = "   " },
			kind:   service.KindRequired,
			field:  service.FieldFirstName,
		},
		{
			name:   "first name too long",
			modify: func(user *service.User) { user.FirstName = strings.Repeat("a", 129) },
			kind:   service.KindMaxLength,
			field:  service.FieldFirstName,
		},
		{
			name: "last name too long",
			modify: func(user *service.User) {
				lastName := strings.Repeat("b", 129)
				user.LastName = &lastName
			},
			kind:  service.KindMaxLength,
			field: service.FieldLastName,
		},
		{
			name:   "empty email",
			modify: func(user *service.User) { user.Email = " " },
			kind:   service.KindRequired,
			field:  service.FieldEmail,
		},
		{
			name:   "email with trailing period",
			modify: func(user *service.User) { user.Email = "a@b.com." },
			kind:   service.KindInvalidFormat,
			field:  service.FieldEmail,
		},
		{
			name:   "email with display name",
			modify: func(user *service.User) { user.Email = "Ann <ann@example.com>" },
			kind:   service.KindInvalidFormat,
			field:  service.FieldEmail,
		},
		{
			name:   "email without domain",
			modify: func(user *service.User) { user.Email = "ann@" },
			kind:   service.KindInvalidFormat,
			field:  service.FieldEmail,
		},
		{
			name:   "not an email",
			modify: func(user *service.User) { user.Email = "not-an-email" },
			kind:   service.KindInvalidFormat,
			field:  service.FieldEmail,
		},
		{
			name:   "missing date of birth",
			modify: func(user *service.User) { user.DateOfBirth = time.Time{} },
			kind:   service.KindRequired,
			field:  service.FieldDateOfBirth,
		},
		{
			name:   "too young",
			modify: func(user *service.User) { user.DateOfBirth = time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC) },
			kind:   service.KindConstraint,
			field:  service.FieldDateOfBirth,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			user := newValidUser()
			tc.modify(user)

			_, err := service.ValidateNewUser(user, nil, testNow)
			requireValidationError(t, err, tc.kind, tc.field)
		})
	}
}

func TestValidateUserFailsFast(t *testing.T) {
	t.Parallel()

	user := newValidUser()
	user.FirstName = ""
	user.Email = "broken"
	user.DateOfBirth = time.Time{}

	_, err := service.ValidateNewUser(user, nil, testNow)
	requireValidationError(t, err, service.KindRequired, service.FieldFirstName)
	require.EqualError(t, err, "firstName: is required")
}

func TestValidateNameLengthBoundary(t *testing.T) {
	t.Parallel()

	user := newValidUser()
	user.FirstName = strings.Repeat("a", service.MaxNameLength)
	lastName := strings.Repeat("é", service.MaxNameLength)
	user.LastName = &lastName

	_, err := service.ValidateNewUser(user, nil, testNow)
	require.NoError(t, err)

	user.FirstName += "a"
	_, err = service.ValidateNewUser(user, nil, testNow)
	requireValidationError(t, err, service.KindMaxLength, service.FieldFirstName)

	var validationErr *service.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, service.MaxNameLength, validationErr.Limit)
}

func TestValidateAbsentLastName(t *testing.T) {
	t.Parallel()

	user := newValidUser()
	user.LastName = nil

	normalized, err := service.ValidateNewUser(user, nil, testNow)
	require.NoError(t, err)
	require.Nil(t, normalized.LastName)
}

func TestValidateAgeBoundary(t *testing.T) {
	t.Parallel()

	user := newValidUser()

	// exactly 18 years before today's UTC midnight
	user.DateOfBirth = time.Date(2008, 10, 14, 0, 0, 0, 0, time.UTC)
	_, err := service.ValidateNewUser(user, nil, testNow)
	require.NoError(t, err)

	// one day short of 18
	user.DateOfBirth = time.Date(2008, 10, 15, 0, 0, 0, 0, time.UTC)
	_, err = service.ValidateNewUser(user, nil, testNow)
	requireValidationError(t, err, service.KindConstraint, service.FieldDateOfBirth)
	require.EqualError(t, err, "dateOfBirth: user must be 18 years or older")
}

func TestIsAdultUsesStartOfUTCDay(t *testing.T) {
	t.Parallel()

	dob := time.Date(2008, 10, 14, 0, 0, 0, 0, time.UTC)

	// the birthday is reached as soon as the UTC day starts
	require.True(t, service.IsAdult(dob, time.Date(2026, 10, 14, 0, 0, 1, 0, time.UTC)))
	require.False(t, service.IsAdult(dob, time.Date(2026, 10, 13, 23, 59, 59, 0, time.UTC)))

	// now is converted to UTC before truncating
	tokyo := time.FixedZone("JST", 9*60*60)
	require.False(t, service.IsAdult(dob, time.Date(2026, 10, 14, 8, 0, 0, 0, tokyo)))
	require.True(t, service.IsAdult(dob, time.Date(2026, 10, 14, 9, 0, 0, 0, tokyo)))
}

func TestIsAdultLeapDay(t *testing.T) {
	t.Parallel()

	now := time.Date(2028, 2, 29, 12, 0, 0, 0, time.UTC)

	require.True(t, service.IsAdult(time.Date(2010, 2, 28, 0, 0, 0, 0, time.UTC), now))
	require.False(t, service.IsAdult(time.Date(2010, 3, 1, 0, 0, 0, 0, time.UTC), now))
}

func TestParseEmail(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input string
		ok    bool
	}{
		{"ann@example.com", true},
		{"Ann.Smith+tag@Example.co.uk", true},
		{"a@b.com.", false},
		{"Ann <ann@example.com>", false},
		{"<ann@example.com>", false},
		{" ann@example.com", false},
		{"ann", false},
		{"ann@@example.com", false},
		{`"a b"@x.com`, false},
		{`"ann"@example.com`, false},
		{"a@[1.2.3.4]", false},
		{"a@[IPv6:::1]", false},
		{"", false},
	}

	for _, tc := range testCases {
		address, ok := service.ParseEmail(tc.input)
		require.Equal(t, tc.ok, ok, tc.input)
		if tc.ok {
			require.Equal(t, tc.input, address)
		}
	}
}

func TestValidateEmailUniqueness(t *testing.T) {
	t.Parallel()

	existing := []*service.User{
		{ID: uuid.New(), FirstName: "A", Email: "a@x.com"},
	}

	user := newValidUser()
	user.Email = "A@X.com"

	_, err := service.ValidateNewUser(user, existing, testNow)
	requireValidationError(t, err, service.KindConstraint, service.FieldEmail)
	require.EqualError(t, err, "email: already exists")
}

func TestValidateUserUpdate(t *testing.T) {
	t.Parallel()

	self := newValidUser()
	self.ID = uuid.New()
	other := &service.User{ID: uuid.New(), FirstName: "Bob", Email: "bob@example.com"}
	existing := []*service.User{self, other}

	t.Run("requires id", func(t *testing.T) {
		user := newValidUser()
		_, err := service.ValidateUserUpdate(user, existing, testNow)
		requireValidationError(t, err, service.KindRequired, service.FieldID)
	})

	t.Run("own email is not a duplicate", func(t *testing.T) {
		user := newValidUser()
		user.ID = self.ID
		user.Email = "ANN@example.com"

		normalized, err := service.ValidateUserUpdate(user, existing, testNow)
		require.NoError(t, err)
		require.Equal(t, self.ID, normalized.ID)
	})

	t.Run("email of another user is a duplicate", func(t *testing.T) {
		user := newValidUser()
		user.ID = self.ID
		user.Email = "Bob@Example.com"

		_, err := service.ValidateUserUpdate(user, existing, testNow)
		requireValidationError(t, err, service.KindConstraint, service.FieldEmail)
	})

	t.Run("missing body", func(t *testing.T) {
		_, err := service.ValidateUserUpdate(nil, existing, testNow)
		requireValidationError(t, err, service.KindMissingBody, "")
	})
}
