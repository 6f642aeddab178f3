package validation_test

import (
	"strings"
	"testing"

	"go-agency-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestIsNonEmpty(t *testing.T) {
	assert.True(t, validation.IsNonEmpty("Alice"))
	assert.True(t, validation.IsNonEmpty("  x  "))
	assert.False(t, validation.IsNonEmpty(""))
	assert.False(t, validation.IsNonEmpty("   \t\n"))
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"a@b.co",
		"test@example.com",
		"first.last+tag@sub.domain.io",
		"  padded@example.com  ",
	}
	for _, s := range valid {
		assert.True(t, validation.IsValidEmail(s), s)
	}

	invalid := []string{
		"",
		"plainaddress",
		"no-at-sign.com",
		"missing@dotless",
		"two words@example.com",
		"user@exam ple.com",
		"@example.com",
		"user@",
	}
	for _, s := range invalid {
		assert.False(t, validation.IsValidEmail(s), s)
	}
}

func TestIsValidPhone(t *testing.T) {
	// Optional field: empty and whitespace-only pass.
	assert.True(t, validation.IsValidPhone(""))
	assert.True(t, validation.IsValidPhone("   "))

	assert.True(t, validation.IsValidPhone("0123456789"))
	assert.True(t, validation.IsValidPhone("+49 170 1234567"))
	assert.True(t, validation.IsValidPhone("  0123456789  "))

	assert.False(t, validation.IsValidPhone("12345"))
	assert.False(t, validation.IsValidPhone("123456789")) // 9 chars
}

func TestIsValidProjectDetails(t *testing.T) {
	assert.True(t, validation.IsValidProjectDetails(""))
	assert.True(t, validation.IsValidProjectDetails("A short brief"))
	assert.True(t, validation.IsValidProjectDetails(strings.Repeat("a", 1000)))
	assert.False(t, validation.IsValidProjectDetails(strings.Repeat("a", 1001)))
	// Surrounding whitespace does not count against the limit.
	assert.True(t, validation.IsValidProjectDetails("  "+strings.Repeat("a", 1000)+"  "))
}

func TestValidatorsAreIdempotent(t *testing.T) {
	inputs := []string{"", "a@b.co", "not-an-email", "  spaced  "}
	for _, s := range inputs {
		assert.Equal(t, validation.IsValidEmail(s), validation.IsValidEmail(s))
		assert.Equal(t, validation.IsValidPhone(s), validation.IsValidPhone(s))
		assert.Equal(t, validation.IsNonEmpty(s), validation.IsNonEmpty(s))
	}
}

func TestFieldErrors(t *testing.T) {
	t.Run("valid input yields empty map", func(t *testing.T) {
		errs := validation.FieldErrors("Alice", "alice@example.com", "", "")
		assert.Empty(t, errs)
	})

	t.Run("each failing field gets its message", func(t *testing.T) {
		errs := validation.FieldErrors("", "bad", "123", strings.Repeat("a", 1001))
		assert.Equal(t, validation.MsgNameRequired, errs["name"])
		assert.Equal(t, validation.MsgEmailInvalid, errs["email"])
		assert.Equal(t, validation.MsgPhoneInvalid, errs["phone"])
		assert.Equal(t, validation.MsgProjectDetailsTooLong, errs["projectDetails"])
	})

	t.Run("missing email reports required before format", func(t *testing.T) {
		errs := validation.FieldErrors("Alice", "   ", "", "")
		assert.Equal(t, validation.MsgEmailRequired, errs["email"])
	})
}

type contactShape struct {
	Name           string `validate:"required"`
	Email          string `validate:"required,contact_email"`
	Phone          string `validate:"omitempty,contact_phone"`
	ProjectDetails string `validate:"omitempty,project_details"`
}

func TestContactMessageOrdering(t *testing.T) {
	validate := validator.New()
	validation.RegisterValidators(validate)

	cases := []struct {
		name string
		in   contactShape
		want string
	}{
		{"missing name wins over missing email", contactShape{}, validation.MsgNameRequired},
		{"missing email", contactShape{Name: "A"}, validation.MsgEmailRequired},
		{"bad email format", contactShape{Name: "A", Email: "nope"}, validation.MsgEmailInvalid},
		{"bad phone", contactShape{Name: "A", Email: "a@b.co", Phone: "123"}, validation.MsgPhoneInvalid},
		{"long details", contactShape{Name: "A", Email: "a@b.co", ProjectDetails: strings.Repeat("x", 1001)}, validation.MsgProjectDetailsTooLong},
		{"bad email reported before bad phone", contactShape{Name: "A", Email: "nope", Phone: "123"}, validation.MsgEmailInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validate.Struct(tc.in)
			assert.Error(t, err)
			assert.Equal(t, tc.want, validation.ContactMessage(err))
		})
	}
}
