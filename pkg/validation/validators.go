package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Permissive local@domain.tld shape. Rejects missing '@', dot-less domains
// and embedded whitespace; it is not an RFC 5322 parser.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const maxProjectDetailsLen = 1000

// The phone check is a length heuristic, not a phone-number grammar.
const minPhoneLen = 10

// IsNonEmpty reports whether s contains anything besides whitespace.
func IsNonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(strings.TrimSpace(s))
}

// IsValidPhone reports whether s is an acceptable phone value. The field is
// optional, so empty (or whitespace-only) passes.
func IsValidPhone(s string) bool {
	t := strings.TrimSpace(s)
	return t == "" || utf8.RuneCountInString(t) >= minPhoneLen
}

// IsValidProjectDetails reports whether s fits the details length cap.
func IsValidProjectDetails(s string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) <= maxProjectDetailsLen
}

// RegisterValidators registers the contact-form validators on a validator
// instance. The tags wrap the exported pure functions so the rules stay
// identical wherever they run.
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("contact_email", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("contact_phone", func(fl validator.FieldLevel) bool {
		return IsValidPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("project_details", func(fl validator.FieldLevel) bool {
		return IsValidProjectDetails(fl.Field().String())
	})
}

// FieldErrors runs every rule and returns a field→message map, empty when the
// input is valid. This is the client-side mirror of the server validation;
// the server reports only the first failure, ordered Name, Email, Phone,
// ProjectDetails.
func FieldErrors(name, email, phone, projectDetails string) map[string]string {
	errs := map[string]string{}
	if !IsNonEmpty(name) {
		errs["name"] = MsgNameRequired
	}
	if !IsNonEmpty(email) {
		errs["email"] = MsgEmailRequired
	} else if !IsValidEmail(email) {
		errs["email"] = MsgEmailInvalid
	}
	if !IsValidPhone(phone) {
		errs["phone"] = MsgPhoneInvalid
	}
	if !IsValidProjectDetails(projectDetails) {
		errs["projectDetails"] = MsgProjectDetailsTooLong
	}
	return errs
}
