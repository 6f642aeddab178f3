package validation

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Messages surfaced to form users. The wording is part of the public API
// contract; the frontend matches on it.
const (
	MsgNameRequired          = "Name is required"
	MsgEmailRequired         = "Email is required"
	MsgEmailInvalid          = "Please enter a valid email address"
	MsgPhoneInvalid          = "Please enter a valid phone number"
	MsgProjectDetailsTooLong = "Project details must be less than 1000 characters"
)

// contactMessages maps struct field + failed tag to the user-facing message.
var contactMessages = map[string]map[string]string{
	"Name": {
		"required": MsgNameRequired,
	},
	"Email": {
		"required":      MsgEmailRequired,
		"contact_email": MsgEmailInvalid,
	},
	"Phone": {
		"contact_phone": MsgPhoneInvalid,
	},
	"ProjectDetails": {
		"project_details": MsgProjectDetailsTooLong,
	},
}

// ContactMessage converts a validator error on a ContactRequest into the
// message for the first failing rule. validator/v10 reports errors in struct
// field order, which gives the required name → email → phone → details
// precedence for free.
func ContactMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request"
	}
	first := verrs[0]
	if byTag, ok := contactMessages[first.Field()]; ok {
		if msg, ok := byTag[first.Tag()]; ok {
			return msg
		}
	}
	return "Invalid request"
}
