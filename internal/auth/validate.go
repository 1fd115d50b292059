package auth

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// ValidationError carries the first failing field and its message.
// Fields are checked in declaration order and validation stops at the
// first failure, so the caller always gets a single field-specific
// message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const minPasswordLength = 8

type fieldRule struct {
	name  string
	value any
	rules []validation.Rule
}

func validateFields(fields []fieldRule) error {
	for _, f := range fields {
		if err := validation.Validate(f.value, f.rules...); err != nil {
			return &ValidationError{Field: f.name, Message: err.Error()}
		}
	}
	return nil
}

func validateRegistration(firstName, lastName, email, password string) error {
	return validateFields([]fieldRule{
		{"firstName", firstName, []validation.Rule{validation.Required}},
		{"lastName", lastName, []validation.Rule{validation.Required}},
		{"email", email, []validation.Rule{validation.Required, is.Email}},
		{"password", password, []validation.Rule{validation.Required, validation.Length(minPasswordLength, 0)}},
	})
}

func validateLogin(email, password string) error {
	return validateFields([]fieldRule{
		{"email", email, []validation.Rule{validation.Required, is.Email}},
		{"password", password, []validation.Rule{validation.Required, validation.Length(minPasswordLength, 0)}},
	})
}

func validateNewPassword(password string) error {
	return validateFields([]fieldRule{
		{"password", password, []validation.Rule{validation.Required, validation.Length(minPasswordLength, 0)}},
	})
}
