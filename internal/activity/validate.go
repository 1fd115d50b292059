package activity

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
)

// ValidationError carries the first failing field and its message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// validateInput checks fields in declaration order and stops at the
// first failure. The comment field is deliberately unchecked.
func validateInput(in Input) error {
	checks := []struct {
		name  string
		value any
		rules []validation.Rule
	}{
		{"activityDate", in.ActivityDate, []validation.Rule{validation.Required, validation.Date("2006-01-02")}},
		{"activityTime", in.ActivityTime, []validation.Rule{validation.Required}},
		{"duration", in.Duration, []validation.Rule{validation.Required, validation.Min(1)}},
		{"activityType", in.ActivityType, []validation.Rule{validation.Required}},
		{"distance", in.Distance, []validation.Rule{validation.Required, validation.Min(1.0)}},
	}

	for _, c := range checks {
		if err := validation.Validate(c.value, c.rules...); err != nil {
			return &ValidationError{Field: c.name, Message: err.Error()}
		}
	}
	return nil
}
