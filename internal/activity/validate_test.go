package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() Input {
	return Input{
		ActivityDate: "2026-08-28",
		ActivityTime: "07:30",
		Duration:     45,
		ActivityType: "running",
		Distance:     8.5,
	}
}

func TestValidateInput(t *testing.T) {
	assert.NoError(t, validateInput(validInput()))
}

func TestValidateInput_CommentIsOptional(t *testing.T) {
	in := validInput()
	in.Comment = nil
	assert.NoError(t, validateInput(in))

	comment := "felt great"
	in.Comment = &comment
	assert.NoError(t, validateInput(in))
}

func TestValidateInput_FirstFailingField(t *testing.T) {
	in := validInput()
	in.ActivityDate = ""
	in.Duration = 0

	err := validateInput(in)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "activityDate", vErr.Field)
}

func TestValidateInput_BadDate(t *testing.T) {
	in := validInput()
	in.ActivityDate = "28-08-2026"

	err := validateInput(in)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "activityDate", vErr.Field)
}

func TestValidateInput_DurationMinimum(t *testing.T) {
	in := validInput()
	in.Duration = 0

	err := validateInput(in)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "duration", vErr.Field)

	in.Duration = 1
	assert.NoError(t, validateInput(in))
}

func TestValidateInput_DistanceMinimum(t *testing.T) {
	in := validInput()
	in.Distance = 0.5

	err := validateInput(in)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "distance", vErr.Field)

	in.Distance = 1
	assert.NoError(t, validateInput(in))
}

func TestValidateInput_MissingType(t *testing.T) {
	in := validInput()
	in.ActivityType = ""

	err := validateInput(in)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "activityType", vErr.Field)
}
