package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateProfileRequestValidate(t *testing.T) {
	req := UpdateProfileRequest{FirstName: "Anna", LastName: "Kiss"}
	assert.NoError(t, req.validate())
}

func TestUpdateProfileRequestValidate_RequiredNames(t *testing.T) {
	req := UpdateProfileRequest{LastName: "Kiss"}
	err := req.validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "firstName")

	req = UpdateProfileRequest{FirstName: "Anna"}
	err = req.validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "lastName")
}

func TestUpdateProfileRequestValidate_OptionalPassword(t *testing.T) {
	short := "tiny"
	req := UpdateProfileRequest{FirstName: "Anna", LastName: "Kiss", Password: &short}
	err := req.validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "password")

	ok := "long-enough-pass"
	req.Password = &ok
	assert.NoError(t, req.validate())
}
