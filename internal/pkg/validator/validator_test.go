package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type signUpInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func TestValidateReportsFailedTags(t *testing.T) {
	fields := Validate(signUpInput{Email: "nope", Password: "123"})
	assert.Equal(t, map[string]string{"Email": "email", "Password": "min"}, fields)
	assert.Equal(t, "invalid input: Email failed email, Password failed min", Describe(fields))
}

func TestValidatePasses(t *testing.T) {
	assert.Nil(t, Validate(signUpInput{Email: "ana@skilllink.cl", Password: "secreto"}))
	assert.Equal(t, "", Describe(nil))
}

func TestVar(t *testing.T) {
	assert.NoError(t, Var("ana@skilllink.cl", "required,email"))
	assert.Error(t, Var("", "required"))
}
