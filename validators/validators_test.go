package validators

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordValidator(t *testing.T) {
	assert.ErrorIs(t, PasswordValidator(""), ErrPasswordEmpty)
	assert.ErrorIs(t, PasswordValidator("short"), ErrPasswordTooShort)
	assert.NoError(t, PasswordValidator("longenough"))
}

func TestEmailValidator(t *testing.T) {
	assert.ErrorIs(t, EmailValidator(""), ErrEmailEmpty)
	assert.ErrorIs(t, EmailValidator("not-an-email"), ErrEmailInvalid)
	assert.NoError(t, EmailValidator("user@example.com"))
}

func TestUsernameValidator(t *testing.T) {
	assert.ErrorIs(t, UsernameValidator(""), ErrUsernameEmpty)
	assert.ErrorIs(t, UsernameValidator("ab"), ErrUsernameTooShort)
	assert.NoError(t, UsernameValidator("alice"))
}

func TestFieldErrorsItemized(t *testing.T) {
	type body struct {
		Username string `json:"username" binding:"required,min=3"`
		Email    string `json:"email" binding:"required,email"`
	}

	var b body
	b.Username = "ab"
	b.Email = "nope"

	err := binding.Validator.ValidateStruct(&b)
	require.Error(t, err)

	msg := FieldErrors(err)
	assert.Contains(t, msg, "username must be at least 3 characters long")
	assert.Contains(t, msg, "email must be a valid email address")
}

func TestFieldErrorsFallback(t *testing.T) {
	assert.Equal(t, "Invalid request body", FieldErrors(assert.AnError))
}
