package validation

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyb-mobile-app/hyb-api/pkg/response"
)

type registerInput struct {
	Name     string `json:"name" binding:"required,notblank,username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

func TestToDetails_FieldMessages(t *testing.T) {
	Init()

	err := binding.Validator.ValidateStruct(&registerInput{Name: "A", Email: "nope", Password: "123"})
	require.Error(t, err)

	got := ToDetails(err)
	assert.ElementsMatch(t, []response.FieldError{
		{Field: "name", Message: "must be between 2 and 50 characters long"},
		{Field: "email", Message: "must be a valid email"},
		{Field: "password", Message: "must be at least 6 characters long"},
	}, got)
}

func TestToDetails_Required(t *testing.T) {
	Init()

	err := binding.Validator.ValidateStruct(&registerInput{})
	require.Error(t, err)
	for _, fe := range ToDetails(err) {
		assert.Equal(t, "is required", fe.Message, fe.Field)
	}
}

func TestToDetails_Fallback(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
	assert.Equal(t, []response.FieldError{{Field: "payload", Message: "invalid payload"}}, ToDetails(errors.New("boom")))
}
