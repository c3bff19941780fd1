package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,is-signup-role"`
}

type statusInput struct {
	Campaign    string `json:"campaign" validate:"omitempty,is-campaign-status"`
	Application string `json:"application" validate:"omitempty,is-application-status"`
	Proposal    string `json:"proposal" validate:"omitempty,is-proposal-status"`
}

type nestedInput struct {
	Items []item `json:"items" validate:"dive"`
}

type item struct {
	Name string `json:"name" validate:"required"`
}

func TestValidateUsesJSONNames(t *testing.T) {
	v := New()

	err := v.Validate(&signupInput{Email: "nope", Password: "123", Role: "admin"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "email")
	assert.Contains(t, vErr.Errors, "password")
	assert.Equal(t, "Must be one of: influencer, brand", vErr.Errors["role"])
}

func TestValidateNestedPath(t *testing.T) {
	err := New().Validate(&nestedInput{Items: []item{{Name: "ok"}, {}}})
	require.Error(t, err)
	vErr := err.(*ValidationError)
	assert.Contains(t, vErr.Errors, "items[1].name")
}

func TestStatusRules(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&statusInput{Campaign: "closed", Application: "accepted", Proposal: "negotiating"}))
	assert.NoError(t, v.Validate(&statusInput{}))

	tests := []statusInput{
		{Campaign: "draft"},
		{Application: "negotiating"},
		{Proposal: "completed"},
		{Proposal: "unknown"},
	}
	for _, in := range tests {
		assert.Error(t, v.Validate(&in))
	}
}
