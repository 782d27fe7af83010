package api

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatorUsesJSONNames(t *testing.T) {
	type request struct {
		SellerEmail *string `json:"seller_email" validate:"omitempty,email"`
		View        string  `query:"view" validate:"omitempty,oneof=grid list"`
	}

	bad := "nope"
	err := NewValidator().Validate(&request{SellerEmail: &bad, View: "table"})

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 2)
	assert.Equal(t, "seller_email", verrs[0].Field())
	assert.Equal(t, "view", verrs[1].Field())

	assert.NoError(t, NewValidator().Validate(&request{}))
}
