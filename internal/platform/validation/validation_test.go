package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Firstname string `json:"firstname" validate:"required"`
	Gender    string `json:"gender" validate:"required,oneof=Male Female"`
	Email     string `json:"email" validate:"omitempty,email"`
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	err := Struct(sample{Gender: "Other", Email: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "firstname is required")
	assert.Contains(t, err.Error(), "gender must be one of [Male Female]")
	assert.Contains(t, err.Error(), "email must be a valid email")
}

func TestStruct_OK(t *testing.T) {
	assert.NoError(t, Struct(sample{Firstname: "Luna", Gender: "Female"}))
}
