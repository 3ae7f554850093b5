package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateParams(t *testing.T) {
	rules := []ParamRule{
		{Name: "guid", Type: "number", Rules: "required,number", Description: "test guid"},
	}

	tests := []struct {
		name      string
		params    map[string]string
		wantError bool
		wantField string
	}{
		{"integer", map[string]string{"guid": "42"}, false, ""},
		{"zero", map[string]string{"guid": "0"}, false, ""},
		{"negative decimal", map[string]string{"guid": "-3.5"}, false, ""},
		{"negative zero", map[string]string{"guid": "-0"}, false, ""},
		{"exponent", map[string]string{"guid": "1e3"}, false, ""},
		{"leading dot", map[string]string{"guid": ".5"}, false, ""},
		{"trailing dot", map[string]string{"guid": "5."}, false, ""},
		{"infinity", map[string]string{"guid": "Infinity"}, true, "guid must be a number"},
		{"nan", map[string]string{"guid": "NaN"}, true, "guid must be a number"},
		{"out of range", map[string]string{"guid": "1e400"}, true, "guid must be a number"},
		{"blank", map[string]string{"guid": " "}, true, "guid must be a number"},
		{"letters", map[string]string{"guid": "abc"}, true, "guid must be a number"},
		{"mixed", map[string]string{"guid": "12ab"}, true, "guid must be a number"},
		{"missing", map[string]string{}, true, "guid is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateParams(tt.params, rules)
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "Invalid request params input", err.Error())
			assert.Equal(t, tt.wantField, ve.Fields["guid"])
		})
	}
}

func TestValidateParams_MultipleFailures(t *testing.T) {
	rules := []ParamRule{
		{Name: "a", Rules: "required,number"},
		{Name: "b", Rules: "required"},
		{Name: "c"},
	}

	err := ValidateParams(map[string]string{"a": "x"}, rules)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Fields, 2)
	assert.Contains(t, ve.Fields, "a")
	assert.Contains(t, ve.Fields, "b")
	assert.Equal(t, "b is required", ve.Details()["b"])
}

func TestParamRule_Required(t *testing.T) {
	assert.True(t, ParamRule{Rules: "required,number"}.Required())
	assert.True(t, ParamRule{Rules: "number,required"}.Required())
	assert.False(t, ParamRule{Rules: "number"}.Required())
	assert.False(t, ParamRule{}.Required())
}
