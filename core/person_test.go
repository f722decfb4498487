package core

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerson_Validate(t *testing.T) {
	validate := validator.New()
	InitValidators(validate, NewTranslator())

	tests := []struct {
		name       string
		person     Person
		wantFields []string
	}{
		{name: "id only", person: Person{ID: "s-1"}},
		{name: "full", person: Person{ID: "s-1", Name: "Alice", Email: "alice@example.com"}},
		{name: "missing id", person: Person{Email: "alice@example.com"}, wantFields: []string{"id"}},
		{name: "blank id", person: Person{ID: "   "}, wantFields: []string{"id"}},
		{name: "bad email", person: Person{ID: "s-1", Email: "alice"}, wantFields: []string{"email"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.person)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			var vErrs validator.ValidationErrors
			require.ErrorAs(t, err, &vErrs)
			fields := make([]string, 0, len(vErrs))
			for _, fe := range vErrs {
				fields = append(fields, fe.Field())
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}
