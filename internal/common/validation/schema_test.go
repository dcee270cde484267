package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
  "type": "object",
  "properties": {
    "name":  {"type": "string"},
    "count": {"type": ["number", "string"]}
  },
  "required": ["name"]
}`

func TestSchema_Validate(t *testing.T) {
	schema := MustCompile(testSchema)

	tests := []struct {
		name        string
		doc         map[string]interface{}
		valid       bool
		errorFields []string
	}{
		{"valid", map[string]interface{}{"name": "a", "count": 3}, true, nil},
		{"numeric string allowed", map[string]interface{}{"name": "a", "count": "3"}, true, nil},
		{"missing required", map[string]interface{}{"count": 3}, false, []string{"name"}},
		{"wrong type", map[string]interface{}{"name": "a", "count": true}, false, []string{"count"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := schema.Validate(tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid)
			for _, f := range tt.errorFields {
				assert.True(t, result.HasErrors(f), "expected error on %s, got %v", f, result.GetErrorMessages())
			}
		})
	}
}

func TestCompile_InvalidSchema(t *testing.T) {
	_, err := Compile(`{"type": 12}`)
	assert.Error(t, err)
}
