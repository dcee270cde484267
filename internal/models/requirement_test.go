package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name    string
		in      interface{}
		want    string
		wantErr bool
	}{
		{"float", 100.0, "100", false},
		{"fraction", 12.5, "12.5", false},
		{"numeric string", " 250 ", "250", false},
		{"json number", json.Number("7.25"), "7.25", false},
		{"int", 3, "3", false},
		{"word", "lots", "", true},
		{"bool", true, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ParseQuantity(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.String())
		})
	}
}

func TestRequirement_JSONShape(t *testing.T) {
	q, err := ParseQuantity("100.50")
	require.NoError(t, err)

	created := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
	req := NewRequirement(3, RequirementCandidate{
		Product:      "Fresh Tomato",
		Quantity:     q,
		DeliveryDate: "2026-10-24",
	}, created)

	raw, err := json.Marshal(req)
	require.NoError(t, err)

	var generic map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &generic))
	assert.Equal(t, float64(3), generic["id"])
	assert.Equal(t, 100.5, generic["quantity"])
	assert.Equal(t, "2026-10-24", generic["deliveryDate"])
	assert.Equal(t, "", generic["notes"])

	var back Requirement
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, back.Quantity.Decimal().Equal(req.Quantity.Decimal()))
	assert.True(t, back.CreatedAt.Equal(created))

	day, err := back.DeliveryDay()
	require.NoError(t, err)
	assert.Equal(t, time.October, day.Month())
}

func TestQuantity_WithinLimit(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want bool
	}{
		{"ordinary", json.Number("100"), true},
		{"trailing zeros", json.Number("12.500000000"), true},
		{"at maximum", json.Number("1e15"), true},
		{"above maximum", json.Number("1000000000000001"), false},
		{"huge exponent", json.Number("1e10000000"), false},
		{"tiny exponent", json.Number("1e-10000000"), false},
		{"largest float", 1.7e308, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ParseQuantity(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.WithinLimit())
		})
	}
}
