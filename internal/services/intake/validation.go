package intake

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	apperrors "pbf-marketplace/internal/common/errors"
	"pbf-marketplace/internal/common/validation"
	"pbf-marketplace/internal/models"
)

const (
	msgMissingFields   = "Missing required fields: product, quantity, and deliveryDate are required"
	msgInvalidQuantity = "Quantity must be greater than 0"
	msgInvalidProduct  = "Product must not contain control characters"
	msgInvalidDate     = "Delivery date must be a valid date (YYYY-MM-DD)"
	msgPastDate        = "Delivery date cannot be in the past"
)

var requiredFields = []string{"product", "quantity", "deliveryDate"}

var requirementSchema = validation.MustCompile(`{
  "type": "object",
  "properties": {
    "product":      {"type": ["string", "null"]},
    "quantity":     {"type": ["number", "string", "null"]},
    "deliveryDate": {"type": ["string", "null"]},
    "notes":        {"type": ["string", "null"]}
  }
}`)

// validateRequirement turns a raw document into a candidate. Checks run in a
// fixed order: presence, types, product, quantity, date.
func validateRequirement(raw RawRequirement, now time.Time) (*models.RequirementCandidate, error) {
	var missing []string
	for _, field := range requiredFields {
		if isBlank(raw[field]) {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewMissingFieldError(msgMissingFields, missing...)
	}

	// Schema validation expands a number's exponent, so oversized quantities
	// are turned away first.
	if q, err := models.ParseQuantity(raw["quantity"]); err == nil && !q.WithinLimit() {
		return nil, apperrors.NewInvalidValueError("quantity", msgInvalidQuantity)
	}

	result, err := requirementSchema.Validate(map[string]interface{}(raw))
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		if result.HasErrors("quantity") {
			return nil, apperrors.NewInvalidValueError("quantity", msgInvalidQuantity)
		}
		field := result.Errors[0].Field
		return nil, apperrors.NewInvalidValueError(field, fmt.Sprintf("Field %s must be a string", field))
	}

	product := strings.TrimSpace(raw["product"].(string))
	if strings.ContainsFunc(product, unicode.IsControl) {
		return nil, apperrors.NewInvalidValueError("product", msgInvalidProduct)
	}

	quantity, err := models.ParseQuantity(raw["quantity"])
	if err != nil || !quantity.IsPositive() || !quantity.WithinLimit() {
		return nil, apperrors.NewInvalidValueError("quantity", msgInvalidQuantity)
	}

	deliveryDate := strings.TrimSpace(raw["deliveryDate"].(string))
	day, err := time.Parse(models.DateLayout, deliveryDate)
	if err != nil {
		return nil, apperrors.NewInvalidValueError("deliveryDate", msgInvalidDate)
	}
	if day.Before(startOfDay(now)) {
		return nil, apperrors.NewInvalidValueError("deliveryDate", msgPastDate)
	}

	notes, _ := raw["notes"].(string)

	return &models.RequirementCandidate{
		Product:      product,
		Quantity:     quantity,
		DeliveryDate: deliveryDate,
		Notes:        notes,
	}, nil
}

func isBlank(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	default:
		return false
	}
}

// startOfDay is midnight UTC of now's calendar date in now's own location,
// comparable with dates parsed from DateLayout.
func startOfDay(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
