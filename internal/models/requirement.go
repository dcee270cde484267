// internal/models/requirement.go
package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of delivery dates.
const DateLayout = "2006-01-02"

// Quantity is a requested amount in kilograms. It keeps the exact decimal
// the buyer typed and is encoded as a bare JSON number.
type Quantity decimal.Decimal

// ParseQuantity accepts a JSON number or a numeric string.
func ParseQuantity(v interface{}) (Quantity, error) {
	switch val := v.(type) {
	case float64:
		return Quantity(decimal.NewFromFloat(val)), nil
	case json.Number:
		d, err := decimal.NewFromString(val.String())
		if err != nil {
			return Quantity{}, err
		}
		return Quantity(d), nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(val))
		if err != nil {
			return Quantity{}, err
		}
		return Quantity(d), nil
	case int:
		return Quantity(decimal.NewFromInt(int64(val))), nil
	case int64:
		return Quantity(decimal.NewFromInt(val)), nil
	default:
		return Quantity{}, fmt.Errorf("unsupported quantity type %T", v)
	}
}

// NewQuantity builds a Quantity from a whole number of kilograms.
func NewQuantity(kg int64) Quantity {
	return Quantity(decimal.NewFromInt(kg))
}

// MaxQuantity is the largest quantity intake accepts.
var MaxQuantity = NewQuantity(1_000_000_000_000_000)

// maxQuantityExponent bounds the decimal exponent of an accepted quantity.
// String and JSON encoding expand the exponent into digits.
const maxQuantityExponent = 32

func (q Quantity) Decimal() decimal.Decimal { return decimal.Decimal(q) }

func (q Quantity) IsPositive() bool { return decimal.Decimal(q).IsPositive() }

func (q Quantity) String() string { return decimal.Decimal(q).String() }

// WithinLimit reports whether q can be stored and encoded safely. The
// exponent is checked before comparing so oversized values are never rescaled.
func (q Quantity) WithinLimit() bool {
	d := decimal.Decimal(q)
	if exp := d.Exponent(); exp > maxQuantityExponent || exp < -maxQuantityExponent {
		return false
	}
	return d.LessThanOrEqual(decimal.Decimal(MaxQuantity))
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	return []byte(q.String()), nil
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("quantity: %w", err)
	}
	*q = Quantity(d)
	return nil
}

// RequirementCandidate is a validated submission that has not been stored yet.
type RequirementCandidate struct {
	Product      string
	Quantity     Quantity
	DeliveryDate string
	Notes        string
}

// Requirement is a stored buyer requirement. It is never modified after the
// store assigns its ID and CreatedAt.
type Requirement struct {
	ID           int64     `json:"id"`
	Product      string    `json:"product"`
	Quantity     Quantity  `json:"quantity"`
	DeliveryDate string    `json:"deliveryDate"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewRequirement stamps a candidate with its identity.
func NewRequirement(id int64, c RequirementCandidate, createdAt time.Time) Requirement {
	return Requirement{
		ID:           id,
		Product:      c.Product,
		Quantity:     c.Quantity,
		DeliveryDate: c.DeliveryDate,
		Notes:        c.Notes,
		CreatedAt:    createdAt.UTC(),
	}
}

// DeliveryDay parses DeliveryDate as a calendar date in UTC.
func (r Requirement) DeliveryDay() (time.Time, error) {
	return time.Parse(DateLayout, r.DeliveryDate)
}
