// Package matcher decides which farmers can serve a requested product.
package matcher

import (
	"strings"

	"pbf-marketplace/internal/models"
)

// Match returns the suppliers whose offering appears inside the requested
// product name, ignoring case. The test is one-directional: "Organic Fresh
// Potato" matches an offering of "potato", while "potato" does not match an
// offering of "organic potato". Declaration order is kept and the result is
// never nil.
func Match(product string, suppliers []models.Supplier) []models.Supplier {
	requested := strings.ToLower(product)

	matched := make([]models.Supplier, 0, len(suppliers))
	for _, s := range suppliers {
		if strings.Contains(requested, strings.ToLower(s.Product)) {
			matched = append(matched, s)
		}
	}
	return matched
}
