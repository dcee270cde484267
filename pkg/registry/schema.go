// pkg/registry/schema.go
package registry

// FarmerRegistry is the on-disk list of farmers the directory can be
// seeded from.
type FarmerRegistry struct {
	Version     string   `json:"version"`
	LastUpdated string   `json:"lastUpdated"`
	Farmers     []Farmer `json:"farmers"`
}

type Farmer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Product string `json:"product"`
}
