// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

func LoadRegistry(path string) (*FarmerRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg FarmerRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	return &reg, nil
}

// NewRegistry returns an empty registry stamped with now.
func NewRegistry(now time.Time) *FarmerRegistry {
	return &FarmerRegistry{
		Version:     "1.0.0",
		LastUpdated: now.UTC().Format(time.RFC3339),
		Farmers:     []Farmer{},
	}
}

// SaveRegistry writes reg as indented JSON, creating parent directories.
func SaveRegistry(reg *FarmerRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

// Add appends f unless a farmer with the same email already offers the
// same product.
func (r *FarmerRegistry) Add(f Farmer, now time.Time) error {
	f = normalize(f)
	if err := validateFarmer(f); err != nil {
		return err
	}
	for _, existing := range r.Farmers {
		if strings.EqualFold(existing.Email, f.Email) && strings.EqualFold(existing.Product, f.Product) {
			return fmt.Errorf("farmer %s already registered for %s", f.Email, f.Product)
		}
	}
	r.Farmers = append(r.Farmers, f)
	r.LastUpdated = now.UTC().Format(time.RFC3339)
	return nil
}

// Remove drops every entry for email and product. It reports whether
// anything was removed.
func (r *FarmerRegistry) Remove(email, product string, now time.Time) bool {
	kept := r.Farmers[:0]
	removed := false
	for _, f := range r.Farmers {
		if strings.EqualFold(f.Email, email) && strings.EqualFold(f.Product, product) {
			removed = true
			continue
		}
		kept = append(kept, f)
	}
	r.Farmers = kept
	if removed {
		r.LastUpdated = now.UTC().Format(time.RFC3339)
	}
	return removed
}

func (r *FarmerRegistry) Validate() error {
	if len(r.Farmers) == 0 {
		return fmt.Errorf("registry contains no farmers")
	}
	for i, f := range r.Farmers {
		if err := validateFarmer(normalize(f)); err != nil {
			return fmt.Errorf("farmers[%d]: %w", i, err)
		}
	}
	return nil
}

func normalize(f Farmer) Farmer {
	return Farmer{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Product: strings.TrimSpace(f.Product),
	}
}

func validateFarmer(f Farmer) error {
	if f.Name == "" {
		return fmt.Errorf("missing required field: name")
	}
	if f.Product == "" {
		return fmt.Errorf("missing required field: product")
	}
	if !strings.Contains(f.Email, "@") {
		return fmt.Errorf("invalid email address: %q", f.Email)
	}
	return nil
}
