package directory

import (
	"fmt"
	"strings"

	"pbf-marketplace/internal/common/config"
	"pbf-marketplace/internal/models"
	"pbf-marketplace/pkg/registry"
)

// Directory is the read-only set of farmers known at startup.
type Directory struct {
	suppliers []models.Supplier
}

// New copies suppliers so later changes to the argument are not observed.
func New(suppliers []models.Supplier) *Directory {
	out := make([]models.Supplier, len(suppliers))
	copy(out, suppliers)
	return &Directory{suppliers: out}
}

// FromConfig builds the directory from the configured farmer list, keeping
// declaration order.
func FromConfig(cfg config.DirectoryConfig) *Directory {
	suppliers := make([]models.Supplier, 0, len(cfg.Farmers))
	for _, f := range cfg.Farmers {
		suppliers = append(suppliers, models.Supplier{
			Name:    strings.TrimSpace(f.Name),
			Email:   strings.TrimSpace(f.Email),
			Product: strings.TrimSpace(f.Product),
		})
	}
	return &Directory{suppliers: suppliers}
}

// Load builds the directory from the registry file when one is configured,
// otherwise from the inline farmer list.
func Load(cfg config.DirectoryConfig) (*Directory, error) {
	if cfg.RegistryPath == "" {
		return FromConfig(cfg), nil
	}

	reg, err := registry.LoadRegistry(cfg.RegistryPath)
	if err != nil {
		return nil, fmt.Errorf("load farmer registry: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return nil, fmt.Errorf("farmer registry %s: %w", cfg.RegistryPath, err)
	}

	farmers := make([]config.FarmerConfig, 0, len(reg.Farmers))
	for _, f := range reg.Farmers {
		farmers = append(farmers, config.FarmerConfig{Name: f.Name, Email: f.Email, Product: f.Product})
	}
	return FromConfig(config.DirectoryConfig{Farmers: farmers}), nil
}

// All returns every supplier in declaration order. The returned slice is a
// copy.
func (d *Directory) All() []models.Supplier {
	out := make([]models.Supplier, len(d.suppliers))
	copy(out, d.suppliers)
	return out
}

func (d *Directory) Len() int {
	return len(d.suppliers)
}
