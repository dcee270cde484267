// Package requirementstore keeps the append-only log of buyer requirements.
package requirementstore

import (
	"context"
	"time"

	"pbf-marketplace/internal/models"
)

// Store is the append/read contract every backend honours. IDs are unique
// and strictly increasing in append order; stored requirements never change.
type Store interface {
	Append(ctx context.Context, candidate models.RequirementCandidate) (*models.Requirement, error)
	List(ctx context.Context) ([]models.Requirement, error)
}

// Clock returns the current time. Tests replace it.
type Clock func() time.Time
