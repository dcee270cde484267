// Package events publishes domain events about stored requirements.
package events

import (
	"context"
	"time"

	"pbf-marketplace/internal/models"
)

const TypeRequirementCreated = "requirement.created"

// RequirementCreated is the payload published after a requirement is stored.
type RequirementCreated struct {
	Type        string             `json:"type"`
	Requirement models.Requirement `json:"requirement"`
	OccurredAt  time.Time          `json:"occurredAt"`
}

func NewRequirementCreated(req models.Requirement, at time.Time) RequirementCreated {
	return RequirementCreated{
		Type:        TypeRequirementCreated,
		Requirement: req,
		OccurredAt:  at.UTC(),
	}
}

type Publisher interface {
	PublishRequirementCreated(ctx context.Context, event RequirementCreated) error
	Close() error
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) PublishRequirementCreated(context.Context, RequirementCreated) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }
