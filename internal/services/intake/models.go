package intake

import (
	"context"
	"time"

	"pbf-marketplace/internal/common/events"
	"pbf-marketplace/internal/common/logger"
	"pbf-marketplace/internal/common/observability"
	"pbf-marketplace/internal/models"
	requirementstore "pbf-marketplace/internal/services/requirement-store"
)

// RawRequirement is the decoded, unvalidated submission document.
type RawRequirement map[string]interface{}

// SubmissionResult is returned for every accepted submission, whether or not
// any supplier was notified.
type SubmissionResult struct {
	Message         string                       `json:"message"`
	NotifiedFarmers []models.Contact             `json:"notifiedFarmers"`
	Requirement     models.Requirement           `json:"requirement"`
	Outcomes        []models.NotificationOutcome `json:"-"`
}

// SupplierDirectory is the read side of the farmer directory.
type SupplierDirectory interface {
	All() []models.Supplier
}

// Dispatcher delivers one notification and reports how it went.
type Dispatcher interface {
	Dispatch(ctx context.Context, supplier models.Supplier, req models.Requirement) models.NotificationOutcome
}

type ServiceDependencies struct {
	Store         requirementstore.Store
	Directory     SupplierDirectory
	Notifier      Dispatcher
	Publisher     events.Publisher
	Observability *observability.Observability
	Logger        logger.Logger
	Clock         func() time.Time
}
