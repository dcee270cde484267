// Package intake accepts buyer requirements, stores them and notifies the
// suppliers whose offering matches.
package intake

import (
	"context"
	"fmt"
	"time"

	"pbf-marketplace/internal/common/events"
	"pbf-marketplace/internal/common/logger"
	"pbf-marketplace/internal/common/metrics"
	"pbf-marketplace/internal/common/observability"
	"pbf-marketplace/internal/models"
	"pbf-marketplace/internal/services/matcher"
	requirementstore "pbf-marketplace/internal/services/requirement-store"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	config    *Config
	store     requirementstore.Store
	directory SupplierDirectory
	notifier  Dispatcher
	publisher events.Publisher
	obs       *observability.Observability
	logger    logger.Logger
	now       func() time.Time
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	if config == nil {
		config = DefaultConfig()
	}
	publisher := deps.Publisher
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	now := deps.Clock
	if now == nil {
		now = time.Now
	}

	return &Service{
		config:    config,
		store:     deps.Store,
		directory: deps.Directory,
		notifier:  deps.Notifier,
		publisher: publisher,
		obs:       deps.Observability,
		logger:    log.WithFields(map[string]interface{}{"component": "intake"}),
		now:       now,
	}
}

// Submit validates raw, stores it, and notifies every matching supplier.
// Validation failures are returned before anything is stored. Once stored,
// the submission succeeds regardless of how individual deliveries went.
func (s *Service) Submit(ctx context.Context, raw RawRequirement) (*SubmissionResult, error) {
	start := time.Now()
	ctx, span := s.obs.StartSpan(ctx, "intake.submit")
	defer span.End()

	outcome := metrics.OutcomeFailed
	defer func() {
		elapsed := time.Since(start)
		metrics.RequirementsSubmitted.WithLabelValues(outcome).Inc()
		metrics.RequirementSubmissionDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
		s.obs.RecordSubmission(ctx, outcome, elapsed)
	}()

	candidate, err := validateRequirement(raw, s.now())
	if err != nil {
		outcome = metrics.OutcomeRejected
		span.SetStatus(codes.Error, "rejected")
		s.logger.Warn("requirement rejected", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	req, err := s.store.Append(ctx, *candidate)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "store failed")
		s.logger.WithError(err).Error("failed to store requirement", map[string]interface{}{
			"product": candidate.Product,
		})
		return nil, err
	}

	span.SetAttributes(
		attribute.Int64("requirement.id", req.ID),
		attribute.String("requirement.product", req.Product),
	)
	s.logger.Info("requirement stored", map[string]interface{}{
		"requirementId": req.ID,
		"product":       req.Product,
		"quantity":      req.Quantity.String(),
		"deliveryDate":  req.DeliveryDate,
	})

	s.publish(ctx, *req)

	matched := matcher.Match(req.Product, s.directory.All())
	span.SetAttributes(attribute.Int("suppliers.matched", len(matched)))

	if len(matched) == 0 {
		outcome = metrics.OutcomeNoMatch
		s.logger.Info("no matching suppliers", map[string]interface{}{
			"requirementId": req.ID,
			"product":       req.Product,
		})
		return &SubmissionResult{
			Message: fmt.Sprintf(
				"No farmers found growing \"%s\". Your requirement has been saved and we'll notify you when matching farmers are available.",
				req.Product),
			NotifiedFarmers: []models.Contact{},
			Requirement:     *req,
			Outcomes:        []models.NotificationOutcome{},
		}, nil
	}

	outcomes := s.dispatchAll(ctx, matched, *req)

	notified := make([]models.Contact, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Delivered {
			notified = append(notified, o.Supplier.Contact())
		}
	}

	result := &SubmissionResult{
		NotifiedFarmers: notified,
		Requirement:     *req,
		Outcomes:        outcomes,
	}
	if len(notified) == 0 {
		outcome = metrics.OutcomeFailed
		result.Message = fmt.Sprintf(
			"Your requirement has been saved, but we could not notify any of the %d matched farmers right now.",
			len(matched))
	} else {
		outcome = metrics.OutcomeNotified
		result.Message = fmt.Sprintf("Successfully notified %d %s about your requirement!", len(notified), farmersNoun(len(notified)))
	}

	s.logger.Info("requirement processed", map[string]interface{}{
		"requirementId": req.ID,
		"matched":       len(matched),
		"notified":      len(notified),
	})

	return result, nil
}

func farmersNoun(n int) string {
	if n == 1 {
		return "farmer"
	}
	return "farmers"
}

// dispatchAll notifies every supplier and waits for all of them. Each
// goroutine writes only its own slot, so outcomes keep the match order.
// Dispatches are detached from caller cancellation once started.
func (s *Service) dispatchAll(ctx context.Context, suppliers []models.Supplier, req models.Requirement) []models.NotificationOutcome {
	dispatchCtx := context.WithoutCancel(ctx)
	outcomes := make([]models.NotificationOutcome, len(suppliers))

	var g errgroup.Group
	if s.config.MaxConcurrent > 0 {
		g.SetLimit(s.config.MaxConcurrent)
	}
	for i, supplier := range suppliers {
		i, supplier := i, supplier
		g.Go(func() error {
			outcomes[i] = s.notifier.Dispatch(dispatchCtx, supplier, req)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func (s *Service) publish(ctx context.Context, req models.Requirement) {
	event := events.NewRequirementCreated(req, s.now())
	if err := s.publisher.PublishRequirementCreated(ctx, event); err != nil {
		s.logger.WithError(err).Warn("failed to publish requirement event", map[string]interface{}{
			"requirementId": req.ID,
		})
	}
}

// List returns every stored requirement in creation order.
func (s *Service) List(ctx context.Context) ([]models.Requirement, error) {
	return s.store.List(ctx)
}
