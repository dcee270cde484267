// Package notifier delivers one requirement notification to one supplier.
package notifier

import (
	"context"
	"errors"
	"time"

	apperrors "pbf-marketplace/internal/common/errors"
	"pbf-marketplace/internal/common/logger"
	"pbf-marketplace/internal/common/metrics"
	"pbf-marketplace/internal/models"
)

type Config struct {
	// SendEmail selects live delivery. When false no transport is touched.
	SendEmail       bool
	FromEmail       string
	DispatchTimeout time.Duration
}

type Notifier struct {
	config    Config
	transport Transport
	outbox    *Outbox
	logger    logger.Logger
	now       func() time.Time
}

// New fixes the delivery mode for the lifetime of the notifier. Live mode
// requires a transport.
func New(cfg Config, transport Transport, log logger.Logger) (*Notifier, error) {
	if cfg.SendEmail && transport == nil {
		return nil, errors.New("live notification mode requires a transport")
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Notifier{
		config:    cfg,
		transport: transport,
		outbox:    &Outbox{},
		logger:    log.WithFields(map[string]interface{}{"component": "notifier"}),
		now:       time.Now,
	}, nil
}

func (n *Notifier) Mode() string {
	if n.config.SendEmail {
		return models.ModeLive
	}
	return models.ModeSimulated
}

// Outbox exposes messages recorded in simulated mode.
func (n *Notifier) Outbox() *Outbox { return n.outbox }

// Dispatch never returns an error. Delivery failures are reported on the
// outcome so one farmer's failure cannot affect the others.
func (n *Notifier) Dispatch(ctx context.Context, supplier models.Supplier, req models.Requirement) models.NotificationOutcome {
	metrics.NotificationsInFlight.Inc()
	defer metrics.NotificationsInFlight.Dec()

	msg := BuildMessage(supplier, req, n.config.FromEmail)
	outcome := models.NotificationOutcome{
		NotificationID: msg.ID,
		Supplier:       supplier,
		Mode:           n.Mode(),
	}

	if n.config.SendEmail {
		n.deliver(ctx, msg, &outcome)
	} else {
		n.simulate(msg, &outcome)
	}

	outcome.SentAt = n.now().UTC()

	status := "delivered"
	if !outcome.Delivered {
		status = "failed"
	}
	metrics.NotificationsDispatched.WithLabelValues(outcome.Mode, status).Inc()

	return outcome
}

func (n *Notifier) deliver(ctx context.Context, msg models.Message, outcome *models.NotificationOutcome) {
	if n.config.DispatchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.config.DispatchTimeout)
		defer cancel()
	}

	if err := n.transport.Send(ctx, msg); err != nil {
		sendErr := apperrors.NewNotificationSendFailedError(n.transport.Name(), err)
		outcome.Error = sendErr.Details
		n.logger.WithError(err).Warn("notification delivery failed", map[string]interface{}{
			"notificationId": msg.ID,
			"to":             msg.To,
			"transport":      n.transport.Name(),
		})
		return
	}

	outcome.Delivered = true
	n.logger.Info("notification delivered", map[string]interface{}{
		"notificationId": msg.ID,
		"to":             msg.To,
		"transport":      n.transport.Name(),
	})
}

func (n *Notifier) simulate(msg models.Message, outcome *models.NotificationOutcome) {
	n.outbox.add(msg)
	outcome.Delivered = true
	n.logger.Info("notification simulated", map[string]interface{}{
		"notificationId": msg.ID,
		"to":             msg.To,
		"subject":        msg.Subject,
		"body":           msg.Body,
	})
}
