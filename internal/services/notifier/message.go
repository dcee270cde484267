package notifier

import (
	"fmt"

	"pbf-marketplace/internal/models"

	"github.com/google/uuid"
)

const (
	longDateLayout  = "January 2, 2006"
	noNotesText     = "No additional notes"
	marketplaceName = "PBF Marketplace"
	subjectPrefix   = "New Product Requirement: "
)

// BuildMessage renders the notification a supplier receives for req.
func BuildMessage(supplier models.Supplier, req models.Requirement, from string) models.Message {
	notes := req.Notes
	if notes == "" {
		notes = noNotesText
	}

	body := fmt.Sprintf(
		"Hi %s,\n\nA buyer needs %s (%skg) by %s.\n\nNotes: %s\n\nPlease contact the buyer if you can fulfill this requirement.\n\nBest regards,\n%s",
		supplier.Name, req.Product, req.Quantity.String(), formatDeliveryDate(req), notes, marketplaceName,
	)

	return models.Message{
		ID:      uuid.New().String(),
		From:    from,
		To:      supplier.Email,
		Name:    supplier.Name,
		Subject: subjectPrefix + req.Product,
		Body:    body,
	}
}

// formatDeliveryDate falls back to the raw value when it does not parse,
// which only happens for requirements that bypassed intake validation.
func formatDeliveryDate(req models.Requirement) string {
	day, err := req.DeliveryDay()
	if err != nil {
		return req.DeliveryDate
	}
	return day.Format(longDateLayout)
}
