package activities

import (
	"context"
	"fmt"

	"github.com/Rohit6800/UniStay/internal/events"
	"github.com/Rohit6800/UniStay/internal/models"
	"go.temporal.io/sdk/activity"
)

// Activities are the side effects the booking workflow performs
type Activities struct {
	Publisher events.Publisher
}

func New(publisher events.Publisher) *Activities {
	return &Activities{Publisher: publisher}
}

// PublishBookingEvent activity - hands a booking event to the message bus.
// Errors are returned so the workflow's retry policy applies.
func (a *Activities) PublishBookingEvent(ctx context.Context, event models.BookingEvent) error {
	logger := activity.GetLogger(ctx)
	logger.Info("Publishing booking event", "type", event.Type, "orderID", event.OrderID)

	if err := a.Publisher.Publish(ctx, event); err != nil {
		logger.Warn("Booking event publish failed", "orderID", event.OrderID, "error", err)
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}
	return nil
}
