package activities

import (
	"context"
	"errors"
	"testing"

	"github.com/Rohit6800/UniStay/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"
)

type fakePublisher struct {
	events []models.BookingEvent
	err    error
}

func (f *fakePublisher) Publish(ctx context.Context, event models.BookingEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func TestPublishBookingEvent_Success(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestActivityEnvironment()
	pub := &fakePublisher{}
	a := New(pub)
	env.RegisterActivity(a)

	event := models.BookingEvent{
		Type:    models.EventBookingRequested,
		OrderID: "order-1",
		Status:  models.OrderStatusPending,
	}
	_, err := env.ExecuteActivity(a.PublishBookingEvent, event)
	require.NoError(t, err)

	require.Len(t, pub.events, 1)
	assert.Equal(t, event, pub.events[0])
}

func TestPublishBookingEvent_Failure(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestActivityEnvironment()
	a := New(&fakePublisher{err: errors.New("broker down")})
	env.RegisterActivity(a)

	_, err := env.ExecuteActivity(a.PublishBookingEvent, models.BookingEvent{
		Type:    models.EventBookingConfirmed,
		OrderID: "order-1",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish booking.confirmed")
	assert.Contains(t, err.Error(), "broker down")
}
