package workflows

import (
	"time"

	"github.com/Rohit6800/UniStay/internal/activities"
	"github.com/Rohit6800/UniStay/internal/models"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const (
	// TaskQueue is where the worker polls for booking workflows
	TaskQueue = "unistay-booking-queue"
	// EventTimeout bounds one publish attempt
	EventTimeout = 30 * time.Second
)

// WorkflowID is the booking workflow id for an order
func WorkflowID(orderID string) string {
	return "booking-" + orderID
}

// BookingWorkflowResult is the result of the booking workflow
type BookingWorkflowResult struct {
	OrderID string             `json:"orderId"`
	Status  models.OrderStatus `json:"status"`
	Decided bool               `json:"decided"`
}

// BookingWorkflow follows one order from request to the dealer's decision
// and publishes an event at each step. The database row stays the source of
// truth; the workflow only fans events out.
func BookingWorkflow(ctx workflow.Context, input models.BookingWorkflowInput) (*BookingWorkflowResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Booking workflow started", "orderId", input.OrderID)

	state := models.BookingWorkflowState{
		OrderID:     input.OrderID,
		Status:      models.OrderStatusPending,
		LastUpdated: workflow.Now(ctx),
	}
	err := workflow.SetQueryHandler(ctx, models.QueryGetState, func() (models.BookingWorkflowState, error) {
		return state, nil
	})
	if err != nil {
		return nil, err
	}

	actx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: EventTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    3,
		},
	})

	var a *activities.Activities
	publish := func(eventType models.BookingEventType) {
		event := models.BookingEvent{
			Type:       eventType,
			OrderID:    input.OrderID,
			RoomID:     input.RoomID,
			RoomTitle:  input.RoomTitle,
			DealerID:   input.DealerID,
			StudentID:  input.StudentID,
			Status:     state.Status,
			OccurredAt: workflow.Now(ctx),
		}
		if err := workflow.ExecuteActivity(actx, a.PublishBookingEvent, event).Get(ctx, nil); err != nil {
			logger.Error("Failed to publish booking event", "type", eventType, "error", err)
		}
	}

	publish(models.EventBookingRequested)

	decidedCh := workflow.GetSignalChannel(ctx, models.SignalBookingDecided)
	cancelled := false
	for !state.Status.IsTerminal() && !cancelled {
		selector := workflow.NewSelector(ctx)
		selector.AddReceive(decidedCh, func(c workflow.ReceiveChannel, more bool) {
			var signal models.BookingDecidedSignal
			c.Receive(ctx, &signal)
			if !signal.Status.IsDecision() {
				logger.Warn("Ignoring booking decision", "status", signal.Status)
				return
			}
			logger.Info("Booking decided", "status", signal.Status)
			state.Status = signal.Status
			state.LastUpdated = workflow.Now(ctx)
		})
		selector.AddReceive(ctx.Done(), func(c workflow.ReceiveChannel, more bool) {
			cancelled = true
		})
		selector.Select(ctx)
	}

	if cancelled {
		logger.Info("Booking workflow cancelled before a decision", "orderId", input.OrderID)
		return &BookingWorkflowResult{OrderID: input.OrderID, Status: state.Status}, nil
	}

	publish(models.EventForStatus(state.Status))
	return &BookingWorkflowResult{OrderID: input.OrderID, Status: state.Status, Decided: true}, nil
}
