package workflows

import (
	"context"
	"fmt"

	"github.com/Rohit6800/UniStay/internal/models"
	"go.temporal.io/sdk/client"
)

// Starter drives booking workflows from the API server: it starts one per
// order and signals the dealer's decision to it
type Starter struct {
	client    client.Client
	taskQueue string
}

func NewStarter(c client.Client, taskQueue string) *Starter {
	if taskQueue == "" {
		taskQueue = TaskQueue
	}
	return &Starter{client: c, taskQueue: taskQueue}
}

func (s *Starter) BookingRequested(ctx context.Context, order models.Order) error {
	opts := client.StartWorkflowOptions{
		ID:        WorkflowID(order.ID),
		TaskQueue: s.taskQueue,
	}
	input := models.BookingWorkflowInput{
		OrderID:      order.ID,
		RoomID:       order.RoomID,
		RoomTitle:    order.RoomTitle,
		DealerID:     order.DealerID,
		StudentID:    order.StudentID,
		StudentEmail: order.StudentEmail,
		MoveInDate:   order.MoveInDate,
	}

	if _, err := s.client.ExecuteWorkflow(ctx, opts, BookingWorkflow, input); err != nil {
		return fmt.Errorf("failed to start booking workflow: %w", err)
	}
	return nil
}

func (s *Starter) BookingDecided(ctx context.Context, order models.Order) error {
	err := s.client.SignalWorkflow(ctx, WorkflowID(order.ID), "", models.SignalBookingDecided,
		models.BookingDecidedSignal{Status: order.Status})
	if err != nil {
		return fmt.Errorf("failed to signal booking workflow: %w", err)
	}
	return nil
}
