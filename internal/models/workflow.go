package models

import "time"

// BookingWorkflowInput is the input for the booking workflow
type BookingWorkflowInput struct {
	OrderID      string `json:"orderId"`
	RoomID       string `json:"roomId"`
	RoomTitle    string `json:"roomTitle"`
	DealerID     string `json:"dealerId"`
	StudentID    string `json:"studentId"`
	StudentEmail string `json:"studentEmail"`
	MoveInDate   string `json:"moveInDate"`
}

// BookingWorkflowState represents the current state of the booking workflow
type BookingWorkflowState struct {
	OrderID     string      `json:"orderId"`
	Status      OrderStatus `json:"status"`
	LastUpdated time.Time   `json:"lastUpdated"`
}

// Signals for workflow communication
const (
	SignalBookingDecided = "booking_decided"
)

// BookingDecidedSignal is sent when the dealer confirms or cancels
type BookingDecidedSignal struct {
	Status OrderStatus `json:"status"`
}

// Queries for workflow state
const (
	QueryGetState = "get_state"
)

// BookingEventType names an event published for an order
type BookingEventType string

const (
	EventBookingRequested BookingEventType = "booking.requested"
	EventBookingConfirmed BookingEventType = "booking.confirmed"
	EventBookingCancelled BookingEventType = "booking.cancelled"
)

// BookingEvent is published whenever an order is created or decided
type BookingEvent struct {
	Type       BookingEventType `json:"type"`
	OrderID    string           `json:"orderId"`
	RoomID     string           `json:"roomId"`
	RoomTitle  string           `json:"roomTitle"`
	DealerID   string           `json:"dealerId"`
	StudentID  string           `json:"studentId"`
	Status     OrderStatus      `json:"status"`
	OccurredAt time.Time        `json:"occurredAt"`
}

// EventForStatus maps a decided status to its event type
func EventForStatus(s OrderStatus) BookingEventType {
	switch s {
	case OrderStatusConfirmed:
		return EventBookingConfirmed
	case OrderStatusCancelled:
		return EventBookingCancelled
	}
	return EventBookingRequested
}
