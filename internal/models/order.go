package models

import "time"

// Order represents a student's booking request for a listing.
// Rent, Deposit and RoomTitle are copied from the listing when the order
// is created and never recomputed.
type Order struct {
	ID           string      `json:"id"`
	CreatedAt    time.Time   `json:"createdAt"`
	RoomID       string      `json:"roomId"`
	RoomTitle    string      `json:"roomTitle"`
	DealerID     string      `json:"dealerId"`
	StudentID    string      `json:"studentId"`
	StudentName  string      `json:"studentName"`
	StudentEmail string      `json:"studentEmail"`
	Rent         int         `json:"rent"`
	Deposit      int         `json:"deposit"`
	Status       OrderStatus `json:"status"`
	MoveInDate   string      `json:"moveInDate"`
	Message      string      `json:"message,omitempty"`
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsTerminal reports whether no further transition is allowed out of s
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusConfirmed || s == OrderStatusCancelled
}

// IsDecision reports whether s is a status a dealer may move an order to
func (s OrderStatus) IsDecision() bool {
	return s.IsTerminal()
}

// CanTransition reports whether an order in status s may move to next.
// Only pending orders move, and only to confirmed or cancelled.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	return s == OrderStatusPending && next.IsDecision()
}

// CreateOrderRequest represents a request to book a listing
type CreateOrderRequest struct {
	RoomID     string `json:"roomId"`
	MoveInDate string `json:"moveInDate"`
	Message    string `json:"message,omitempty"`
}

// UpdateOrderStatusRequest carries a dealer's decision on an order
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status"`
}
