package workflows

import (
	"errors"
	"testing"
	"time"

	"github.com/Rohit6800/UniStay/internal/activities"
	"github.com/Rohit6800/UniStay/internal/models"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/testsuite"
)

type BookingWorkflowTestSuite struct {
	suite.Suite
	testsuite.WorkflowTestSuite
	env *testsuite.TestWorkflowEnvironment
	a   *activities.Activities
}

func (s *BookingWorkflowTestSuite) SetupTest() {
	s.env = s.NewTestWorkflowEnvironment()
	s.a = &activities.Activities{}
}

func (s *BookingWorkflowTestSuite) AfterTest(suiteName, testName string) {
	s.env.AssertExpectations(s.T())
}

func TestBookingWorkflowTestSuite(t *testing.T) {
	suite.Run(t, new(BookingWorkflowTestSuite))
}

var errBroker = errors.New("broker down")

func testInput() models.BookingWorkflowInput {
	return models.BookingWorkflowInput{
		OrderID:      "order-123",
		RoomID:       "room-456",
		RoomTitle:    "Sunny single",
		DealerID:     "dealer-1",
		StudentID:    "student-1",
		StudentEmail: "priya@example.com",
		MoveInDate:   "2025-07-01",
	}
}

func eventOfType(t models.BookingEventType) interface{} {
	return mock.MatchedBy(func(e models.BookingEvent) bool {
		return e.Type == t && e.OrderID == "order-123" && e.DealerID == "dealer-1"
	})
}

func (s *BookingWorkflowTestSuite) TestWorkflow_Constants() {
	s.Equal("unistay-booking-queue", TaskQueue)
	s.Equal("booking-order-123", WorkflowID("order-123"))
}

func (s *BookingWorkflowTestSuite) TestWorkflow_Confirmed() {
	s.env.OnActivity(s.a.PublishBookingEvent, mock.Anything, eventOfType(models.EventBookingRequested)).Return(nil).Once()
	s.env.OnActivity(s.a.PublishBookingEvent, mock.Anything, mock.MatchedBy(func(e models.BookingEvent) bool {
		return e.Type == models.EventBookingConfirmed && e.Status == models.OrderStatusConfirmed
	})).Return(nil).Once()

	s.env.RegisterDelayedCallback(func() {
		s.env.SignalWorkflow(models.SignalBookingDecided, models.BookingDecidedSignal{Status: models.OrderStatusConfirmed})
	}, time.Minute)

	s.env.ExecuteWorkflow(BookingWorkflow, testInput())

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var result *BookingWorkflowResult
	s.NoError(s.env.GetWorkflowResult(&result))
	s.True(result.Decided)
	s.Equal(models.OrderStatusConfirmed, result.Status)
}

func (s *BookingWorkflowTestSuite) TestWorkflow_Cancelled() {
	s.env.OnActivity(s.a.PublishBookingEvent, mock.Anything, eventOfType(models.EventBookingRequested)).Return(nil).Once()
	s.env.OnActivity(s.a.PublishBookingEvent, mock.Anything, eventOfType(models.EventBookingCancelled)).Return(nil).Once()

	s.env.RegisterDelayedCallback(func() {
		s.env.SignalWorkflow(models.SignalBookingDecided, models.BookingDecidedSignal{Status: models.OrderStatusCancelled})
	}, time.Minute)

	s.env.ExecuteWorkflow(BookingWorkflow, testInput())

	s.True(s.env.IsWorkflowCompleted())
	var result *BookingWorkflowResult
	s.NoError(s.env.GetWorkflowResult(&result))
	s.Equal(models.OrderStatusCancelled, result.Status)
}

func (s *BookingWorkflowTestSuite) TestWorkflow_IgnoresNonDecisions() {
	s.env.OnActivity(s.a.PublishBookingEvent, mock.Anything, eventOfType(models.EventBookingRequested)).Return(nil).Once()
	s.env.OnActivity(s.a.PublishBookingEvent, mock.Anything, eventOfType(models.EventBookingConfirmed)).Return(nil).Once()

	s.env.RegisterDelayedCallback(func() {
		s.env.SignalWorkflow(models.SignalBookingDecided, models.BookingDecidedSignal{Status: models.OrderStatusPending})
	}, time.Minute)
	s.env.RegisterDelayedCallback(func() {
		s.env.SignalWorkflow(models.SignalBookingDecided, models.BookingDecidedSignal{Status: "reopened"})
	}, 2*time.Minute)
	s.env.RegisterDelayedCallback(func() {
		res, err := s.env.QueryWorkflow(models.QueryGetState)
		s.NoError(err)
		var state models.BookingWorkflowState
		s.NoError(res.Get(&state))
		s.Equal(models.OrderStatusPending, state.Status)

		s.env.SignalWorkflow(models.SignalBookingDecided, models.BookingDecidedSignal{Status: models.OrderStatusConfirmed})
	}, 3*time.Minute)

	s.env.ExecuteWorkflow(BookingWorkflow, testInput())

	s.True(s.env.IsWorkflowCompleted())
	var result *BookingWorkflowResult
	s.NoError(s.env.GetWorkflowResult(&result))
	s.Equal(models.OrderStatusConfirmed, result.Status)
}

func (s *BookingWorkflowTestSuite) TestWorkflow_QueryState() {
	s.env.OnActivity(s.a.PublishBookingEvent, mock.Anything, mock.Anything).Return(nil)

	s.env.RegisterDelayedCallback(func() {
		res, err := s.env.QueryWorkflow(models.QueryGetState)
		s.NoError(err)
		var state models.BookingWorkflowState
		s.NoError(res.Get(&state))
		s.Equal("order-123", state.OrderID)
		s.Equal(models.OrderStatusPending, state.Status)

		s.env.SignalWorkflow(models.SignalBookingDecided, models.BookingDecidedSignal{Status: models.OrderStatusCancelled})
	}, time.Minute)

	s.env.ExecuteWorkflow(BookingWorkflow, testInput())
	s.True(s.env.IsWorkflowCompleted())
}

func (s *BookingWorkflowTestSuite) TestWorkflow_PublishFailureDoesNotFail() {
	s.env.OnActivity(s.a.PublishBookingEvent, mock.Anything, mock.Anything).Return(errBroker)

	s.env.RegisterDelayedCallback(func() {
		s.env.SignalWorkflow(models.SignalBookingDecided, models.BookingDecidedSignal{Status: models.OrderStatusConfirmed})
	}, time.Minute)

	s.env.ExecuteWorkflow(BookingWorkflow, testInput())

	s.True(s.env.IsWorkflowCompleted())
	var result *BookingWorkflowResult
	s.NoError(s.env.GetWorkflowResult(&result))
	s.True(result.Decided)
}

func (s *BookingWorkflowTestSuite) TestWorkflow_Cancellation() {
	s.env.OnActivity(s.a.PublishBookingEvent, mock.Anything, eventOfType(models.EventBookingRequested)).Return(nil).Once()

	s.env.RegisterDelayedCallback(func() {
		s.env.CancelWorkflow()
	}, time.Minute)

	s.env.ExecuteWorkflow(BookingWorkflow, testInput())

	s.True(s.env.IsWorkflowCompleted())

	var result *BookingWorkflowResult
	s.NoError(s.env.GetWorkflowResult(&result))
	s.False(result.Decided)
	s.Equal(models.OrderStatusPending, result.Status)
}
