package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Rohit6800/UniStay/internal/models"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(w, r, r.URL.Query().Get("user"))
	}))
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func dial(t *testing.T, hub *Hub, srv *httptest.Server, userID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?user=" + userID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool { return hub.GetClientCount(userID) > 0 },
		time.Second, 10*time.Millisecond)
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHub_BookingRequestedReachesBothParties(t *testing.T) {
	hub, srv := startHub(t)
	dealer := dial(t, hub, srv, "dealer-1")
	student := dial(t, hub, srv, "student-1")

	order := models.Order{ID: "order-1", RoomTitle: "Sunny single", DealerID: "dealer-1", StudentID: "student-1", Status: models.OrderStatusPending}
	require.NoError(t, hub.BookingRequested(context.Background(), order))

	for _, conn := range []*websocket.Conn{dealer, student} {
		msg := readMessage(t, conn)
		assert.Equal(t, MessageTypeBookingRequested, msg.Type)
		assert.Equal(t, "order-1", msg.Order.ID)
		assert.Equal(t, "New booking request for Sunny single", msg.Message)
	}
}

func TestHub_OtherUsersSeeNothing(t *testing.T) {
	hub, srv := startHub(t)
	dealer := dial(t, hub, srv, "dealer-1")
	bystander := dial(t, hub, srv, "dealer-2")

	order := models.Order{ID: "order-1", DealerID: "dealer-1", StudentID: "student-1", Status: models.OrderStatusConfirmed}
	require.NoError(t, hub.BookingDecided(context.Background(), order))

	msg := readMessage(t, dealer)
	assert.Equal(t, MessageTypeBookingDecided, msg.Type)
	assert.Equal(t, models.OrderStatusConfirmed, msg.Order.Status)

	require.NoError(t, bystander.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := bystander.ReadMessage()
	assert.Error(t, err)
}

func TestHub_UnregistersOnClose(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, hub, srv, "student-1")

	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool { return hub.GetClientCount("student-1") == 0 },
		time.Second, 10*time.Millisecond)
}

func TestHub_PublishAfterShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	// fill the buffer; further publishes must not block
	for i := 0; i < 300; i++ {
		require.NoError(t, hub.BookingDecided(context.Background(), models.Order{ID: "o"}))
	}
}
