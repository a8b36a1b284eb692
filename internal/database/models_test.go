package database

import (
	"testing"
	"time"

	"github.com/Rohit6800/UniStay/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestListingRow_ToListing(t *testing.T) {
	id := uuid.New()
	owner := uuid.New()
	lat, lng := 23.34, 85.39
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	row := ListingRow{
		ID:              id,
		CreatedAt:       created,
		OwnerID:         owner,
		OwnerName:       "Amit Mahato",
		ListingTitle:    "Modern Single Room",
		RoomType:        "private_single_room",
		MonthlyRent:     3200,
		SecurityDeposit: 3000,
		State:           "Jharkhand",
		City:            "Ranchi",
		NearCollege:     "Sarala Birla University",
		RoomPicture:     strPtr("bed.jpg"),
		KitchenPicture:  nil,
		BathroomPicture: strPtr("bath.jpg"),
		WiFi:            true,
		Geyser:          true,
		CCTV:            true,
		Latitude:        &lat,
		Longitude:       &lng,
	}

	l := row.ToListing()

	assert.Equal(t, id.String(), l.ID)
	assert.Equal(t, models.RoomTypeSingle, l.Type)
	assert.Equal(t, "Ranchi, Jharkhand", l.Location)
	assert.Equal(t, []string{"bed.jpg", "bath.jpg"}, l.Photos)
	assert.Equal(t, []string{"WiFi", "Geyser", "CCTV"}, l.Amenities)
	assert.Equal(t, models.GenderCoed, l.GenderPref)
	assert.Equal(t, "Immediately", l.AvailableFrom)
	assert.Equal(t, DefaultRules, l.Rules)
	assert.Equal(t, DefaultSafety, l.Safety)
	assert.Equal(t, owner.String(), l.OwnerID)
	assert.Equal(t, models.Coordinates{Lat: lat, Lng: lng}, l.Coordinates)
	assert.True(t, l.IsVerified)
	assert.False(t, l.IsFeatured)
	assert.NotNil(t, l.Reviews)
	assert.Equal(t, created, l.CreatedAt)
}

func TestListingRow_ToListing_RoomTypes(t *testing.T) {
	tests := map[string]models.RoomType{
		"single":         models.RoomTypeSingle,
		"Double Sharing": models.RoomTypeSharing,
		"pg":             models.RoomTypePG,
		"hostel":         models.RoomTypePG,
	}

	for raw, expected := range tests {
		row := ListingRow{RoomType: raw}
		assert.Equal(t, expected, row.ToListing().Type, raw)
	}
}

func TestListingRow_ToListing_KeepsStoredValues(t *testing.T) {
	row := ListingRow{
		GenderPref:    strPtr("Girls"),
		AvailableFrom: strPtr("1st June"),
		Rules:         []string{"Entry by 9 PM"},
		OwnerPhone:    strPtr("+91 8877661122"),
	}

	l := row.ToListing()

	assert.Equal(t, models.GenderGirls, l.GenderPref)
	assert.Equal(t, "1st June", l.AvailableFrom)
	assert.Equal(t, []string{"Entry by 9 PM"}, l.Rules)
	assert.Equal(t, "+91 8877661122", l.OwnerPhone)
	assert.Empty(t, l.Photos)
	assert.Empty(t, l.Amenities)
}

func TestNewListingRow(t *testing.T) {
	owner := models.User{ID: uuid.NewString(), Role: models.RoleDealer, Name: "Vikram Singh"}
	req := &models.CreateListingRequest{
		Title:        "Premium Studio",
		Type:         models.RoomTypeSharing,
		Rent:         8500,
		Deposit:      15000,
		State:        "Jharkhand",
		City:         "Ranchi",
		CollegeName:  "Sarala Birla University",
		Amenities:    []string{"WiFi", "Smart TV", "cctv"},
		BedroomPhoto: "bed.jpg",
	}

	row := NewListingRow(uuid.MustParse(owner.ID), owner.Name, req)

	assert.Equal(t, owner.ID, row.OwnerID.String())
	assert.Equal(t, "Vikram Singh", row.OwnerName)
	assert.Equal(t, "sharing", row.RoomType)
	assert.True(t, row.WiFi)
	assert.True(t, row.CCTV)
	assert.False(t, row.TV)
	assert.Nil(t, row.KitchenPicture)
	assert.Nil(t, row.Latitude)
	require.NotNil(t, row.RoomPicture)

	// the row round-trips through the projection
	row.ID = uuid.New()
	l := row.ToListing()
	assert.Equal(t, models.RoomTypeSharing, l.Type)
	assert.Equal(t, []string{"bed.jpg"}, l.Photos)
	assert.Equal(t, []string{"WiFi", "CCTV"}, l.Amenities)
}

func TestNewOrderRow_SnapshotsListing(t *testing.T) {
	listing := &ListingRow{
		ID:              uuid.New(),
		OwnerID:         uuid.New(),
		ListingTitle:    "Cozy PG",
		MonthlyRent:     5500,
		SecurityDeposit: 5000,
	}
	student := models.User{ID: uuid.NewString(), Name: "Priya", Email: "priya@example.com"}

	row := NewOrderRow(listing, uuid.MustParse(student.ID), student, "2026-07-01", "")

	// later price changes on the listing do not reach the order
	listing.MonthlyRent = 9000

	o := row.ToOrder()
	assert.Equal(t, models.OrderStatusPending, o.Status)
	assert.Equal(t, 5500, o.Rent)
	assert.Equal(t, 5000, o.Deposit)
	assert.Equal(t, "Cozy PG", o.RoomTitle)
	assert.Equal(t, listing.OwnerID.String(), o.DealerID)
	assert.Equal(t, student.ID, o.StudentID)
	assert.Nil(t, row.Message)
	assert.Empty(t, o.Message)
}
