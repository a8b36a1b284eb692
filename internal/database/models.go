package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/Rohit6800/UniStay/internal/models"
	"github.com/google/uuid"
)

// ListingRow is a row of the listings table. Column names follow the
// store's snake_case schema; amenities are individual flags.
type ListingRow struct {
	ID              uuid.UUID `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	OwnerID         uuid.UUID `json:"owner_id"`
	OwnerName       string    `json:"owner_name"`
	OwnerPhone      *string   `json:"owner_phone"`
	ListingTitle    string    `json:"listing_title"`
	RoomType        string    `json:"room_type"`
	MonthlyRent     int       `json:"monthly_rent"`
	SecurityDeposit int       `json:"security_deposit"`
	State           string    `json:"state"`
	City            string    `json:"city"`
	NearCollege     string    `json:"near_college"`
	RoomPicture     *string   `json:"room_picture"`
	KitchenPicture  *string   `json:"kitchen_picture"`
	BathroomPicture *string   `json:"bathroom_picture"`
	WiFi            bool      `json:"wifi"`
	PowerBackup     bool      `json:"power_backup"`
	Geyser          bool      `json:"geyser"`
	TV              bool      `json:"tv"`
	Refrigerator    bool      `json:"refrigerator"`
	WashingMachine  bool      `json:"washing_machine"`
	CCTV            bool      `json:"cctv"`
	SecurityGuard   bool      `json:"security_guard"`
	Furnished       bool      `json:"furnished"`
	AC              bool      `json:"ac"`
	AttachedBath    bool      `json:"attached_bathroom"`
	GenderPref      *string   `json:"gender_pref"`
	AvailableFrom   *string   `json:"available_from"`
	Rules           []string  `json:"rules"`
	Latitude        *float64  `json:"latitude"`
	Longitude       *float64  `json:"longitude"`
}

// Defaults for fields the store does not carry
var (
	DefaultRules  = []string{"No smoking", "No loud music"}
	DefaultSafety = models.SafetyStats{Rating: 4.5, PoliceProximity: "1km", Lighting: "Excellent"}
)

const (
	defaultDistance      = 0.5
	defaultAvailableFrom = "Immediately"
)

// amenity flags in display order
func (r *ListingRow) amenities() []string {
	flags := []struct {
		set  bool
		name string
	}{
		{r.WiFi, "WiFi"},
		{r.PowerBackup, "Power Backup"},
		{r.Geyser, "Geyser"},
		{r.TV, "TV"},
		{r.Refrigerator, "Refrigerator"},
		{r.WashingMachine, "Washing Machine"},
		{r.CCTV, "CCTV"},
		{r.SecurityGuard, "Security Guard"},
	}
	out := make([]string, 0, len(flags))
	for _, f := range flags {
		if f.set {
			out = append(out, f.name)
		}
	}
	return out
}

func (r *ListingRow) photos() []string {
	out := make([]string, 0, 3)
	for _, p := range []*string{r.RoomPicture, r.KitchenPicture, r.BathroomPicture} {
		if p != nil && *p != "" {
			out = append(out, *p)
		}
	}
	return out
}

func parseRoomType(s string) models.RoomType {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "single"):
		return models.RoomTypeSingle
	case strings.Contains(s, "sharing"):
		return models.RoomTypeSharing
	}
	return models.RoomTypePG
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// ToListing projects a stored row onto the listing shape served to clients
func (r *ListingRow) ToListing() models.Listing {
	gender := models.GenderPref(deref(r.GenderPref))
	if !gender.Valid() {
		gender = models.GenderCoed
	}
	available := deref(r.AvailableFrom)
	if available == "" {
		available = defaultAvailableFrom
	}
	rules := r.Rules
	if len(rules) == 0 {
		rules = append([]string(nil), DefaultRules...)
	}

	return models.Listing{
		ID:               r.ID.String(),
		Title:            r.ListingTitle,
		Type:             parseRoomType(r.RoomType),
		Rent:             r.MonthlyRent,
		Deposit:          r.SecurityDeposit,
		Location:         fmt.Sprintf("%s, %s", r.City, r.State),
		State:            r.State,
		City:             r.City,
		CollegeName:      r.NearCollege,
		Distance:         defaultDistance,
		Photos:           r.photos(),
		IsVerified:       true,
		IsFeatured:       false,
		Amenities:        r.amenities(),
		Furnished:        r.Furnished,
		AttachedBathroom: r.AttachedBath,
		AC:               r.AC,
		GenderPref:       gender,
		AvailableFrom:    available,
		Rules:            rules,
		OwnerID:          r.OwnerID.String(),
		OwnerName:        r.OwnerName,
		OwnerPhone:       deref(r.OwnerPhone),
		Safety:           DefaultSafety,
		Reviews:          []models.Review{},
		Coordinates:      models.Coordinates{Lat: derefFloat(r.Latitude), Lng: derefFloat(r.Longitude)},
		CreatedAt:        r.CreatedAt,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// NewListingRow builds the row to insert for a dealer's submission.
// Known amenity names set their flag; other names are not stored.
func NewListingRow(ownerID uuid.UUID, ownerName string, req *models.CreateListingRequest) *ListingRow {
	row := &ListingRow{
		OwnerID:         ownerID,
		OwnerName:       ownerName,
		OwnerPhone:      optional(req.OwnerPhone),
		ListingTitle:    req.Title,
		RoomType:        strings.ToLower(string(req.Type)),
		MonthlyRent:     req.Rent,
		SecurityDeposit: req.Deposit,
		State:           req.State,
		City:            req.City,
		NearCollege:     req.CollegeName,
		RoomPicture:     optional(req.BedroomPhoto),
		KitchenPicture:  optional(req.KitchenPhoto),
		BathroomPicture: optional(req.BathroomPhoto),
		Furnished:       req.Furnished,
		AC:              req.AC,
		AttachedBath:    req.AttachedBathroom,
		GenderPref:      optional(string(req.GenderPref)),
		AvailableFrom:   optional(req.AvailableFrom),
		Rules:           req.Rules,
	}
	if req.Coordinates != (models.Coordinates{}) {
		row.Latitude = &req.Coordinates.Lat
		row.Longitude = &req.Coordinates.Lng
	}
	for _, a := range req.Amenities {
		switch strings.ToLower(a) {
		case "wifi":
			row.WiFi = true
		case "power backup":
			row.PowerBackup = true
		case "geyser":
			row.Geyser = true
		case "tv":
			row.TV = true
		case "refrigerator":
			row.Refrigerator = true
		case "washing machine":
			row.WashingMachine = true
		case "cctv":
			row.CCTV = true
		case "security guard":
			row.SecurityGuard = true
		}
	}
	return row
}

// OrderRow is a row of the orders table
type OrderRow struct {
	ID           uuid.UUID          `json:"id"`
	CreatedAt    time.Time          `json:"created_at"`
	RoomID       uuid.UUID          `json:"room_id"`
	RoomTitle    string             `json:"room_title"`
	DealerID     uuid.UUID          `json:"dealer_id"`
	StudentID    uuid.UUID          `json:"student_id"`
	StudentName  string             `json:"student_name"`
	StudentEmail string             `json:"student_email"`
	Rent         int                `json:"rent"`
	Deposit      int                `json:"deposit"`
	Status       models.OrderStatus `json:"status"`
	MoveInDate   string             `json:"move_in_date"`
	Message      *string            `json:"message"`
}

// ToOrder converts the row to the API shape
func (r *OrderRow) ToOrder() models.Order {
	return models.Order{
		ID:           r.ID.String(),
		CreatedAt:    r.CreatedAt,
		RoomID:       r.RoomID.String(),
		RoomTitle:    r.RoomTitle,
		DealerID:     r.DealerID.String(),
		StudentID:    r.StudentID.String(),
		StudentName:  r.StudentName,
		StudentEmail: r.StudentEmail,
		Rent:         r.Rent,
		Deposit:      r.Deposit,
		Status:       r.Status,
		MoveInDate:   r.MoveInDate,
		Message:      deref(r.Message),
	}
}

// NewOrderRow snapshots the listing's title, rent, deposit and owner into a
// pending order for student
func NewOrderRow(listing *ListingRow, studentID uuid.UUID, student models.User, moveInDate, message string) *OrderRow {
	return &OrderRow{
		RoomID:       listing.ID,
		RoomTitle:    listing.ListingTitle,
		DealerID:     listing.OwnerID,
		StudentID:    studentID,
		StudentName:  student.Name,
		StudentEmail: student.Email,
		Rent:         listing.MonthlyRent,
		Deposit:      listing.SecurityDeposit,
		Status:       models.OrderStatusPending,
		MoveInDate:   moveInDate,
		Message:      optional(message),
	}
}
