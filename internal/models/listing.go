package models

import "time"

// RoomType is the kind of accommodation a listing offers
type RoomType string

const (
	RoomTypeSingle  RoomType = "Single"
	RoomTypeSharing RoomType = "Sharing"
	RoomTypePG      RoomType = "PG"
)

// Valid reports whether t is one of the known room types
func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeSingle, RoomTypeSharing, RoomTypePG:
		return true
	}
	return false
}

// GenderPref is the tenant gender a listing accepts
type GenderPref string

const (
	GenderGirls GenderPref = "Girls"
	GenderBoys  GenderPref = "Boys"
	GenderCoed  GenderPref = "Co-ed"
)

// Valid reports whether g is one of the known preferences
func (g GenderPref) Valid() bool {
	switch g {
	case GenderGirls, GenderBoys, GenderCoed:
		return true
	}
	return false
}

// SafetyStats summarises the neighbourhood around a listing
type SafetyStats struct {
	Rating          float64 `json:"rating"` // 0-5
	PoliceProximity string  `json:"policeProximity"`
	Lighting        string  `json:"lighting"`
}

// Review is a student's review of a listing
type Review struct {
	StudentName string  `json:"studentName"`
	Rating      float64 `json:"rating"`
	Comment     string  `json:"comment"`
	Date        string  `json:"date"`
}

// Coordinates is a geographic point
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Listing represents a room offered by a dealer
type Listing struct {
	ID               string      `json:"id"`
	Title            string      `json:"title"`
	Type             RoomType    `json:"type"`
	Rent             int         `json:"rent"`
	Deposit          int         `json:"deposit"`
	Location         string      `json:"location"`
	State            string      `json:"state"`
	City             string      `json:"city"`
	CollegeName      string      `json:"collegeName"`
	Distance         float64     `json:"distance"` // km from college
	Photos           []string    `json:"photos"`
	IsVerified       bool        `json:"isVerified"`
	IsFeatured       bool        `json:"isFeatured"`
	Amenities        []string    `json:"amenities"`
	Furnished        bool        `json:"furnished"`
	AttachedBathroom bool        `json:"attachedBathroom"`
	AC               bool        `json:"ac"`
	GenderPref       GenderPref  `json:"genderPref"`
	AvailableFrom    string      `json:"availableFrom"`
	Rules            []string    `json:"rules"`
	OwnerID          string      `json:"ownerId"`
	OwnerName        string      `json:"ownerName"`
	OwnerPhone       string      `json:"ownerPhone"`
	Safety           SafetyStats `json:"safety"`
	Reviews          []Review    `json:"reviews"`
	Coordinates      Coordinates `json:"coordinates"`
	CreatedAt        time.Time   `json:"createdAt"`
}

// CreateListingRequest is a dealer's listing submission
type CreateListingRequest struct {
	Title            string      `json:"title"`
	Type             RoomType    `json:"type"`
	Rent             int         `json:"rent"`
	Deposit          int         `json:"deposit"`
	State            string      `json:"state"`
	City             string      `json:"city"`
	CollegeName      string      `json:"collegeName"`
	GenderPref       GenderPref  `json:"genderPref"`
	Furnished        bool        `json:"furnished"`
	AC               bool        `json:"ac"`
	AttachedBathroom bool        `json:"attachedBathroom"`
	Amenities        []string    `json:"amenities"`
	Rules            []string    `json:"rules"`
	AvailableFrom    string      `json:"availableFrom"`
	OwnerPhone       string      `json:"ownerPhone"`
	BedroomPhoto     string      `json:"bedroomPhoto"`
	KitchenPhoto     string      `json:"kitchenPhoto"`
	BathroomPhoto    string      `json:"bathroomPhoto"`
	Coordinates      Coordinates `json:"coordinates"`
}
