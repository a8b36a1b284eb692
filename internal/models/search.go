package models

// SearchIntent is the advisory result of parsing a free-text room query.
// Every field is optional.
type SearchIntent struct {
	Budget     *float64 `json:"budget,omitempty"`
	RoomType   *string  `json:"roomType,omitempty"`
	GenderPref *string  `json:"genderPref,omitempty"`
	Location   *string  `json:"location,omitempty"`
}
