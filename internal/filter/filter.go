// Package filter selects the listings a student sees.
//
// Every function here is a stable filter: the result is a subsequence of the
// input in its original order, and nothing is copied or invented.
package filter

import (
	"math"
	"strings"

	"github.com/Rohit6800/UniStay/internal/models"
)

const (
	// TypeAny is the room type wildcard
	TypeAny models.RoomType = "Any"

	DefaultMinBudget = 0
	DefaultMaxBudget = 20000

	// MaxIntentBudget caps a model-supplied budget before it becomes an int
	MaxIntentBudget = math.MaxInt32
)

// Criteria is the set of active search filters
type Criteria struct {
	Query     string          `json:"query,omitempty"`
	State     string          `json:"state,omitempty"`
	City      string          `json:"city,omitempty"`
	College   string          `json:"college,omitempty"`
	Type      models.RoomType `json:"type"`
	Gender    string          `json:"gender,omitempty"`
	MinBudget int             `json:"minBudget"`
	MaxBudget int             `json:"maxBudget"`
	// WishlistOnly ignores every other criterion and keeps saved listings
	WishlistOnly bool `json:"wishlistOnly,omitempty"`
}

// DefaultCriteria matches every listing with rent in [0, 20000]
func DefaultCriteria() Criteria {
	return Criteria{
		Type:      TypeAny,
		MinBudget: DefaultMinBudget,
		MaxBudget: DefaultMaxBudget,
	}
}

// Saved answers wishlist membership
type Saved interface {
	Contains(id string) bool
}

// Apply returns the listings that satisfy every active criterion.
// saved may be nil, in which case wishlist mode returns nothing.
func Apply(listings []models.Listing, c Criteria, saved Saved) []models.Listing {
	out := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if c.WishlistOnly {
			if saved != nil && saved.Contains(l.ID) {
				out = append(out, l)
			}
			continue
		}
		if c.Matches(l) {
			out = append(out, l)
		}
	}
	return out
}

// Matches reports whether a single listing passes the non-wishlist criteria
func (c Criteria) Matches(l models.Listing) bool {
	return matchesQuery(l, c.Query) &&
		matchesExact(l.State, c.State) &&
		matchesExact(l.City, c.City) &&
		matchesExact(l.CollegeName, c.College) &&
		matchesType(l.Type, c.Type) &&
		matchesExact(string(l.GenderPref), c.Gender) &&
		l.Rent >= c.MinBudget && l.Rent <= c.MaxBudget
}

func matchesQuery(l models.Listing, q string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(l.Title), q) ||
		strings.Contains(strings.ToLower(l.Location), q)
}

// unset criteria are wildcards
func matchesExact(value, want string) bool {
	return want == "" || value == want
}

func matchesType(t, want models.RoomType) bool {
	return want == "" || want == TypeAny || t == want
}

// Tab is a quick filter on the home page
type Tab string

const (
	TabAll   Tab = "All"
	TabGirls Tab = "Girls"
	TabBoys  Tab = "Boys"
	TabAC    Tab = "AC"
)

// ByTab applies a home page quick filter. Unknown tabs keep everything.
func ByTab(listings []models.Listing, tab Tab) []models.Listing {
	out := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		switch tab {
		case TabGirls:
			if l.GenderPref != models.GenderGirls {
				continue
			}
		case TabBoys:
			if l.GenderPref != models.GenderBoys {
				continue
			}
		case TabAC:
			if !l.AC {
				continue
			}
		}
		out = append(out, l)
	}
	return out
}

// ApplyIntent folds a parsed search intent into c. The intent is advisory:
// values that do not map onto a known criterion are dropped.
func ApplyIntent(c Criteria, intent *models.SearchIntent) Criteria {
	if intent == nil {
		return c
	}
	if intent.Budget != nil && *intent.Budget > 0 {
		c.MaxBudget = int(math.Min(*intent.Budget, MaxIntentBudget))
	}
	if intent.RoomType != nil {
		if t := normalizeRoomType(*intent.RoomType); t.Valid() {
			c.Type = t
		}
	}
	if intent.GenderPref != nil {
		if g := normalizeGender(*intent.GenderPref); g.Valid() {
			c.Gender = string(g)
		}
	}
	if intent.Location != nil {
		c.Query = strings.TrimSpace(*intent.Location)
	}
	return c
}

func normalizeRoomType(s string) models.RoomType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single":
		return models.RoomTypeSingle
	case "sharing":
		return models.RoomTypeSharing
	case "pg":
		return models.RoomTypePG
	}
	return ""
}

func normalizeGender(s string) models.GenderPref {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "girls":
		return models.GenderGirls
	case "boys":
		return models.GenderBoys
	case "co-ed", "coed":
		return models.GenderCoed
	}
	return ""
}
