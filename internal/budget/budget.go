// Package budget suggests how much of a student's monthly surplus to spend on rent.
package budget

import "math"

// RentShare is the part of the monthly surplus suggested for rent
const RentShare = 0.4

// Suggestion is the calculator output, all amounts in INR per month
type Suggestion struct {
	Income        int `json:"income"`
	Expenses      int `json:"expenses"`
	Surplus       int `json:"surplus"`
	SuggestedRent int `json:"suggestedRent"`
	RangeLow      int `json:"rangeLow"`
	RangeHigh     int `json:"rangeHigh"`
	Savings       int `json:"savings"`
}

// Suggest splits income minus living expenses into suggested rent and savings.
// Negative surplus is treated as zero.
func Suggest(income, expenses int) Suggestion {
	surplus := max(0, income-expenses)
	rent := int(math.Floor(float64(surplus) * RentShare))

	return Suggestion{
		Income:        income,
		Expenses:      expenses,
		Surplus:       surplus,
		SuggestedRent: rent,
		RangeLow:      int(math.Round(float64(rent) * 0.8)),
		RangeHigh:     int(math.Round(float64(rent) * 1.2)),
		Savings:       max(0, surplus-rent),
	}
}
