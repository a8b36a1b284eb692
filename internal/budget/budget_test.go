package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	tests := []struct {
		name     string
		income   int
		expenses int
		expected Suggestion
	}{
		{
			name:     "calculator defaults",
			income:   15000,
			expenses: 5000,
			expected: Suggestion{Income: 15000, Expenses: 5000, Surplus: 10000, SuggestedRent: 4000, RangeLow: 3200, RangeHigh: 4800, Savings: 6000},
		},
		{
			name:     "fractional share is floored",
			income:   1003,
			expenses: 0,
			expected: Suggestion{Income: 1003, Surplus: 1003, SuggestedRent: 401, RangeLow: 321, RangeHigh: 481, Savings: 602},
		},
		{
			name:     "expenses above income",
			income:   4000,
			expenses: 6000,
			expected: Suggestion{Income: 4000, Expenses: 6000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Suggest(tt.income, tt.expenses))
		})
	}
}
