package date

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRange_Contains(t *testing.T) {
	from, to := New(2025, 1, 10), New(2025, 1, 20)

	tests := []struct {
		name string
		r    Range
		d    Date
		want bool
	}{
		{"lower bound included", Between(from, to), from, true},
		{"upper bound included", Between(from, to), to, true},
		{"inside", Between(from, to), New(2025, 1, 15), true},
		{"before", Between(from, to), from.Add(-1), false},
		{"after", Between(from, to), to.Add(1), false},
		{"unbounded", Range{}, New(1990, 1, 1), true},
		{"open ended after", Range{From: from}, New(2099, 1, 1), true},
		{"open ended before", Range{To: to}, New(1990, 1, 1), true},
		{"open ended rejects", Range{To: to}, to.Add(1), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.r.Contains(tc.d))
		})
	}
}

func TestRange_Days(t *testing.T) {
	assert.Equal(t, 1, Between(New(2025, 1, 1), New(2025, 1, 1)).Days())
	assert.Equal(t, 31, Between(New(2025, 1, 1), New(2025, 1, 31)).Days())
	assert.Equal(t, 0, Range{}.Days())
	assert.Equal(t, 0, Between(New(2025, 1, 2), New(2025, 1, 1)).Days())
}

func TestRange_Validate(t *testing.T) {
	assert.NoError(t, Range{}.Validate())
	assert.NoError(t, Between(New(2025, 1, 1), New(2025, 1, 1)).Validate())
	assert.Error(t, Between(New(2025, 1, 2), New(2025, 1, 1)).Validate())
}

func TestRange_Identifier(t *testing.T) {
	tests := []struct {
		r    Range
		want string
	}{
		{NewRange(New(2025, time.September, 8), Daily), "2025-09-08"},
		{NewRange(New(2025, time.September, 10), Weekly), "2025-W37"},
		{NewRange(New(2025, time.September, 10), Monthly), "2025-09"},
		{NewRange(New(2025, time.September, 10), Quarterly), "2025-Q3"},
		{NewRange(New(2025, time.September, 10), Yearly), "2025"},
		{Between(New(2025, 1, 2), New(2025, 1, 5)), "2025-01-02_2025-01-05"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.r.Identifier())
	}
}
