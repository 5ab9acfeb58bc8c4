package date

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRange(t *testing.T) {
	d := New(2025, time.September, 10) // a Wednesday

	tests := []struct {
		period Period
		want   Range
	}{
		{Daily, Range{From: d, To: d}},
		{Weekly, Range{From: New(2025, time.September, 8), To: New(2025, time.September, 14)}},
		{Monthly, Range{From: New(2025, time.September, 1), To: New(2025, time.September, 30)}},
		{Quarterly, Range{From: New(2025, time.July, 1), To: New(2025, time.September, 30)}},
		{Yearly, Range{From: New(2025, time.January, 1), To: New(2025, time.December, 31)}},
	}
	for _, tc := range tests {
		t.Run(tc.period.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, NewRange(d, tc.period))
		})
	}
}

func TestStartOfWeek_Sunday(t *testing.T) {
	sunday := New(2025, time.September, 14)
	assert.Equal(t, New(2025, time.September, 8), sunday.StartOf(Weekly))
}

func TestParsePeriod(t *testing.T) {
	for _, s := range []string{"day", "Daily", "week", "month", "quarter", "year"} {
		_, err := ParsePeriod(s)
		require.NoError(t, err, s)
	}
	_, err := ParsePeriod("fortnight")
	assert.Error(t, err)
}

func TestPeriodText(t *testing.T) {
	for _, p := range Periods() {
		text, err := p.MarshalText()
		require.NoError(t, err)
		var got Period
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, p, got)
	}
	assert.Equal(t, "week", Weekly.Noun())
	assert.Equal(t, "quarterly", Quarterly.String())

	var p Period
	assert.Error(t, p.UnmarshalText([]byte("fortnight")))
}
