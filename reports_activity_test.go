package t212

import (
	"testing"
	"time"

	"github.com/etnz/t212/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBook_Daily_Sample(t *testing.T) {
	days := sampleBook().Daily(All)
	require.Len(t, days, 1)
	assert.Equal(t, date.New(2025, 10, 20), days[0].Range.From)
	assert.Equal(t, 18, days[0].Trades)
	assert.True(t, sampleTotal.Equal(days[0].Cost), "cost %v", days[0].Cost)
}

func TestBook_Activity(t *testing.T) {
	b := NewBook([]Order{
		filled(1, "AAPL_US_EQ", "2025-02-03T10:00:00Z", "5", "0.02", "250"),
		filled(2, "AAPL_US_EQ", "2025-01-05T10:00:00Z", "10", "0.04", "250"),
		filled(3, "MSFT_US_EQ", "2025-01-06T10:00:00Z", "20", "0.04", "500"),
		cancelled(4, "MSFT_US_EQ", "2025-03-06T10:00:00Z", "20"),
	}, nil)

	daily := b.Daily(All)
	require.Len(t, daily, 3)
	assert.Equal(t, "2025-01-05", daily[0].Range.Identifier())
	assert.Equal(t, "2025-01-06", daily[1].Range.Identifier())
	assert.Equal(t, "2025-02-03", daily[2].Range.Identifier())

	weekly := b.Activity(All, date.Weekly)
	require.Len(t, weekly, 3)
	assert.Equal(t, date.New(2024, 12, 30), weekly[0].Range.From, "weeks start on monday")
	assert.Equal(t, date.New(2025, 1, 6), weekly[1].Range.From)

	monthly := b.Activity(All, date.Monthly)
	require.Len(t, monthly, 2)
	assert.Equal(t, "2025-01", monthly[0].Range.Identifier())
	assert.Equal(t, 2, monthly[0].Trades)
	assert.True(t, monthly[0].Cost.Equal(M(30)))
	assert.Equal(t, "2025-02", monthly[1].Range.Identifier())
	assert.Equal(t, 1, monthly[1].Trades)

	assert.Empty(t, b.Activity(All.Only(), date.Monthly))
}

func TestBook_Hourly(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	orders, err := SampleSource{}.Orders(t.Context())
	require.NoError(t, err)

	hours := NewBook(orders, time.UTC).Hourly(All)
	require.Len(t, hours, 1)
	assert.Equal(t, 13, hours[0].Hour)
	assert.Equal(t, 18, hours[0].Trades)

	hours = NewBook(orders, newYork).Hourly(All)
	require.Len(t, hours, 1)
	assert.Equal(t, 9, hours[0].Hour)

	b := NewBook([]Order{
		filled(1, "AAPL_US_EQ", "2025-01-05T22:10:00Z", "5", "0.02", "250"),
		filled(2, "AAPL_US_EQ", "2025-01-06T08:00:00Z", "10", "0.04", "250"),
		filled(3, "MSFT_US_EQ", "2025-01-07T08:59:59Z", "20", "0.04", "500"),
	}, nil)
	hours = b.Hourly(All)
	require.Len(t, hours, 2)
	assert.Equal(t, 8, hours[0].Hour)
	assert.Equal(t, 2, hours[0].Trades)
	assert.True(t, hours[0].Cost.Equal(M(30)))
	assert.Equal(t, 22, hours[1].Hour)
}

func TestBook_Cumulative(t *testing.T) {
	b := NewBook([]Order{
		filled(1, "AAPL_US_EQ", "2025-01-03T10:00:00Z", "5", "0.02", "250"),
		filled(2, "AAPL_US_EQ", "2025-01-01T10:00:00Z", "10", "0.04", "250"),
		filled(3, "MSFT_US_EQ", "2025-01-02T10:00:00Z", "20", "0.04", "500"),
	}, nil)

	points := b.Cumulative(All)
	require.Len(t, points, 3)
	assert.Equal(t, []int64{2, 3, 1}, []int64{points[0].OrderID, points[1].OrderID, points[2].OrderID})
	assert.True(t, points[0].Cumulative.Equal(M(10)))
	assert.True(t, points[1].Cumulative.Equal(M(30)))
	assert.True(t, points[2].Cumulative.Equal(M(35)))
}

func TestBook_Cumulative_Sample(t *testing.T) {
	points := sampleBook().Cumulative(All)
	require.Len(t, points, 18)
	for i := 1; i < len(points); i++ {
		assert.False(t, points[i].Cumulative.LessThan(points[i-1].Cumulative), "curve decreases at %d", i)
		assert.False(t, points[i].Time.Before(points[i-1].Time), "curve not chronological at %d", i)
	}
	assert.True(t, sampleTotal.Equal(points[len(points)-1].Cumulative))

	assert.Empty(t, sampleBook().Cumulative(All.Only()))
}
