package date

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
	// tests also checks that the property remain true
	assert.Equal(t, d1.time(), d2.time())
}

func TestOf(t *testing.T) {
	ts := time.Date(2025, time.October, 20, 23, 30, 0, 0, time.UTC)
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	tests := []struct {
		name string
		loc  *time.Location
		want Date
	}{
		{"nil is UTC", nil, New(2025, time.October, 20)},
		{"UTC", time.UTC, New(2025, time.October, 20)},
		{"Tokyo is already tomorrow", tokyo, New(2025, time.October, 21)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Of(ts, tc.loc))
		})
	}
}

func TestParse(t *testing.T) {
	d, err := Parse("2025-7-1")
	require.NoError(t, err)
	assert.Equal(t, New(2025, time.July, 1), d)
	assert.Equal(t, "2025-07-01", d.String())

	_, err = Parse("01/07/2025")
	assert.Error(t, err)
}

func TestDate_Sub(t *testing.T) {
	assert.Equal(t, 0, New(2025, 3, 1).Sub(New(2025, 3, 1)))
	assert.Equal(t, 1, New(2025, 3, 1).Sub(New(2025, 2, 28)))
	// across a DST change in most zones: dates are zone free.
	assert.Equal(t, 31, New(2025, 4, 1).Sub(New(2025, 3, 1)))
}

func TestDate_JSON(t *testing.T) {
	b, err := json.Marshal(New(2024, 8, 3))
	require.NoError(t, err)
	assert.Equal(t, `"2024-08-03"`, string(b))

	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-8-3"`), &d))
	assert.Equal(t, New(2024, 8, 3), d)

	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())
}
