package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFirstOfNextMonth(t *testing.T) {
	testCases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"mid month", date(2025, time.March, 15), date(2025, time.April, 1)},
		{"first of month still moves forward", date(2025, time.March, 1), date(2025, time.April, 1)},
		{"december rolls the year", date(2024, time.December, 31), date(2025, time.January, 1)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FirstOfNextMonth(tc.in))
		})
	}
}

func TestAddMonths(t *testing.T) {
	testCases := []struct {
		name   string
		in     time.Time
		months int
		want   time.Time
	}{
		{"plain year", date(2024, time.January, 1), 12, date(2025, time.January, 1)},
		{"crosses year boundary", date(2024, time.June, 1), 12, date(2025, time.June, 1)},
		{"jan 31 clamps to leap february", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"jan 31 clamps to non-leap february", date(2025, time.January, 31), 1, date(2025, time.February, 28)},
		{"month end rolls through leap year", date(2024, time.February, 29), 12, date(2025, time.February, 28)},
		{"31st into 30-day month", date(2025, time.March, 31), 1, date(2025, time.April, 30)},
		{"december plus one", date(2025, time.December, 15), 1, date(2026, time.January, 15)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AddMonths(tc.in, tc.months))
		})
	}
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2025, time.August, 29, 17, 45, 12, 999, time.UTC)
	assert.Equal(t, date(2025, time.August, 29), DateOnly(in))
}
