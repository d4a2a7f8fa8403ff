package carelogs

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func at(loc *time.Location, h, m int) time.Time {
	return time.Date(2024, time.March, 10, h, m, 0, 0, loc)
}

func TestPeriodOf_Boundaries(t *testing.T) {
	cases := []struct {
		h, m int
		want Period
	}{
		{0, 0, PeriodMorning},
		{10, 59, PeriodMorning},
		{11, 0, PeriodNoon},
		{15, 59, PeriodNoon},
		{16, 0, PeriodEvening},
		{20, 59, PeriodEvening},
		{21, 0, PeriodBedtime},
		{23, 59, PeriodBedtime},
	}

	for _, tc := range cases {
		got := PeriodOf(at(time.UTC, tc.h, tc.m))
		assert.Equal(t, tc.want, got, "%02d:%02d", tc.h, tc.m)
	}
}

func TestPeriodAt_UsesLocation(t *testing.T) {
	// 2024-03-10T14:30:00Z
	ms := time.Date(2024, time.March, 10, 14, 30, 0, 0, time.UTC).UnixMilli()

	assert.Equal(t, PeriodNoon, PeriodAt(ms, time.UTC))

	// UTC-5: 09:30 local
	lima := time.FixedZone("UTC-5", -5*3600)
	assert.Equal(t, PeriodMorning, PeriodAt(ms, lima))

	// UTC+9: 23:30 local
	tokyo := time.FixedZone("UTC+9", 9*3600)
	assert.Equal(t, PeriodBedtime, PeriodAt(ms, tokyo))
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*3600)
	got := StartOfDay(time.Date(2024, time.March, 10, 23, 15, 7, 99, loc))

	assert.Equal(t, time.Date(2024, time.March, 10, 0, 0, 0, 0, loc), got)
}

// Todo instante cae en exactamente un tramo y los tramos siguen el orden del reloj.
func TestPeriodOf_PartitionProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("every minute of the day maps to one ordered period", prop.ForAll(
		func(minute int) bool {
			tm := at(time.UTC, minute/60, minute%60)
			p := PeriodOf(tm)

			matches := 0
			for _, candidate := range Periods {
				if candidate == p {
					matches++
				}
			}
			if matches != 1 {
				return false
			}

			if minute == 0 {
				return true
			}
			prev := PeriodOf(tm.Add(-time.Minute))
			return periodIndex(prev) <= periodIndex(p)
		},
		gen.IntRange(0, 24*60-1),
	))

	properties.TestingRun(t)
}

func periodIndex(p Period) int {
	for i, c := range Periods {
		if c == p {
			return i
		}
	}
	return -1
}
