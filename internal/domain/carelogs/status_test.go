package carelogs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func logAt(ts time.Time, a Actions) CareLog {
	return CareLog{ID: ts.Format(time.RFC3339Nano), Timestamp: ts.UnixMilli(), Actions: a, Author: "owner-a"}
}

func TestTodayStatus_Empty(t *testing.T) {
	now := at(time.UTC, 12, 0)

	assert.Equal(t, EmptyDayStatus(), TodayStatus(nil, now))
}

func TestTodayStatus_SingleFoodMorning(t *testing.T) {
	now := at(time.UTC, 12, 0)
	logs := []CareLog{logAt(at(time.UTC, 8, 0), Actions{Food: true})}

	s := TodayStatus(logs, now)

	assert.Equal(t, TaskProgress{Morning: true}, s.Food)
	assert.Equal(t, TaskProgress{}, s.Water)
	assert.Equal(t, TaskProgress{}, s.Litter)
	assert.Equal(t, TaskProgress{}, s.Weight)
}

func TestTodayStatus_CompleteWhenAllPeriodsCovered(t *testing.T) {
	now := at(time.UTC, 23, 30)
	logs := []CareLog{
		logAt(at(time.UTC, 7, 0), Actions{Water: true}),
		logAt(at(time.UTC, 12, 0), Actions{Water: true}),
		logAt(at(time.UTC, 17, 0), Actions{Water: true, Food: true}),
		logAt(at(time.UTC, 22, 0), Actions{Water: true}),
	}

	s := TodayStatus(logs, now)

	assert.True(t, s.Water.IsComplete)
	assert.Equal(t, TaskProgress{Morning: true, Noon: true, Evening: true, Bedtime: true, IsComplete: true}, s.Water)
	assert.False(t, s.Food.IsComplete)
	assert.True(t, s.Food.Evening)
}

func TestTodayStatus_SamePeriodTwiceIsIdempotent(t *testing.T) {
	now := at(time.UTC, 12, 0)
	one := []CareLog{logAt(at(time.UTC, 8, 0), Actions{Litter: true})}
	two := append(one, logAt(at(time.UTC, 9, 30), Actions{Litter: true}))

	assert.Equal(t, TodayStatus(one, now), TodayStatus(two, now))
}

func TestTodayStatus_IgnoresOtherDays(t *testing.T) {
	now := at(time.UTC, 12, 0)
	logs := []CareLog{
		logAt(at(time.UTC, 0, 0).Add(-time.Millisecond), Actions{Food: true}),
		logAt(at(time.UTC, 0, 0).AddDate(0, 0, 1), Actions{Food: true}),
	}

	assert.Equal(t, EmptyDayStatus(), TodayStatus(logs, now))

	// límite inferior cerrado
	logs = append(logs, logAt(at(time.UTC, 0, 0), Actions{Food: true}))
	assert.True(t, TodayStatus(logs, now).Food.Morning)
}

func TestTodayStatus_UsesNowLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	// 02:00 UTC del 11 = 21:00 local del 10
	ts := time.Date(2024, time.March, 11, 2, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.March, 10, 22, 0, 0, 0, loc)

	s := TodayStatus([]CareLog{logAt(ts, Actions{Grooming: true})}, now)

	assert.Equal(t, TaskProgress{Bedtime: true}, s.Grooming)
}

func TestTodayStatus_WeightCountsByPresence(t *testing.T) {
	now := at(time.UTC, 18, 0)
	w := 4.2
	l := logAt(at(time.UTC, 17, 0), Actions{Medication: true})
	l.Weight = &w

	s := TodayStatus([]CareLog{l}, now)

	assert.True(t, s.Weight.Evening)
	assert.True(t, s.Medication.Evening)
	assert.Equal(t, s.Weight, s.Progress(CategoryWeight))
}

func TestTaskProgress_Done(t *testing.T) {
	p := TaskProgress{Noon: true}

	assert.True(t, p.Done(PeriodNoon))
	assert.False(t, p.Done(PeriodMorning))
	assert.False(t, p.Done(Period("midnight")))
}

func TestCategoriesOf(t *testing.T) {
	w := 1.0
	l := CareLog{Actions: Actions{Food: true, Litter: true}, Weight: &w}

	assert.Equal(t, []Category{CategoryFood, CategoryLitter, CategoryWeight}, CategoriesOf(l))
}
