package carelogs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validLog() CareLog {
	return CareLog{Timestamp: 1710064800000, Actions: Actions{Food: true}, Author: "owner-a"}
}

func TestValidate(t *testing.T) {
	neg := -1.0
	zero := 0.0

	cases := []struct {
		name string
		mod  func(*CareLog)
		want error
	}{
		{"ok", func(l *CareLog) {}, nil},
		{"no actions", func(l *CareLog) { l.Actions = Actions{} }, ErrNoAction},
		{"weight only", func(l *CareLog) { w := 4.0; l.Actions = Actions{}; l.Weight = &w }, ErrNoAction},
		{"no author", func(l *CareLog) { l.Author = " " }, ErrInvalidInput},
		{"no timestamp", func(l *CareLog) { l.Timestamp = 0 }, ErrInvalidInput},
		{"negative weight", func(l *CareLog) { l.Weight = &neg }, ErrInvalidInput},
		{"zero weight", func(l *CareLog) { l.Weight = &zero }, ErrInvalidInput},
		{"bad stool", func(l *CareLog) { l.Actions.Litter = true; l.StoolType = "SOFT" }, ErrInvalidInput},
		{"clean and stool", func(l *CareLog) {
			l.Actions.Litter = true
			l.IsLitterClean = true
			l.StoolType = StoolFormed
		}, ErrLitterConflict},
		{"clean and urine", func(l *CareLog) {
			l.Actions.Litter = true
			l.IsLitterClean = true
			l.UrineStatus = UrinePresent
		}, ErrLitterConflict},
		{"details without litter", func(l *CareLog) { l.UrineStatus = UrineAbsent }, ErrInvalidInput},
		{"observation ok", func(l *CareLog) {
			l.Actions.Litter = true
			l.StoolType = StoolDiarrhea
			l.UrineStatus = UrinePresent
		}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := validLog()
			tc.mod(&l)
			err := Validate(l)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestNormalize_DropsLitterDetailsWithoutLitter(t *testing.T) {
	l := validLog()
	l.IsLitterClean = true
	l.StoolType = StoolFormed
	l.Author = "  owner-a "

	n := Normalize(l)

	assert.False(t, n.IsLitterClean)
	assert.Empty(t, n.StoolType)
	assert.Equal(t, "owner-a", n.Author)
	assert.NoError(t, Validate(n))
}

func TestLitterBadges(t *testing.T) {
	clean := CareLog{Actions: Actions{Litter: true}, IsLitterClean: true}
	assert.Equal(t, []Badge{BadgeClean}, LitterBadges(clean))

	observed := CareLog{Actions: Actions{Litter: true}, StoolType: StoolUnformed, UrineStatus: UrineAbsent}
	assert.Equal(t, []Badge{BadgeNoUrine, BadgeUnformed}, LitterBadges(observed))

	assert.Nil(t, LitterBadges(CareLog{Actions: Actions{Food: true}}))
}
