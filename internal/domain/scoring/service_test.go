package scoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-care-log/internal/domain/carelogs"
	"pet-care-log/internal/domain/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLogs struct {
	items []carelogs.CareLog
	err   error
}

func (s stubLogs) All(ctx context.Context) ([]carelogs.CareLog, error) {
	return s.items, s.err
}

type stubOwners []settings.Owner

func (s stubOwners) Owners(ctx context.Context) ([]settings.Owner, error) {
	return s, nil
}

func TestService_WeeklyAndAllTime(t *testing.T) {
	logs := stubLogs{items: []carelogs.CareLog{
		{ID: "1", Timestamp: ts(0, 8, 0), Actions: carelogs.Actions{Grooming: true}, Author: "a"},
		{ID: "2", Timestamp: ts(1, 8, 0), Actions: carelogs.Actions{Grooming: true}, Author: "b"},
		{ID: "3", Timestamp: ts(20, 8, 0), Actions: carelogs.Actions{Food: true}, Author: "b"},
	}}
	svc := NewService(logs, stubOwners(owners), now.Location())
	svc.now = func() time.Time { return now }

	wk, err := svc.Weekly(context.Background())
	require.NoError(t, err)
	assert.Len(t, wk.Days, WeekDays)
	assert.Equal(t, RankTie, wk.Ranking.Kind)

	at, err := svc.AllTime(context.Background())
	require.NoError(t, err)
	assert.Equal(t, RankWinner, at.Ranking.Kind)
	assert.Equal(t, []settings.Owner{ownerB}, at.Ranking.Leaders)
	assert.Equal(t, 5, at.Ranking.Points)
}

func TestService_PropagatesGatewayError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(stubLogs{err: boom}, stubOwners(owners), nil)

	_, err := svc.Weekly(context.Background())
	assert.ErrorIs(t, err, boom)
}
