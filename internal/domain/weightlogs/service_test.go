package weightlogs

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	byID map[string]WeightLog
	seq  int
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]WeightLog{}}
}

func (r *testRepo) List(ctx context.Context) ([]WeightLog, error) {
	out := make([]WeightLog, 0, len(r.byID))
	for _, w := range r.byID {
		out = append(out, w)
	}
	return out, nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (WeightLog, error) {
	w, ok := r.byID[id]
	if !ok {
		return WeightLog{}, ErrNotFound
	}
	return w, nil
}

func (r *testRepo) Create(ctx context.Context, w WeightLog) (WeightLog, error) {
	r.seq++
	w.ID = fmt.Sprintf("w-%d", r.seq)
	r.byID[w.ID] = w
	return w, nil
}

func (r *testRepo) Update(ctx context.Context, w WeightLog) error {
	if _, ok := r.byID[w.ID]; !ok {
		return ErrNotFound
	}
	r.byID[w.ID] = w
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type owners map[string]bool

func (o owners) HasOwner(ctx context.Context, id string) (bool, error) {
	return o[id], nil
}

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo, owners{"a": true})
	svc.now = func() time.Time { return time.UnixMilli(5_000) }
	return svc, repo
}

func TestCreate_Validation(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Create(context.Background(), Input{Weight: 0, Author: "a"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), Input{Weight: -2, Author: "a"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), Input{Weight: 4, Author: "ghost"})
	assert.ErrorIs(t, err, ErrUnknownAuthor)

	// el autor es obligatorio al crear
	_, err = svc.Create(context.Background(), Input{Weight: 4})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Empty(t, repo.byID)
}

func TestLatest(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Latest(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Create(context.Background(), Input{Timestamp: 1_000, Weight: 4.1, Author: "a"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), Input{Timestamp: 3_000, Weight: 4.3, Author: "a"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), Input{Timestamp: 2_000, Weight: 4.2, Author: "a"})
	require.NoError(t, err)

	latest, err := svc.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4.3, latest.Weight)

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, int64(1_000), items[2].Timestamp)
}

func TestUpdateAndDelete(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.Create(context.Background(), Input{Weight: 4, Author: "a"})
	require.NoError(t, err)
	assert.Equal(t, int64(5_000), created.Timestamp)

	updated, err := svc.Update(context.Background(), created.ID, Input{Weight: 4.4, Author: "a"})
	require.NoError(t, err)
	assert.Equal(t, created.Timestamp, updated.Timestamp)
	assert.Equal(t, 4.4, repo.byID[created.ID].Weight)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID), ErrNotFound)

	_, err = svc.Update(context.Background(), "missing", Input{Weight: 1, Author: "a"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_EmptyAuthorKeepsStored(t *testing.T) {
	svc, repo := newTestService()
	// dueño ya eliminado del hogar
	repo.byID["w-old"] = WeightLog{ID: "w-old", Timestamp: 1_000, Weight: 4, Author: "gone"}

	updated, err := svc.Update(context.Background(), "w-old", Input{Weight: 4.2})
	require.NoError(t, err)

	assert.Equal(t, "gone", updated.Author)
	assert.Equal(t, "gone", repo.byID["w-old"].Author)
	assert.Equal(t, int64(1_000), updated.Timestamp)
}
