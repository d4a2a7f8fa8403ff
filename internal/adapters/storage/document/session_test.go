package document

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pet-care-log/internal/adapters/storage/memory"
	"pet-care-log/internal/domain/carelogs"
	"pet-care-log/internal/domain/settings"
	"pet-care-log/internal/domain/weightlogs"
	"pet-care-log/internal/ports/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore cuenta llamadas y permite inyectar errores.
type countingStore struct {
	mu      sync.Mutex
	inner   *memory.Store
	loads   int
	saves   int
	loadErr error
	saveErr error
}

func newCountingStore() *countingStore {
	return &countingStore{inner: memory.NewStore()}
}

func (s *countingStore) Load(ctx context.Context, name string) ([]byte, error) {
	s.mu.Lock()
	s.loads++
	err := s.loadErr
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.inner.Load(ctx, name)
}

func (s *countingStore) Save(ctx context.Context, name string, body []byte) error {
	s.mu.Lock()
	s.saves++
	err := s.saveErr
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.inner.Save(ctx, name, body)
}

type recordingObserver struct {
	ops    []string
	resets int
}

func (o *recordingObserver) ObserveGatewayOp(document, op string, err error, d time.Duration) {
	o.ops = append(o.ops, document+":"+op)
}

func (o *recordingObserver) SessionReset() { o.resets++ }

func TestCareLogs_CRUD(t *testing.T) {
	ctx := context.Background()
	sess := NewSession(newCountingStore(), Options{})
	repo := sess.CareLogs()

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	created, err := repo.Create(ctx, carelogs.CareLog{Timestamp: 10, Actions: carelogs.Actions{Food: true}, Author: "a"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	created.Note = "edited"
	require.NoError(t, repo.Update(ctx, created))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Note)

	assert.ErrorIs(t, repo.Update(ctx, carelogs.CareLog{ID: "missing"}), carelogs.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "missing"), carelogs.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, carelogs.ErrNotFound)
}

func TestCareLogs_ListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewSession(newCountingStore(), Options{}).CareLogs()
	_, err := repo.Create(ctx, carelogs.CareLog{Timestamp: 1, Actions: carelogs.Actions{Food: true}, Author: "a"})
	require.NoError(t, err)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	items[0].Author = "mutated"

	again, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", again[0].Author)
}

func TestCache_ReadsHitBackendOnce(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	repo := NewSession(store, Options{}).CareLogs()

	for i := 0; i < 3; i++ {
		_, err := repo.List(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, store.loads)
}

func TestFailedSaveKeepsPreviousCache(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	repo := NewSession(store, Options{}).CareLogs()

	_, err := repo.Create(ctx, carelogs.CareLog{Timestamp: 1, Actions: carelogs.Actions{Food: true}, Author: "a"})
	require.NoError(t, err)

	store.saveErr = errors.New("network down")
	_, err = repo.Create(ctx, carelogs.CareLog{Timestamp: 2, Actions: carelogs.Actions{Water: true}, Author: "a"})
	require.Error(t, err)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestUnauthorized_ResetsEveryCache(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	obs := &recordingObserver{}
	sess := NewSession(store, Options{Metrics: obs})

	_, err := sess.CareLogs().List(ctx)
	require.NoError(t, err)
	_, err = sess.Settings().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, store.loads)

	// una escritura vencida tira abajo toda la sesión
	store.saveErr = storage.ErrUnauthorized
	_, err = sess.WeightLogs().Create(ctx, weightlogs.WeightLog{Timestamp: 1, Weight: 4, Author: "a"})
	assert.ErrorIs(t, err, storage.ErrUnauthorized)
	assert.Equal(t, 1, obs.resets)

	store.saveErr = nil
	_, err = sess.CareLogs().List(ctx)
	require.NoError(t, err)
	_, err = sess.Settings().Get(ctx)
	require.NoError(t, err)

	// carelogs + settings se vuelven a leer, weightlogs se leyó para el create
	assert.Equal(t, 5, store.loads)
}

func TestSettings_DefaultAndRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	repo := NewSession(store, Options{}).Settings()

	s, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings.PetTypeCat, s.Pet.Type)
	assert.False(t, s.IsConfigured)

	want := settings.AppSettings{
		Pet:          settings.PetProfile{Name: "Mochi", Type: settings.PetTypeDog, Birthday: "2021-04-02"},
		Owners:       []settings.Owner{{ID: "o1", Name: "Ana", Color: "#FF6B6B"}},
		IsConfigured: true,
	}
	require.NoError(t, repo.Save(ctx, want))

	// sesión nueva sobre el mismo backend: lee lo persistido
	fresh := NewSession(store, Options{}).Settings()
	got, err := fresh.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPersistedFormatIsCamelCase(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	repo := NewSession(store, Options{}).CareLogs()

	w := 4.25
	_, err := repo.Create(ctx, carelogs.CareLog{
		ID:            "log-1",
		Timestamp:     1710064800000,
		Actions:       carelogs.Actions{Litter: true},
		IsLitterClean: true,
		Weight:        &w,
		Author:        "o1",
	})
	require.NoError(t, err)

	body, err := store.inner.Load(ctx, storage.DocCareLogs)
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"id":"log-1",
		"timestamp":1710064800000,
		"actions":{"food":false,"water":false,"litter":true},
		"isLitterClean":true,
		"weight":4.25,
		"author":"o1"
	}]`, string(body))
}

func TestDecode_ToleratesUnknownFieldsAndNull(t *testing.T) {
	items, err := decodeCareLogs([]byte(`[{"id":"x","timestamp":5,"actions":{"food":true},"author":"a","mood":"happy"}]`))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Actions.Food)

	items, err = decodeCareLogs([]byte(`null`))
	require.NoError(t, err)
	assert.Empty(t, items)

	s, err := decodeSettings([]byte(``))
	require.NoError(t, err)
	assert.Equal(t, settings.Default(), s)
}

func TestObserverSeesOperations(t *testing.T) {
	ctx := context.Background()
	obs := &recordingObserver{}
	repo := NewSession(newCountingStore(), Options{Metrics: obs}).WeightLogs()

	_, err := repo.Create(ctx, weightlogs.WeightLog{Timestamp: 1, Weight: 3, Author: "a"})
	require.NoError(t, err)

	assert.Equal(t, []string{"weightlogs.json:load", "weightlogs.json:save"}, obs.ops)
}
