package redis

import (
	"context"
	"errors"
	"testing"

	"pet-care-log/internal/ports/storage"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErr(t *testing.T) {
	assert.ErrorIs(t, mapErr(errors.New("NOAUTH Authentication required.")), storage.ErrUnauthorized)
	assert.ErrorIs(t, mapErr(errors.New("WRONGPASS invalid username-password pair")), storage.ErrUnauthorized)
	assert.NotErrorIs(t, mapErr(errors.New("i/o timeout")), storage.ErrUnauthorized)
	assert.NoError(t, mapErr(nil))
}

func TestStore_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	s, err := New(ctx, Config{Addr: mr.Addr()})
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Load(ctx, storage.DocCareLogs)
	assert.ErrorIs(t, err, storage.ErrNotExist)

	require.NoError(t, s.Save(ctx, storage.DocCareLogs, []byte(`[{"id":"1"}]`)))
	require.NoError(t, s.Save(ctx, storage.DocCareLogs, []byte(`[{"id":"2"}]`)))

	body, err := s.Load(ctx, storage.DocCareLogs)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"2"}]`, string(body))

	// default prefix, sin TTL
	raw, err := mr.Get("petcare:" + storage.DocCareLogs)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"2"}]`, raw)
	assert.Zero(t, mr.TTL("petcare:"+storage.DocCareLogs))
}

func TestStore_PrefixIsolatesHouseholds(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	a := NewWithClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), "home-a:")
	b := NewWithClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), "home-b:")
	defer a.Close()
	defer b.Close()

	require.NoError(t, a.Save(ctx, storage.DocSettings, []byte(`{"isConfigured":true}`)))

	_, err := b.Load(ctx, storage.DocSettings)
	assert.ErrorIs(t, err, storage.ErrNotExist)
	assert.True(t, mr.Exists("home-a:"+storage.DocSettings))
}

func TestStore_MissingAuthIsUnauthorized(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("s3cret")
	ctx := context.Background()

	s := NewWithClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), "")
	defer s.Close()

	_, err := s.Load(ctx, storage.DocCareLogs)
	assert.ErrorIs(t, err, storage.ErrUnauthorized)

	err = s.Save(ctx, storage.DocCareLogs, []byte(`[]`))
	assert.ErrorIs(t, err, storage.ErrUnauthorized)
}

func TestNew_PingFails(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := New(context.Background(), Config{Addr: addr})
	assert.Error(t, err)
}
