package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"pet-care-log/internal/ports/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RoundTripOnDisk(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "petcare.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)

	_, err = s.Load(ctx, storage.DocCareLogs)
	assert.ErrorIs(t, err, storage.ErrNotExist)

	require.NoError(t, s.Save(ctx, storage.DocCareLogs, []byte(`[{"id":"a"}]`)))
	require.NoError(t, s.Save(ctx, storage.DocCareLogs, []byte(`[{"id":"b"}]`)))
	require.NoError(t, s.Close())

	// reabrir: persiste y el último Save gana
	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	body, err := s.Load(ctx, storage.DocCareLogs)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"b"}]`, string(body))
}
