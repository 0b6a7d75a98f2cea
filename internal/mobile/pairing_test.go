package mobile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Robson2726/Facilitta-sub000/internal/domain/models"
)

func TestPairingStoreLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app", "pairing.json")
	store := NewPairingStore(path)

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNotPaired)

	_, err = Resume(store, time.Second, nil)
	assert.ErrorIs(t, err, ErrNotPaired)

	d, err := store.Pair("192.168.0.15:3000")
	require.NoError(t, err)
	assert.Equal(t, models.PairingDescriptor{Address: "192.168.0.15", Port: 3000}, d)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, d, loaded)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// a re-scan replaces the address
	_, err = store.Pair(`{"ip":"10.0.0.7","porta":8080}`)
	require.NoError(t, err)
	loaded, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.7:8080", loaded.BaseURL())

	require.NoError(t, store.Forget())
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNotPaired)
	assert.NoError(t, store.Forget())
}

func TestPairingStoreRejectsBadPayload(t *testing.T) {
	store := NewPairingStore(filepath.Join(t.TempDir(), "pairing.json"))
	_, err := store.Pair("192.168.0.15:3000")
	require.NoError(t, err)

	for _, payload := range []string{"", "not-an-address", "192.168.0.15:99999", "fe80::1:3000", `{"ip":"x"}`} {
		_, err := store.Pair(payload)
		assert.ErrorIs(t, err, models.ErrInvalidDescriptor, payload)
	}

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "192.168.0.15:3000", loaded.String())
}

func TestPairingStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairing.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	_, err := NewPairingStore(path).Load()
	assert.ErrorIs(t, err, models.ErrInvalidDescriptor)
}

func TestResumeBuildsSession(t *testing.T) {
	store := NewPairingStore(filepath.Join(t.TempDir(), "pairing.json"))
	_, err := store.Pair("192.168.0.15:3000")
	require.NoError(t, err)

	session, err := Resume(store, time.Second, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://192.168.0.15:3000", session.Client.BaseURL)
	assert.Equal(t, time.Second, session.Client.HTTP.Timeout)
	assert.Same(t, session.Client, session.Batch.Deliverer)
}
