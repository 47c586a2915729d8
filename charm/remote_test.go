// ABOUTME: Tests for the charm remote backend and config handling
// ABOUTME: Runs against a temporary BadgerDB test client
package charm

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/harperreed/outreach/models"
	"github.com/harperreed/outreach/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteLoadMissing(t *testing.T) {
	r := NewRemote(NewTestClient(t))

	_, err := r.Load(context.Background())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRemoteSaveLoad(t *testing.T) {
	c := NewTestClient(t)
	r := NewRemote(c)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, []byte(`{"contacts":[]}`)))

	data, err := r.Load(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"contacts":[]}`, string(data))

	keys, err := c.KeysWithPrefix([]byte("outreach:"))
	require.NoError(t, err)
	assert.Len(t, keys, 1)
}

func TestRemoteCanceledContext(t *testing.T) {
	r := NewRemote(NewTestClient(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, r.Save(ctx, []byte("{}")), context.Canceled)
	_, err := r.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRemoteBacksStore(t *testing.T) {
	remote := NewRemote(NewTestClient(t))
	ctx := context.Background()

	first := store.New(&memoryCache{}, remote)
	first.Load(ctx)
	_, err := first.AddContact(ctx, models.Contact{VendorName: "Acme"})
	require.NoError(t, err)
	first.Wait()

	second := store.New(&memoryCache{}, remote)
	assert.Equal(t, store.SourceRemote, second.Load(ctx))
	assert.Len(t, second.Contacts(), 1)
}

func TestClientDeleteAndReset(t *testing.T) {
	c := NewTestClient(t)

	require.NoError(t, c.Set([]byte("outreach:a"), []byte("1")))
	require.NoError(t, c.Set([]byte("other"), []byte("2")))
	require.NoError(t, c.Delete([]byte("outreach:a")))

	keys, err := c.KeysWithPrefix([]byte("outreach:"))
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.NoError(t, c.Reset())
	_, err = c.Get([]byte("other"))
	assert.Error(t, err)
	assert.True(t, c.IsConnected())
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charm", ConfigFileName)

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultCharmHost, cfg.Host)
	assert.True(t, cfg.AutoSync)

	cfg.Host = "charm.example.com"
	cfg.AutoSync = false
	require.NoError(t, cfg.SaveTo(path))

	loaded, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "charm.example.com", loaded.Host)
	assert.False(t, loaded.AutoSync)
	assert.NotZero(t, loaded.StaleThreshold)
}

type memoryCache struct {
	data []byte
}

func (m *memoryCache) Load(ctx context.Context) ([]byte, error) {
	if m.data == nil {
		return nil, store.ErrNotFound
	}
	return m.data, nil
}

func (m *memoryCache) Save(ctx context.Context, data []byte) error {
	m.data = append([]byte(nil), data...)
	return nil
}
