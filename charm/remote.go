// ABOUTME: Charm-backed remote copy of the outreach state
// ABOUTME: Implements store.Backend by keeping the whole blob under one KV key

package charm

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/outreach/store"
)

// StateKey is where the state blob lives in the charm KV.
const StateKey = "outreach:state"

// Remote adapts a Client to store.Backend.
type Remote struct {
	client *Client
	key    []byte
}

func NewRemote(c *Client) *Remote {
	return &Remote{client: c, key: []byte(StateKey)}
}

// Load pulls from the charm server and returns the stored blob.
func (r *Remote) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.client.Sync(); err != nil {
		return nil, fmt.Errorf("failed to sync from charm: %w", err)
	}

	data, err := r.client.Get(r.key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", StateKey, err)
	}
	return data, nil
}

// Save writes the blob and pushes it when auto-sync is on.
func (r *Remote) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.client.Set(r.key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", StateKey, err)
	}
	return nil
}
