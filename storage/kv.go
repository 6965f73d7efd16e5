// Package storage persists the ledger state through a two-key key-value
// medium: one key for the serialized accounts, one for the serialized
// transactions.
package storage

import "context"

// Fixed keys of the persisted state.
const (
	KeyAccounts     = "accounts"
	KeyTransactions = "transactions"
)

// KV is a durable key-value medium. Writes are synchronous and complete
// before Set returns; there is no queuing or retry on top of it.
type KV interface {
	// Get returns the value stored under key. ok is false when the key is
	// absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error
}
