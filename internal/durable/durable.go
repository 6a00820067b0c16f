// Package durable provides the key-value persistence that backs sessions and
// the registered account list. Values are stored as JSON documents.
package durable

import "context"

// Keys written by the identity store and the auth service.
const (
	KeyRegisteredUsers = "registeredUsers"
	KeySession         = "user"
)

// Store is a JSON key-value store.
type Store interface {
	// Get decodes the value under key into dst. It reports false when the key is absent.
	Get(ctx context.Context, key string, dst any) (bool, error)
	// Set replaces the value under key.
	Set(ctx context.Context, key string, value any) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

type prefixed struct {
	store  Store
	prefix string
}

// Prefixed namespaces every key of store with prefix.
func Prefixed(store Store, prefix string) Store {
	return &prefixed{store: store, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string, dst any) (bool, error) {
	return p.store.Get(ctx, p.prefix+key, dst)
}

func (p *prefixed) Set(ctx context.Context, key string, value any) error {
	return p.store.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Delete(ctx context.Context, key string) error {
	return p.store.Delete(ctx, p.prefix+key)
}

// ContextPrefix is the namespace of one client context.
func ContextPrefix(contextID string) string {
	return "ctx:" + contextID + ":"
}
