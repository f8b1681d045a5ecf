// Package kv provides the durable key-value store the worker keeps all
// cross-invocation state in. writes are last-write-wins, there are no
// transactions across keys and none are needed.
package kv

import "context"

type Store interface {
	// returns the value and whether the key was present. an absent
	// key is not an error.
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key string, value string) error
}
