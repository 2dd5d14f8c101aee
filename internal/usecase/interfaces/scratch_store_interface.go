package interfaces

import "context"

// IScratchStore abstracts local, ephemeral key-value storage for wizard
// drafts (Redis in production). It is strictly best effort: values may be
// wiped at any time and no engine behavior may depend on a write surviving.
//
// Implementations self-heal: any storage error removes the affected key
// rather than leaving a half-written value behind. Absence is reported as
// ok=false, never as an error.

type IScratchStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Available(ctx context.Context) bool
}
