// Package storage defines the durable key-value port the stores persist
// through, plus in-memory, file and SQLite adapters. The contract mirrors
// the web storage model the system was designed around: string keys, opaque
// payloads, full-value overwrite on every write.
package storage

import "context"

// Keys under which the application persists its state. Each key holds a
// complete snapshot, rewritten on every committed mutation.
const (
	KeyForms     = "formbuilder.forms"
	KeyResponses = "formbuilder.responses"
	KeyTheme     = "formbuilder.theme"
)

// KV is the persistence port. Implementations must treat Set as a full
// overwrite and report absence through Get's second return rather than an
// error.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
