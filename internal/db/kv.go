package db

import "fmt"

// Storage backends
const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

// KV is a durable string key-value store
type KV interface {
	Load(key string) (value string, ok bool, err error)
	Save(key, value string) error
	Keys() ([]string, error)
	Close() error
}

var (
	_ KV = (*DB)(nil)
	_ KV = (*Bolt)(nil)
	_ KV = (*Memory)(nil)
)

// Open opens the named backend at path. The memory backend ignores path.
func Open(backend, path string) (KV, error) {
	switch backend {
	case "", BackendSQLite:
		return New(path)
	case BackendBolt:
		if path == "" {
			return nil, fmt.Errorf("bolt path is required")
		}
		return OpenBolt(path, "")
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
