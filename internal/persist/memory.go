package persist

import "sync"

// Memory is an in-process BlobStore used in tests and for ephemeral runs.
type Memory struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

var _ BlobStore = (*Memory)(nil)

// NewMemory creates an empty in-memory blob store.
func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

// Put stores a copy of data under key.
func (m *Memory) Put(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	m.blobs[key] = cp
	return nil
}

// Get returns the blob stored under key, or ok=false when absent.
func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[key]
	return data, ok, nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
