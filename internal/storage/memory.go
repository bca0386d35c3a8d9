package storage

import "sync"

// MemoryBackend holds the slot in process memory.
type MemoryBackend struct {
	mu      sync.Mutex
	data    []byte
	saves   int
	saveErr error
	loadErr error
}

// NewMemoryBackend returns an empty memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// Load returns a copy of the stored blob.
func (b *MemoryBackend) Load() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.loadErr != nil {
		return nil, b.loadErr
	}
	if b.data == nil {
		return nil, nil
	}
	return append([]byte(nil), b.data...), nil
}

// Save stores a copy of blob.
func (b *MemoryBackend) Save(blob []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.saveErr != nil {
		return b.saveErr
	}
	b.data = append([]byte(nil), blob...)
	b.saves++
	return nil
}

// Close is a no-op.
func (b *MemoryBackend) Close() error {
	return nil
}

// Saves reports how many successful writes have happened.
func (b *MemoryBackend) Saves() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saves
}

// FailSaves makes subsequent saves return err. Pass nil to restore.
func (b *MemoryBackend) FailSaves(err error) {
	b.mu.Lock()
	b.saveErr = err
	b.mu.Unlock()
}

// FailLoads makes subsequent loads return err. Pass nil to restore.
func (b *MemoryBackend) FailLoads(err error) {
	b.mu.Lock()
	b.loadErr = err
	b.mu.Unlock()
}
