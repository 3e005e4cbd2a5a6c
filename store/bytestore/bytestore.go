//go:build unix

// Package bytestore is the file-backed sibling of store.Store[byte]: the
// backing array is a shared, read-write memory mapping of a file, so
// reserved ranges can outlive the process once synced.
package bytestore

import (
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"buddyarena/allocator"
	"buddyarena/allocator/buddy"
)

// ByteStore is a buddy-managed byte array mapped from a file.
// Like store.Store it serializes allocation and maintenance internally.
type ByteStore struct {
	mu   sync.Mutex
	f    *os.File
	data []byte
	mgr  *allocator.Manager
}

// Open creates or opens the file at path, sizes it to cfg.UniverseSize
// bytes, and maps it read-write shared.
func Open(path string, cfg allocator.Config) (*ByteStore, error) {
	mgr, err := allocator.New(cfg)
	if err != nil {
		return nil, err
	}
	size := mgr.Config().UniverseSize

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}
	if err := f.Truncate(int64(size)); err != nil {
		_ = f.Close()
		return nil, err
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}

	return &ByteStore{f: f, data: data, mgr: mgr}, nil
}

// Alloc reserves count bytes. See allocator.Manager.Alloc.
func (b *ByteStore) Alloc(count int) (*allocator.Handle, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mgr.Alloc(count)
}

// View returns the mapped bytes reserved by h. Valid until h is released
// or the store is closed.
func (b *ByteStore) View(h *allocator.Handle) []byte {
	r := h.Range()
	return b.data[r.Start:r.End:r.End]
}

// Sync flushes the mapping to the underlying file.
func (b *ByteStore) Sync() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data == nil {
		return nil
	}
	return unix.Msync(b.data, unix.MS_SYNC)
}

// Tidy drains pending releases and fully coalesces the tree.
func (b *ByteStore) Tidy() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mgr.Tidy()
}

// TidyGas runs maintenance bounded by a work budget.
func (b *ByteStore) TidyGas(gas int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mgr.TidyGas(gas)
}

// TidyTimed runs maintenance bounded by an absolute deadline.
func (b *ByteStore) TidyTimed(deadline time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mgr.TidyTimed(deadline)
}

// Snapshot returns a read-only projection of the bookkeeping tree.
func (b *ByteStore) Snapshot() *buddy.BlockInfo {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mgr.Snapshot()
}

// Close unmaps the backing memory and closes the file. Views obtained from
// this store must not be touched afterwards.
func (b *ByteStore) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.data == nil {
		return nil
	}
	err := unix.Munmap(b.data)
	b.data = nil
	if cerr := b.f.Close(); err == nil {
		err = cerr
	}
	return err
}
