package models

import (
	"sync"
	"time"
)

// Registry is the ordered, append-only collection of published mirrors. It
// is passed explicitly to everything that resolves names across files.
type Registry struct {
	mu         sync.RWMutex
	mirrors    []*FileMirror
	changeTime time.Time
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Add publishes a mirror. modTime is the modification time of its source
// file; ChangeTime keeps the latest one seen.
func (r *Registry) Add(mirror *FileMirror, modTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.mirrors = append(r.mirrors, mirror)
	if modTime.After(r.changeTime) {
		r.changeTime = modTime
	}
}

// Mirrors returns the published mirrors in publication order
func (r *Registry) Mirrors() []*FileMirror {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*FileMirror, len(r.mirrors))
	copy(out, r.mirrors)
	return out
}

// Len returns the number of published mirrors
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.mirrors)
}

// ChangeTime returns the latest modification time of any published source
func (r *Registry) ChangeTime() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.changeTime
}

// FindEnum returns the first published enum called name, searching mirrors
// in publication order.
func (r *Registry) FindEnum(name string) *Enum {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.mirrors {
		if e := m.FindEnum(name); e != nil {
			return e
		}
	}
	return nil
}
