package capture

import (
	"sort"
	"sync"

	"github.com/Alia5/keygrab/keys"
)

// MappedKeys is the set of canonical codes the engine remaps. Events for
// other codes never leave the OS input stream. Safe for one writer and any
// number of readers.
type MappedKeys struct {
	mu  sync.RWMutex
	set map[keys.OsCode]struct{}
}

func NewMappedKeys(codes ...keys.OsCode) *MappedKeys {
	m := &MappedKeys{}
	m.Replace(codes)
	return m
}

func (m *MappedKeys) Contains(c keys.OsCode) bool {
	m.mu.RLock()
	_, ok := m.set[c]
	m.mu.RUnlock()
	return ok
}

// Replace swaps in a new set. Readers see either the old or the new set,
// never a mix.
func (m *MappedKeys) Replace(codes []keys.OsCode) {
	set := make(map[keys.OsCode]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	m.mu.Lock()
	m.set = set
	m.mu.Unlock()
}

// Codes returns the members in ascending order.
func (m *MappedKeys) Codes() []keys.OsCode {
	m.mu.RLock()
	out := make([]keys.OsCode, 0, len(m.set))
	for c := range m.set {
		out = append(out, c)
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (m *MappedKeys) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.set)
}
