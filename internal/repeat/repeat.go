// Package repeat synthesizes key-repeat events for input sources that only
// report presses and releases.
package repeat

import (
	"sort"
	"sync"

	"github.com/Alia5/keygrab/keys"
)

// Tracker remembers which codes are held. A second Press of a held code is
// reported as Repeat. One Tracker serves every keyboard: the daemon sees a
// single merged input stream.
type Tracker struct {
	mu      sync.Mutex
	pressed map[keys.OsCode]struct{}
}

func New() *Tracker {
	return &Tracker{pressed: make(map[keys.OsCode]struct{})}
}

// Apply updates the held set from ev and returns ev with its final value.
func (t *Tracker) Apply(ev keys.KeyEvent) keys.KeyEvent {
	switch ev.Value {
	case keys.Press:
		t.mu.Lock()
		_, held := t.pressed[ev.Code]
		if !held {
			t.pressed[ev.Code] = struct{}{}
		}
		t.mu.Unlock()
		if held {
			ev.Value = keys.Repeat
		}
	case keys.Release:
		t.mu.Lock()
		delete(t.pressed, ev.Code)
		t.mu.Unlock()
	}
	return ev
}

// Holds reports whether c is currently held.
func (t *Tracker) Holds(c keys.OsCode) bool {
	t.mu.Lock()
	_, ok := t.pressed[c]
	t.mu.Unlock()
	return ok
}

// Held returns the held codes in ascending order.
func (t *Tracker) Held() []keys.OsCode {
	t.mu.Lock()
	out := make([]keys.OsCode, 0, len(t.pressed))
	for c := range t.pressed {
		out = append(out, c)
	}
	t.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Reset forgets every held code.
func (t *Tracker) Reset() {
	t.mu.Lock()
	clear(t.pressed)
	t.mu.Unlock()
}
