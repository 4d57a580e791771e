package testing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Alia5/keygrab/internal/capture"
	"github.com/Alia5/keygrab/native"
)

// Injector records every event handed to it. Err, when set, is returned from
// each Inject after the event was recorded.
type Injector struct {
	Err error

	mu     sync.Mutex
	events []native.Event
}

func (i *Injector) Inject(ev native.Event) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.events = append(i.events, ev)
	return i.Err
}

// Events returns a copy of what was injected so far.
func (i *Injector) Events() []native.Event {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]native.Event(nil), i.events...)
}

// ScriptTap stands in for the OS event tap. Feed drives events through the
// installed callback; whatever the callback lets through is kept in Passed.
type ScriptTap struct {
	cb chan capture.Callback

	mu     sync.Mutex
	passed []native.Event
}

func NewScriptTap() *ScriptTap {
	return &ScriptTap{cb: make(chan capture.Callback, 1)}
}

func (s *ScriptTap) Run(ctx context.Context, cb capture.Callback) error {
	s.cb <- cb
	<-ctx.Done()
	return ctx.Err()
}

func (s *ScriptTap) Feed(t *testing.T, events ...native.Event) {
	t.Helper()
	var cb capture.Callback
	select {
	case cb = <-s.cb:
		s.cb <- cb
	case <-time.After(time.Second):
		t.Fatal("tap not started")
	}
	for _, ev := range events {
		if out, pass := cb(ev); pass {
			s.mu.Lock()
			s.passed = append(s.passed, out)
			s.mu.Unlock()
		}
	}
}

func (s *ScriptTap) Passed() []native.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]native.Event(nil), s.passed...)
}
