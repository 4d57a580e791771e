// Package remap is a one-to-one key remapper that consumes the capture
// stream and drives the output writer. It stands in for a full decision
// engine.
package remap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/Alia5/keygrab/internal/capture"
	"github.com/Alia5/keygrab/keys"
	"github.com/Alia5/keygrab/output"
)

// Sink receives the actions the engine decides on. *output.Writer
// implements it.
type Sink interface {
	Apply(a output.Action) error
}

// Table maps a captured code to the code sent in its place.
type Table map[keys.OsCode]keys.OsCode

// Codes returns the source codes in ascending order.
func (t Table) Codes() []keys.OsCode {
	out := make([]keys.OsCode, 0, len(t))
	for c := range t {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseRemaps parses "from:to" pairs, e.g. "caps:esc".
func ParseRemaps(pairs []string) (Table, error) {
	t := make(Table, len(pairs))
	for _, p := range pairs {
		from, to, ok := strings.Cut(p, ":")
		if !ok {
			return nil, fmt.Errorf("remap %q: want from:to", p)
		}
		src, err := keys.ParseOsCode(from)
		if err != nil {
			return nil, fmt.Errorf("remap %q: %w", p, err)
		}
		dst, err := keys.ParseOsCode(to)
		if err != nil {
			return nil, fmt.Errorf("remap %q: %w", p, err)
		}
		if prev, dup := t[src]; dup && prev != dst {
			return nil, fmt.Errorf("remap %q: %s already mapped to %s", p, src, prev)
		}
		t[src] = dst
	}
	return t, nil
}

// Engine applies a Table to every event on a capture stream.
type Engine struct {
	mu    sync.Mutex
	table Table
	// held maps each pressed source code to the code its press was sent as.
	held   map[keys.OsCode]keys.OsCode
	stream *capture.Stream
	sink   Sink
	logger *slog.Logger
}

func New(table Table, stream *capture.Stream, sink Sink, logger *slog.Logger) *Engine {
	return &Engine{
		table:  table,
		held:   make(map[keys.OsCode]keys.OsCode),
		stream: stream,
		sink:   sink,
		logger: logger,
	}
}

// Replace swaps the remap table. Keys held across the swap keep the code
// they were pressed as until released.
func (e *Engine) Replace(t Table) {
	e.mu.Lock()
	e.table = t
	e.mu.Unlock()
}

// Translate returns the action for ev. Codes missing from the table map to
// themselves. Repeats and the release of a held key use the code its press
// was translated to.
func (e *Engine) Translate(ev keys.KeyEvent) output.Action {
	e.mu.Lock()
	defer e.mu.Unlock()

	dst, held := e.held[ev.Code]
	if !held {
		var ok bool
		if dst, ok = e.table[ev.Code]; !ok {
			dst = ev.Code
		}
	}
	switch ev.Value {
	case keys.Press:
		e.held[ev.Code] = dst
	case keys.Release:
		delete(e.held, ev.Code)
	}
	return output.KeyAction{Code: dst, Value: ev.Value}
}

// Run consumes the stream until ctx is done or the stream is closed. Output
// failures are logged and do not stop the engine. The stream stays open:
// its owner closes it once the capture side has stopped.
func (e *Engine) Run(ctx context.Context) error {
	e.logger.Info("remap engine started")
	for {
		ev, err := e.stream.Recv(ctx)
		if err != nil {
			if errors.Is(err, capture.ErrStreamClosed) {
				return nil
			}
			return err
		}
		a := e.Translate(ev)
		if err := e.sink.Apply(a); err != nil {
			e.logger.Error("output failed", "event", ev, "action", a, "error", err)
			continue
		}
		e.logger.Debug("remapped", "event", ev, "action", a)
	}
}
