package remap_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/keygrab/internal/capture"
	"github.com/Alia5/keygrab/internal/log"
	"github.com/Alia5/keygrab/internal/remap"
	"github.com/Alia5/keygrab/keys"
	"github.com/Alia5/keygrab/output"
)

type recordSink struct {
	mu      sync.Mutex
	actions []output.Action
	err     error
}

func (s *recordSink) Apply(a output.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append(s.actions, a)
	return s.err
}

func (s *recordSink) got() []output.Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]output.Action(nil), s.actions...)
}

func TestParseRemaps(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    remap.Table
		wantErr bool
	}{
		{
			name:  "aliases and evdev names",
			pairs: []string{"caps:esc", "KEY_LEFTALT:lmet"},
			want:  remap.Table{keys.KeyCapsLock: keys.KeyEsc, keys.KeyLeftAlt: keys.KeyLeftMeta},
		},
		{name: "empty", pairs: nil, want: remap.Table{}},
		{name: "missing separator", pairs: []string{"caps"}, wantErr: true},
		{name: "unknown source", pairs: []string{"hyper:esc"}, wantErr: true},
		{name: "unknown target", pairs: []string{"caps:hyper"}, wantErr: true},
		{name: "conflict", pairs: []string{"caps:esc", "caps:a"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := remap.ParseRemaps(tt.pairs)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTableCodes(t *testing.T) {
	tbl := remap.Table{keys.KeyEsc: keys.KeyA, keys.KeyA: keys.KeyB}
	assert.Equal(t, []keys.OsCode{keys.KeyEsc, keys.KeyA}, tbl.Codes())
}

func TestEngineRun(t *testing.T) {
	stream := capture.NewStream()
	sink := &recordSink{}
	e := remap.New(remap.Table{keys.KeyCapsLock: keys.KeyEsc}, stream, sink, log.Discard())

	for _, ev := range []keys.KeyEvent{
		{Code: keys.KeyCapsLock, Value: keys.Press},
		{Code: keys.KeyCapsLock, Value: keys.Repeat},
		{Code: keys.KeyA, Value: keys.Press},
		{Code: keys.KeyCapsLock, Value: keys.Release},
	} {
		require.NoError(t, stream.Send(ev))
	}

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()

	require.Eventually(t, func() bool { return len(sink.got()) == 4 }, time.Second, time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	assert.Equal(t, []output.Action{
		output.KeyAction{Code: keys.KeyEsc, Value: keys.Press},
		output.KeyAction{Code: keys.KeyEsc, Value: keys.Repeat},
		output.KeyAction{Code: keys.KeyA, Value: keys.Press},
		output.KeyAction{Code: keys.KeyEsc, Value: keys.Release},
	}, sink.got())

	assert.NoError(t, stream.Send(keys.KeyEvent{}), "Run leaves the stream open")
}

func TestEngineContinuesAfterOutputError(t *testing.T) {
	stream := capture.NewStream()
	sink := &recordSink{err: errors.New("injection failed")}
	e := remap.New(nil, stream, sink, log.Discard())

	require.NoError(t, stream.Send(keys.KeyEvent{Code: keys.KeyA, Value: keys.Press}))
	require.NoError(t, stream.Send(keys.KeyEvent{Code: keys.KeyA, Value: keys.Release}))
	stream.Close()

	require.NoError(t, e.Run(t.Context()))
	assert.Len(t, sink.got(), 2)
}

func TestEngineReplace(t *testing.T) {
	e := remap.New(remap.Table{keys.KeyA: keys.KeyB}, capture.NewStream(), &recordSink{}, log.Discard())
	assert.Equal(t, output.KeyAction{Code: keys.KeyB, Value: keys.Press}, e.Translate(keys.KeyEvent{Code: keys.KeyA, Value: keys.Press}))

	e.Translate(keys.KeyEvent{Code: keys.KeyA, Value: keys.Release})

	e.Replace(remap.Table{keys.KeyA: keys.KeyC})
	assert.Equal(t, output.KeyAction{Code: keys.KeyC, Value: keys.Press}, e.Translate(keys.KeyEvent{Code: keys.KeyA, Value: keys.Press}))
}

func TestEngineReplaceWhileHeld(t *testing.T) {
	e := remap.New(remap.Table{keys.KeyCapsLock: keys.KeyEsc}, capture.NewStream(), &recordSink{}, log.Discard())
	press := keys.KeyEvent{Code: keys.KeyCapsLock, Value: keys.Press}
	repeat := keys.KeyEvent{Code: keys.KeyCapsLock, Value: keys.Repeat}
	release := keys.KeyEvent{Code: keys.KeyCapsLock, Value: keys.Release}

	assert.Equal(t, output.KeyAction{Code: keys.KeyEsc, Value: keys.Press}, e.Translate(press))
	e.Replace(nil)
	assert.Equal(t, output.KeyAction{Code: keys.KeyEsc, Value: keys.Repeat}, e.Translate(repeat))
	assert.Equal(t, output.KeyAction{Code: keys.KeyEsc, Value: keys.Release}, e.Translate(release))

	assert.Equal(t, output.KeyAction{Code: keys.KeyCapsLock, Value: keys.Press}, e.Translate(press))
}
