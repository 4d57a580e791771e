package capture_test

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/keygrab/internal/capture"
	"github.com/Alia5/keygrab/internal/log"
	"github.com/Alia5/keygrab/keys"
	"github.com/Alia5/keygrab/native"
)

type fatalRecorder struct {
	mu   sync.Mutex
	msgs []string
}

func (r *fatalRecorder) fatal(msg string) {
	r.mu.Lock()
	r.msgs = append(r.msgs, msg)
	r.mu.Unlock()
}

func (r *fatalRecorder) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.msgs...)
}

func press(k native.Key) native.Event   { return native.Event{Kind: native.KeyPress, Key: k} }
func release(k native.Key) native.Event { return native.Event{Kind: native.KeyRelease, Key: k} }

func newPipeline(t *testing.T, mapped ...keys.OsCode) (*capture.Pipeline, *fatalRecorder, *int) {
	t.Helper()
	rec := &fatalRecorder{}
	exits := 0
	p := capture.New(capture.Options{
		Mapped: capture.NewMappedKeys(mapped...),
		Fatal:  rec.fatal,
		Exit:   func() { exits++ },
	})
	return p, rec, &exits
}

func recvAll(t *testing.T, s *capture.Stream, n int) []keys.KeyEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(t.Context(), time.Second)
	defer cancel()
	out := make([]keys.KeyEvent, 0, n)
	for range n {
		ev, err := s.Recv(ctx)
		require.NoError(t, err)
		out = append(out, ev)
	}
	return out
}

func TestHandlePassesThroughUnmapped(t *testing.T) {
	p, rec, _ := newPipeline(t, keys.KeyCapsLock)
	stream := capture.NewStream()
	p.Start(stream)

	events := []native.Event{
		press(native.KeyA),
		release(native.KeyA),
		press(native.Function),
		press(native.Unknown(110)),
		{Kind: native.ButtonPress, Button: native.ButtonLeft},
		{Kind: native.Wheel, DeltaY: -3},
	}
	for _, ev := range events {
		got, pass := p.Handle(ev)
		assert.True(t, pass, ev.String())
		assert.Equal(t, ev, got)
	}

	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, stream.Len())
	assert.Empty(t, rec.messages())
}

func TestHandleSuppressesMapped(t *testing.T) {
	p, rec, _ := newPipeline(t, keys.KeyCapsLock, keys.KeyA)
	stream := capture.NewStream()
	p.Start(stream)

	for _, ev := range []native.Event{
		press(native.CapsLock),
		press(native.CapsLock),
		release(native.CapsLock),
		press(native.KeyA),
	} {
		_, pass := p.Handle(ev)
		assert.False(t, pass, ev.String())
	}

	got := recvAll(t, stream, 4)
	assert.Equal(t, []keys.KeyEvent{
		{Code: keys.KeyCapsLock, Value: keys.Press},
		{Code: keys.KeyCapsLock, Value: keys.Repeat},
		{Code: keys.KeyCapsLock, Value: keys.Release},
		{Code: keys.KeyA, Value: keys.Press},
	}, got)
	assert.Empty(t, rec.messages())
}

func TestHandleSyntheticPassesThrough(t *testing.T) {
	p, _, _ := newPipeline(t, keys.KeyA)
	ev := press(native.KeyA)
	ev.Synthetic = true
	got, pass := p.Handle(ev)
	assert.True(t, pass)
	assert.Equal(t, ev, got)
}

func TestQueueFullIsFatal(t *testing.T) {
	p, rec, _ := newPipeline(t, keys.KeyA)
	// No relay: the queue fills after QueueSize events.
	for i := range capture.QueueSize {
		_, pass := p.Handle(press(native.KeyA))
		assert.False(t, pass, "event %d", i)
	}
	assert.Empty(t, rec.messages())

	_, pass := p.Handle(press(native.KeyA))
	assert.False(t, pass)
	msgs := rec.messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "queue full")
}

func TestWatchdogFiresRegardlessOfMapping(t *testing.T) {
	tests := []struct {
		name   string
		mapped []keys.OsCode
	}{
		{name: "unmapped", mapped: nil},
		{name: "mapped", mapped: []keys.OsCode{keys.KeyLeftCtrl, keys.KeySpace, keys.KeyEsc}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _, exits := newPipeline(t, tt.mapped...)
			p.Start(capture.NewStream())

			p.Handle(press(native.ControlLeft))
			p.Handle(press(native.Space))
			assert.Zero(t, *exits)
			p.Handle(press(native.Escape))
			assert.Equal(t, 1, *exits)
		})
	}
}

func TestRelayStreamClosedIsFatal(t *testing.T) {
	rec := &fatalRecorder{}
	queue := make(chan keys.KeyEvent, 1)
	stream := capture.NewStream()
	stream.Close()

	done := make(chan struct{})
	go func() {
		capture.Relay(queue, stream, rec.fatal, nil)
		close(done)
	}()
	queue <- keys.KeyEvent{Code: keys.KeyA, Value: keys.Press}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("relay did not stop")
	}
	msgs := rec.messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], capture.ErrStreamClosed.Error())
}

func TestRelayQueueClosedIsFatal(t *testing.T) {
	rec := &fatalRecorder{}
	queue := make(chan keys.KeyEvent, 2)
	stream := capture.NewStream()
	queue <- keys.KeyEvent{Code: keys.KeyA, Value: keys.Press}
	close(queue)

	capture.Relay(queue, stream, rec.fatal, nil)
	assert.Equal(t, 1, stream.Len())
	require.Len(t, rec.messages(), 1)
	assert.Contains(t, rec.messages()[0], "queue closed")
}

func TestRelayPreservesOrder(t *testing.T) {
	p, rec, _ := newPipeline(t, keys.KeyA, keys.KeyB)
	stream := capture.NewStream()
	p.Start(stream)

	var want []keys.KeyEvent
	for range 200 {
		p.Handle(press(native.KeyA))
		p.Handle(press(native.KeyB))
		p.Handle(release(native.KeyA))
		p.Handle(release(native.KeyB))
		want = append(want,
			keys.KeyEvent{Code: keys.KeyA, Value: keys.Press},
			keys.KeyEvent{Code: keys.KeyB, Value: keys.Press},
			keys.KeyEvent{Code: keys.KeyA, Value: keys.Release},
			keys.KeyEvent{Code: keys.KeyB, Value: keys.Release},
		)
		// Let the relay keep up so the small queue never overflows.
		for stream.Len() < len(want) {
			time.Sleep(time.Millisecond)
		}
	}
	assert.Equal(t, want, recvAll(t, stream, len(want)))
	assert.Empty(t, rec.messages())
}

// stallWriter blocks every Write until release is closed.
type stallWriter struct {
	release chan struct{}
}

func (w *stallWriter) Write(b []byte) (int, error) {
	<-w.release
	return len(b), nil
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestHandleDoesNotWaitOnEventLog(t *testing.T) {
	w := &stallWriter{release: make(chan struct{})}
	t.Cleanup(func() { close(w.release) })

	rec := &fatalRecorder{}
	p := capture.New(capture.Options{
		Mapped: capture.NewMappedKeys(keys.KeyA),
		Events: log.NewEvents(w),
		Fatal:  rec.fatal,
	})
	stream := capture.NewStream()
	p.Start(stream)

	done := make(chan bool, 1)
	go func() {
		_, pass := p.Handle(press(native.KeyA))
		done <- pass
	}()
	select {
	case pass := <-done:
		assert.False(t, pass)
	case <-time.After(300 * time.Millisecond):
		t.Fatal("Handle blocked on the event log")
	}

	assert.Equal(t, []keys.KeyEvent{{Code: keys.KeyA, Value: keys.Press}}, recvAll(t, stream, 1))
	assert.Empty(t, rec.messages())
}

func TestRelayTracesForwardedEvents(t *testing.T) {
	var buf lockedBuffer
	p := capture.New(capture.Options{
		Mapped: capture.NewMappedKeys(keys.KeyA),
		Events: log.NewEvents(&buf),
		Fatal:  (&fatalRecorder{}).fatal,
	})
	stream := capture.NewStream()
	p.Start(stream)

	p.Handle(press(native.KeyA))
	recvAll(t, stream, 1)
	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(buf.String()), []byte("in  KEY_A press"))
	}, time.Second, time.Millisecond)
}

func TestReloadKeepsHeldKeyUntilRelease(t *testing.T) {
	rec := &fatalRecorder{}
	mapped := capture.NewMappedKeys(keys.KeyCapsLock)
	p := capture.New(capture.Options{Mapped: mapped, Fatal: rec.fatal})
	stream := capture.NewStream()
	p.Start(stream)

	_, pass := p.Handle(press(native.CapsLock))
	assert.False(t, pass)

	mapped.Replace(nil)
	_, pass = p.Handle(press(native.CapsLock))
	assert.False(t, pass, "auto-repeat of a held key stays withheld")
	_, pass = p.Handle(release(native.CapsLock))
	assert.False(t, pass, "release of a held key reaches the engine")

	_, pass = p.Handle(press(native.CapsLock))
	assert.True(t, pass, "once released the unmapped key passes through")
	_, pass = p.Handle(release(native.CapsLock))
	assert.True(t, pass)

	mapped.Replace([]keys.OsCode{keys.KeyCapsLock})
	_, pass = p.Handle(press(native.CapsLock))
	assert.False(t, pass)

	assert.Equal(t, []keys.KeyEvent{
		{Code: keys.KeyCapsLock, Value: keys.Press},
		{Code: keys.KeyCapsLock, Value: keys.Repeat},
		{Code: keys.KeyCapsLock, Value: keys.Release},
		{Code: keys.KeyCapsLock, Value: keys.Press},
	}, recvAll(t, stream, 4))
	assert.Empty(t, rec.messages())
}

func TestNewWithoutMappedSetPassesEverything(t *testing.T) {
	p := capture.New(capture.Options{Fatal: (&fatalRecorder{}).fatal})
	ev := press(native.CapsLock)
	got, pass := p.Handle(ev)
	assert.True(t, pass)
	assert.Equal(t, ev, got)
}
