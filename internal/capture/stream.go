package capture

import (
	"context"
	"errors"
	"sync"

	"github.com/Alia5/keygrab/keys"
)

var (
	// ErrStreamClosed is returned by Send after the consumer closed the
	// stream, and by Recv once a closed stream is drained.
	ErrStreamClosed = errors.New("key event stream closed")
	// ErrUnsupported is returned by EventTap on platforms without an
	// event-tap backend.
	ErrUnsupported = errors.New("key capture not supported on this platform")
)

// Stream is the unbounded, ordered channel from the relay to the engine.
// Send never blocks.
type Stream struct {
	mu     sync.Mutex
	buf    []keys.KeyEvent
	ready  chan struct{}
	closed bool
	once   sync.Once
}

func NewStream() *Stream {
	return &Stream{ready: make(chan struct{}, 1)}
}

// Send appends ev. It fails only once the stream is closed.
func (s *Stream) Send(ev keys.KeyEvent) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStreamClosed
	}
	s.buf = append(s.buf, ev)
	select {
	case s.ready <- struct{}{}:
	default:
	}
	s.mu.Unlock()
	return nil
}

// Recv blocks until an event is available, ctx is done, or the stream is
// closed and empty.
func (s *Stream) Recv(ctx context.Context) (keys.KeyEvent, error) {
	for {
		s.mu.Lock()
		if len(s.buf) > 0 {
			ev := s.buf[0]
			s.buf[0] = keys.KeyEvent{}
			s.buf = s.buf[1:]
			if len(s.buf) == 0 {
				s.buf = nil
			}
			s.mu.Unlock()
			return ev, nil
		}
		closed := s.closed
		s.mu.Unlock()
		if closed {
			return keys.KeyEvent{}, ErrStreamClosed
		}

		select {
		case <-s.ready:
		case <-ctx.Done():
			return keys.KeyEvent{}, ctx.Err()
		}
	}
}

// Close marks the consumer gone. Pending events can still be received.
func (s *Stream) Close() {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.ready)
		s.mu.Unlock()
	})
}

// Len returns the number of buffered events.
func (s *Stream) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buf)
}
