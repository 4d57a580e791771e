package log

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// EventLogger traces key events crossing the platform boundary.
type EventLogger interface {
	// Log records one event. in=true for captured events, false for
	// injected ones.
	Log(in bool, event fmt.Stringer)
}

type eventLogger struct {
	w   io.Writer
	mu  sync.Mutex
	now func() time.Time
}

// NewEvents creates an EventLogger writing to w. A nil writer yields a
// no-op logger.
func NewEvents(w io.Writer) EventLogger {
	return &eventLogger{w: w, now: time.Now}
}

// Log writes "<time> <dir> <event>". Captured events are marked "in",
// injected ones "out".
func (l *eventLogger) Log(in bool, event fmt.Stringer) {
	if l.w == nil || event == nil {
		return
	}
	dir := "out"
	if in {
		dir = "in "
	}
	line := fmt.Sprintf("%s %s %s\n", l.now().Format("15:04:05.000000"), dir, event.String())

	l.mu.Lock()
	_, _ = io.WriteString(l.w, line)
	l.mu.Unlock()
}
