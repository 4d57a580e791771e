// Package capture turns intercepted native key events into canonical
// KeyEvents for the remapping engine.
//
// The event-tap callback runs inline with system-wide input dispatch, so
// Pipeline.Handle never blocks: it enqueues onto a small bounded queue and
// returns. A relay goroutine moves events from that queue to the unbounded
// Stream the engine reads. Any stall on that path terminates the process.
package capture

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Alia5/keygrab/internal/log"
	"github.com/Alia5/keygrab/internal/repeat"
	"github.com/Alia5/keygrab/keys"
	"github.com/Alia5/keygrab/native"
)

// QueueSize is the capacity of the queue between the tap callback and the
// relay.
const QueueSize = 10

// Callback is the shape of an event-tap handler. It returns the event to
// hand back to the OS and false to suppress it.
type Callback func(native.Event) (native.Event, bool)

// FatalFunc ends the process after an unrecoverable pipeline stall. It must
// not return in production; tests substitute a recorder.
type FatalFunc func(msg string)

// Terminate returns a FatalFunc that logs msg and exits with code.
func Terminate(logger *slog.Logger, code int) FatalFunc {
	return func(msg string) {
		logger.Error("terminating", "reason", msg)
		os.Exit(code)
	}
}

// Options configures a Pipeline. A nil Mapped set maps nothing.
type Options struct {
	Mapped  *MappedKeys
	Pressed *repeat.Tracker
	Logger  *slog.Logger
	Events  log.EventLogger
	// Fatal handles queue overflow and relay failures. Default Terminate(Logger, 1).
	Fatal FatalFunc
	// Exit is called when the exit combo is held. Default Terminate(Logger, 0).
	Exit      func()
	QueueSize int
}

// Pipeline is the capture-side state shared by the tap callback and the
// relay.
type Pipeline struct {
	mapped   *MappedKeys
	pressed  *repeat.Tracker
	watchdog *Watchdog
	queue    chan keys.KeyEvent
	logger   *slog.Logger
	events   log.EventLogger
	fatal    FatalFunc
}

func New(opts Options) *Pipeline {
	if opts.Mapped == nil {
		opts.Mapped = NewMappedKeys()
	}
	if opts.Logger == nil {
		opts.Logger = log.Discard()
	}
	if opts.Pressed == nil {
		opts.Pressed = repeat.New()
	}
	if opts.Events == nil {
		opts.Events = log.NewEvents(nil)
	}
	if opts.Fatal == nil {
		opts.Fatal = Terminate(opts.Logger, 1)
	}
	if opts.Exit == nil {
		term := Terminate(opts.Logger, 0)
		opts.Exit = func() { term("exit key combination pressed") }
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = QueueSize
	}
	return &Pipeline{
		mapped:   opts.Mapped,
		pressed:  opts.Pressed,
		watchdog: NewWatchdog(opts.Exit),
		queue:    make(chan keys.KeyEvent, opts.QueueSize),
		logger:   opts.Logger,
		events:   opts.Events,
		fatal:    opts.Fatal,
	}
}

// Handle is the tap callback. Unrecognised events and keys outside the
// mapped set go back to the OS untouched. Mapped keys are queued for the
// engine and suppressed. A key that was held when a reload unmapped it stays
// withheld until its release, so the engine sees the whole press.
//
// Handle does no I/O: event tracing happens in the relay.
func (p *Pipeline) Handle(ev native.Event) (native.Event, bool) {
	if ev.Synthetic {
		return ev, true
	}
	kev, ok := native.ToKeyEvent(ev)
	if !ok {
		return ev, true
	}
	p.watchdog.Check(kev)
	if !p.mapped.Contains(kev.Code) && !p.pressed.Holds(kev.Code) {
		return ev, true
	}

	kev = p.pressed.Apply(kev)
	select {
	case p.queue <- kev:
	default:
		p.fatal(fmt.Sprintf("capture queue full (%d events), dropping %s", cap(p.queue), kev))
		return native.Event{}, false
	}
	return native.Event{}, false
}

// Callback returns Handle as a Callback.
func (p *Pipeline) Callback() Callback {
	return p.Handle
}

// Start launches the relay from the pipeline's queue into stream.
func (p *Pipeline) Start(stream *Stream) {
	p.logger.Debug("capture relay started", "queue", cap(p.queue))
	go Relay(p.queue, stream, p.fatal, p.events)
}

// Relay forwards queue into stream in order until queue is closed, tracing
// each forwarded event to events when it is non-nil. A closed stream or a
// closed queue is fatal: either way nothing would receive key events any
// more.
func Relay(queue <-chan keys.KeyEvent, stream *Stream, fatal FatalFunc, events log.EventLogger) {
	for ev := range queue {
		if err := stream.Send(ev); err != nil {
			fatal(fmt.Sprintf("relay: %v", err))
			return
		}
		if events != nil {
			events.Log(true, ev)
		}
	}
	fatal("relay: capture queue closed")
}
