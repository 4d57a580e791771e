// Package output synthesizes the remapping engine's decisions as native
// input events.
//
// Injection is synchronous and serialized: every injected native event is
// followed by a settle delay before the next one may be posted, since the
// window server drops or coalesces synthetic events that arrive closer
// together.
package output

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Alia5/keygrab/internal/log"
	"github.com/Alia5/keygrab/keys"
	"github.com/Alia5/keygrab/native"
)

// DefaultSettleDelay is the pause after each injected event.
const DefaultSettleDelay = 20 * time.Millisecond

var (
	// ErrIO marks a failed native injection. The daemon keeps running.
	ErrIO = errors.New("output: injection failed")
	// ErrUnsupported is returned by NewInjector on platforms without an
	// injection backend.
	ErrUnsupported = errors.New("output: event injection not supported on this platform")
)

// Injector posts one native event into the OS input stream.
type Injector interface {
	Inject(ev native.Event) error
}

// UnicodeInjector is implemented by injectors that can type an arbitrary
// character directly.
type UnicodeInjector interface {
	InjectUnicode(r rune) error
}

// WriterConfig tunes a Writer.
type WriterConfig struct {
	// SettleDelay defaults to DefaultSettleDelay. Negative disables it.
	SettleDelay time.Duration
	Events      log.EventLogger
}

// Writer is the single entry point for synthesized output.
type Writer struct {
	mu     sync.Mutex
	inj    Injector
	delay  time.Duration
	events log.EventLogger
	logger *slog.Logger
}

func NewWriter(inj Injector, cfg WriterConfig, logger *slog.Logger) *Writer {
	if cfg.SettleDelay == 0 {
		cfg.SettleDelay = DefaultSettleDelay
	}
	if cfg.SettleDelay < 0 {
		cfg.SettleDelay = 0
	}
	if cfg.Events == nil {
		cfg.Events = log.NewEvents(nil)
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &Writer{inj: inj, delay: cfg.SettleDelay, events: cfg.Events, logger: logger}
}

// SettleDelay returns the configured pause after each injected event.
func (w *Writer) SettleDelay() time.Duration {
	return w.delay
}

// inject posts ev and waits out the settle delay. Callers hold w.mu.
func (w *Writer) inject(ev native.Event) error {
	err := w.inj.Inject(ev)
	w.events.Log(false, ev)
	if w.delay > 0 {
		time.Sleep(w.delay)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrIO, ev, err)
	}
	return nil
}

// WriteKey synthesizes a canonical key transition. Repeat becomes a release
// followed by a press. Codes without a native key are skipped.
func (w *Writer) WriteKey(code keys.OsCode, value keys.KeyValue) error {
	k := native.ToNative(code)
	if k == native.KeyUnknownSentinel {
		w.logger.Warn("no native key for code, not sent", "code", code)
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	switch value {
	case keys.Press:
		return w.inject(native.Event{Kind: native.KeyPress, Key: k})
	case keys.Release:
		return w.inject(native.Event{Kind: native.KeyRelease, Key: k})
	case keys.Repeat:
		if err := w.inject(native.Event{Kind: native.KeyRelease, Key: k}); err != nil {
			return err
		}
		return w.inject(native.Event{Kind: native.KeyPress, Key: k})
	default:
		return fmt.Errorf("write %s: unsupported key value %s", code, value)
	}
}

func (w *Writer) PressKey(code keys.OsCode) error {
	return w.WriteKey(code, keys.Press)
}

func (w *Writer) ReleaseKey(code keys.OsCode) error {
	return w.WriteKey(code, keys.Release)
}

func nativeButton(b Button) native.Button {
	switch b {
	case Left:
		return native.ButtonLeft
	case Right:
		return native.ButtonRight
	case Middle:
		return native.ButtonMiddle
	case Back:
		return native.UnknownButton(3)
	case Forward:
		return native.UnknownButton(4)
	default:
		return native.UnknownButton(uint8(b))
	}
}

// ClickButton presses b. The matching ReleaseButton ends the click.
func (w *Writer) ClickButton(b Button) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inject(native.Event{Kind: native.ButtonPress, Button: nativeButton(b)})
}

func (w *Writer) ReleaseButton(b Button) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inject(native.Event{Kind: native.ButtonRelease, Button: nativeButton(b)})
}

// Scroll maps the direction onto the two wheel axes: up/down on DeltaY,
// right/left on DeltaX, positive up and right.
func (w *Writer) Scroll(dir Direction, distance uint16) error {
	ev := native.Event{Kind: native.Wheel}
	d := int64(distance)
	switch dir {
	case ScrollUp:
		ev.DeltaY = d
	case ScrollDown:
		ev.DeltaY = -d
	case ScrollRight:
		ev.DeltaX = d
	case ScrollLeft:
		ev.DeltaX = -d
	default:
		return fmt.Errorf("scroll: unknown direction %s", dir)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inject(ev)
}

// SendUnicode types r. Injectors that support it type r directly; other
// ASCII is typed as key taps on a US layout; anything else is skipped.
func (w *Writer) SendUnicode(r rune) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if ui, ok := w.inj.(UnicodeInjector); ok {
		err := ui.InjectUnicode(r)
		w.events.Log(false, UnicodeAction{Char: r})
		if w.delay > 0 {
			time.Sleep(w.delay)
		}
		if err != nil {
			return fmt.Errorf("%w: unicode %q: %w", ErrIO, r, err)
		}
		return nil
	}

	code, shift, ok := keys.CharToKey(r)
	if !ok {
		w.logger.Debug("character not typeable, skipped", "char", string(r))
		return nil
	}
	k := native.ToNative(code)
	seq := []native.Event{
		{Kind: native.KeyPress, Key: k},
		{Kind: native.KeyRelease, Key: k},
	}
	if shift {
		seq = append([]native.Event{{Kind: native.KeyPress, Key: native.ShiftLeft}}, seq...)
		seq = append(seq, native.Event{Kind: native.KeyRelease, Key: native.ShiftLeft})
	}
	for _, ev := range seq {
		if err := w.inject(ev); err != nil {
			return err
		}
	}
	return nil
}

// Apply dispatches a on its concrete type.
func (w *Writer) Apply(a Action) error {
	switch a := a.(type) {
	case KeyAction:
		return w.WriteKey(a.Code, a.Value)
	case ButtonAction:
		if a.Pressed {
			return w.ClickButton(a.Button)
		}
		return w.ReleaseButton(a.Button)
	case ScrollAction:
		return w.Scroll(a.Direction, a.Distance)
	case UnicodeAction:
		return w.SendUnicode(a.Char)
	default:
		return fmt.Errorf("unsupported action %T", a)
	}
}
