package native

import (
	"fmt"

	"github.com/Alia5/keygrab/keys"
)

// EventKind discriminates Event.
type EventKind uint8

const (
	KeyPress EventKind = iota + 1
	KeyRelease
	ButtonPress
	ButtonRelease
	Wheel
	MouseMove
)

func (k EventKind) String() string {
	switch k {
	case KeyPress:
		return "KeyPress"
	case KeyRelease:
		return "KeyRelease"
	case ButtonPress:
		return "ButtonPress"
	case ButtonRelease:
		return "ButtonRelease"
	case Wheel:
		return "Wheel"
	case MouseMove:
		return "MouseMove"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// Event is one input event as seen by the tap, or one event to be injected.
type Event struct {
	Kind   EventKind
	Key    Key
	Button Button
	// Wheel deltas in lines. Positive DeltaY scrolls up, positive DeltaX
	// scrolls right.
	DeltaX int64
	DeltaY int64
	// X and Y are the pointer location for MouseMove.
	X, Y float64
	// Synthetic is set on events this process injected itself.
	Synthetic bool
}

func (e Event) String() string {
	switch e.Kind {
	case KeyPress, KeyRelease:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Key)
	case ButtonPress, ButtonRelease:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Button)
	case Wheel:
		return fmt.Sprintf("Wheel(%d,%d)", e.DeltaX, e.DeltaY)
	case MouseMove:
		return fmt.Sprintf("MouseMove(%.0f,%.0f)", e.X, e.Y)
	default:
		return e.Kind.String()
	}
}

// ToKeyEvent converts a keyboard event to the canonical form. ok is false
// for pointer events and for keys with no canonical code. The result is
// always Press or Release; repeat detection happens later.
func ToKeyEvent(e Event) (ev keys.KeyEvent, ok bool) {
	var value keys.KeyValue
	switch e.Kind {
	case KeyPress:
		value = keys.Press
	case KeyRelease:
		value = keys.Release
	default:
		return keys.KeyEvent{}, false
	}
	code, ok := FromNative(e.Key)
	if !ok {
		return keys.KeyEvent{}, false
	}
	return keys.KeyEvent{Code: code, Value: value}, true
}

// FromKeyEvent builds the native event that injects ev. Repeat has no
// native form and yields ok=false; callers expand it into release+press.
func FromKeyEvent(ev keys.KeyEvent) (e Event, ok bool) {
	switch ev.Value {
	case keys.Press:
		e.Kind = KeyPress
	case keys.Release:
		e.Kind = KeyRelease
	default:
		return Event{}, false
	}
	e.Key = ToNative(ev.Code)
	return e, true
}
