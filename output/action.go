package output

import (
	"fmt"

	"github.com/Alia5/keygrab/keys"
)

// Action is one decision of the remapping engine to be synthesized.
type Action interface {
	isAction()
	fmt.Stringer
}

// KeyAction presses, releases or repeats a canonical key.
type KeyAction struct {
	Code  keys.OsCode
	Value keys.KeyValue
}

// ButtonAction presses or releases a pointer button.
type ButtonAction struct {
	Button  Button
	Pressed bool
}

// ScrollAction scrolls Distance lines in Direction.
type ScrollAction struct {
	Direction Direction
	Distance  uint16
}

// UnicodeAction types a literal character.
type UnicodeAction struct {
	Char rune
}

func (KeyAction) isAction()     {}
func (ButtonAction) isAction()  {}
func (ScrollAction) isAction()  {}
func (UnicodeAction) isAction() {}

func (a KeyAction) String() string {
	return "key " + keys.KeyEvent{Code: a.Code, Value: a.Value}.String()
}

func (a ButtonAction) String() string {
	if a.Pressed {
		return "button " + a.Button.String() + " press"
	}
	return "button " + a.Button.String() + " release"
}

func (a ScrollAction) String() string {
	return fmt.Sprintf("scroll %s %d", a.Direction, a.Distance)
}

func (a UnicodeAction) String() string {
	return fmt.Sprintf("unicode %q", a.Char)
}

// Button is a pointer button as the engine names it.
type Button uint8

const (
	Left Button = iota
	Right
	Middle
	Back
	Forward
)

func (b Button) String() string {
	switch b {
	case Left:
		return "left"
	case Right:
		return "right"
	case Middle:
		return "middle"
	case Back:
		return "back"
	case Forward:
		return "forward"
	default:
		return fmt.Sprintf("Button(%d)", uint8(b))
	}
}

// Direction is a scroll direction.
type Direction uint8

const (
	ScrollUp Direction = iota
	ScrollDown
	ScrollLeft
	ScrollRight
)

func (d Direction) String() string {
	switch d {
	case ScrollUp:
		return "up"
	case ScrollDown:
		return "down"
	case ScrollLeft:
		return "left"
	case ScrollRight:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}
