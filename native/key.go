// Package native models the key, button and event identities reported by the
// macOS event tap, and translates them to and from the canonical keys.OsCode
// space.
//
// Three code spaces meet here: Key, the named identity the tap reports; the
// raw macOS virtual key code (kVK_*) carried in the event; and keys.OsCode.
package native

import "fmt"

// Key is a named native key identity. Keys the tap cannot name are carried as
// Unknown(code) with the raw virtual key code preserved.
type Key uint32

const unknownBit Key = 1 << 31

const (
	Alt Key = iota + 1
	AltGr
	Backspace
	CapsLock
	ControlLeft
	ControlRight
	Delete
	DownArrow
	End
	Escape
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
	F13
	F14
	F15
	Home
	LeftArrow
	MetaLeft
	MetaRight
	PageDown
	PageUp
	Return
	RightArrow
	ShiftLeft
	ShiftRight
	Space
	Tab
	UpArrow
	PrintScreen
	ScrollLock
	Pause
	NumLock
	BackQuote
	Num1
	Num2
	Num3
	Num4
	Num5
	Num6
	Num7
	Num8
	Num9
	Num0
	Minus
	Equal
	KeyQ
	KeyW
	KeyE
	KeyR
	KeyT
	KeyY
	KeyU
	KeyI
	KeyO
	KeyP
	LeftBracket
	RightBracket
	KeyA
	KeyS
	KeyD
	KeyF
	KeyG
	KeyH
	KeyJ
	KeyK
	KeyL
	SemiColon
	Quote
	BackSlash
	IntlBackslash
	KeyZ
	KeyX
	KeyC
	KeyV
	KeyB
	KeyN
	KeyM
	Comma
	Dot
	Slash
	Insert
	KpReturn
	KpMinus
	KpPlus
	KpMultiply
	KpDivide
	KpEqual
	Kp0
	Kp1
	Kp2
	Kp3
	Kp4
	Kp5
	Kp6
	Kp7
	Kp8
	Kp9
	KpDelete
	Function
	VolumeUp
	VolumeDown
	VolumeMute

	lastKey
)

// KeyUnknownSentinel is what ToNative returns for canonical codes that have
// no native key. Output treats it as a no-op.
const KeyUnknownSentinel = unknownBit

// Unknown wraps a raw virtual key code the tap could not name.
func Unknown(code uint16) Key {
	return unknownBit | Key(code)
}

// IsUnknown reports whether k carries a raw code instead of a name.
func (k Key) IsUnknown() bool {
	return k&unknownBit != 0
}

// UnknownCode returns the raw code carried by an Unknown key.
func (k Key) UnknownCode() (uint16, bool) {
	if !k.IsUnknown() {
		return 0, false
	}
	return uint16(k &^ unknownBit), true
}

var keyNames = map[Key]string{
	Alt:           "Alt",
	AltGr:         "AltGr",
	Backspace:     "Backspace",
	CapsLock:      "CapsLock",
	ControlLeft:   "ControlLeft",
	ControlRight:  "ControlRight",
	Delete:        "Delete",
	DownArrow:     "DownArrow",
	End:           "End",
	Escape:        "Escape",
	F1:            "F1",
	F2:            "F2",
	F3:            "F3",
	F4:            "F4",
	F5:            "F5",
	F6:            "F6",
	F7:            "F7",
	F8:            "F8",
	F9:            "F9",
	F10:           "F10",
	F11:           "F11",
	F12:           "F12",
	F13:           "F13",
	F14:           "F14",
	F15:           "F15",
	Home:          "Home",
	LeftArrow:     "LeftArrow",
	MetaLeft:      "MetaLeft",
	MetaRight:     "MetaRight",
	PageDown:      "PageDown",
	PageUp:        "PageUp",
	Return:        "Return",
	RightArrow:    "RightArrow",
	ShiftLeft:     "ShiftLeft",
	ShiftRight:    "ShiftRight",
	Space:         "Space",
	Tab:           "Tab",
	UpArrow:       "UpArrow",
	PrintScreen:   "PrintScreen",
	ScrollLock:    "ScrollLock",
	Pause:         "Pause",
	NumLock:       "NumLock",
	BackQuote:     "BackQuote",
	Num1:          "Num1",
	Num2:          "Num2",
	Num3:          "Num3",
	Num4:          "Num4",
	Num5:          "Num5",
	Num6:          "Num6",
	Num7:          "Num7",
	Num8:          "Num8",
	Num9:          "Num9",
	Num0:          "Num0",
	Minus:         "Minus",
	Equal:         "Equal",
	KeyQ:          "KeyQ",
	KeyW:          "KeyW",
	KeyE:          "KeyE",
	KeyR:          "KeyR",
	KeyT:          "KeyT",
	KeyY:          "KeyY",
	KeyU:          "KeyU",
	KeyI:          "KeyI",
	KeyO:          "KeyO",
	KeyP:          "KeyP",
	LeftBracket:   "LeftBracket",
	RightBracket:  "RightBracket",
	KeyA:          "KeyA",
	KeyS:          "KeyS",
	KeyD:          "KeyD",
	KeyF:          "KeyF",
	KeyG:          "KeyG",
	KeyH:          "KeyH",
	KeyJ:          "KeyJ",
	KeyK:          "KeyK",
	KeyL:          "KeyL",
	SemiColon:     "SemiColon",
	Quote:         "Quote",
	BackSlash:     "BackSlash",
	IntlBackslash: "IntlBackslash",
	KeyZ:          "KeyZ",
	KeyX:          "KeyX",
	KeyC:          "KeyC",
	KeyV:          "KeyV",
	KeyB:          "KeyB",
	KeyN:          "KeyN",
	KeyM:          "KeyM",
	Comma:         "Comma",
	Dot:           "Dot",
	Slash:         "Slash",
	Insert:        "Insert",
	KpReturn:      "KpReturn",
	KpMinus:       "KpMinus",
	KpPlus:        "KpPlus",
	KpMultiply:    "KpMultiply",
	KpDivide:      "KpDivide",
	KpEqual:       "KpEqual",
	Kp0:           "Kp0",
	Kp1:           "Kp1",
	Kp2:           "Kp2",
	Kp3:           "Kp3",
	Kp4:           "Kp4",
	Kp5:           "Kp5",
	Kp6:           "Kp6",
	Kp7:           "Kp7",
	Kp8:           "Kp8",
	Kp9:           "Kp9",
	KpDelete:      "KpDelete",
	Function:      "Function",
	VolumeUp:      "VolumeUp",
	VolumeDown:    "VolumeDown",
	VolumeMute:    "VolumeMute",
}

func (k Key) String() string {
	if code, ok := k.UnknownCode(); ok {
		return fmt.Sprintf("Unknown(%d)", code)
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", uint32(k))
}

// NamedKeys returns every named key in declaration order.
func NamedKeys() []Key {
	out := make([]Key, 0, lastKey-1)
	for k := Alt; k < lastKey; k++ {
		out = append(out, k)
	}
	return out
}

// Button is a native pointer button.
type Button uint8

const (
	ButtonLeft Button = iota + 1
	ButtonRight
	ButtonMiddle

	buttonUnknownBase Button = 0x80
)

// UnknownButton is a numbered button the tap does not name. n is the
// CoreGraphics button number (3 = back, 4 = forward on most mice).
func UnknownButton(n uint8) Button {
	return buttonUnknownBase | Button(n&0x7f)
}

// Number returns the CoreGraphics button number.
func (b Button) Number() uint8 {
	switch b {
	case ButtonLeft:
		return 0
	case ButtonRight:
		return 1
	case ButtonMiddle:
		return 2
	}
	return uint8(b &^ buttonUnknownBase)
}

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "Left"
	case ButtonRight:
		return "Right"
	case ButtonMiddle:
		return "Middle"
	}
	return fmt.Sprintf("Unknown(%d)", b.Number())
}
