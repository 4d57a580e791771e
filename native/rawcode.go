package native

import "github.com/Alia5/keygrab/keys"

// macOS virtual key codes (Carbon kVK_* constants).
var rawCodes = map[Key]uint16{
	KeyA:          0,
	KeyS:          1,
	KeyD:          2,
	KeyF:          3,
	KeyH:          4,
	KeyG:          5,
	KeyZ:          6,
	KeyX:          7,
	KeyC:          8,
	KeyV:          9,
	IntlBackslash: 10,
	KeyB:          11,
	KeyQ:          12,
	KeyW:          13,
	KeyE:          14,
	KeyR:          15,
	KeyY:          16,
	KeyT:          17,
	Num1:          18,
	Num2:          19,
	Num3:          20,
	Num4:          21,
	Num6:          22,
	Num5:          23,
	Equal:         24,
	Num9:          25,
	Num7:          26,
	Minus:         27,
	Num8:          28,
	Num0:          29,
	RightBracket:  30,
	KeyO:          31,
	KeyU:          32,
	LeftBracket:   33,
	KeyI:          34,
	KeyP:          35,
	Return:        36,
	KeyL:          37,
	KeyJ:          38,
	Quote:         39,
	KeyK:          40,
	SemiColon:     41,
	BackSlash:     42,
	Comma:         43,
	Slash:         44,
	KeyN:          45,
	KeyM:          46,
	Dot:           47,
	Tab:           48,
	Space:         49,
	BackQuote:     50,
	Backspace:     51,
	Escape:        53,
	MetaRight:     54,
	MetaLeft:      55,
	ShiftLeft:     56,
	CapsLock:      57,
	Alt:           58,
	ControlLeft:   59,
	ShiftRight:    60,
	AltGr:         61,
	ControlRight:  62,
	Function:      63,

	KpDelete:   65,
	KpMultiply: 67,
	KpPlus:     69,
	NumLock:    71,
	VolumeUp:   72,
	VolumeDown: 73,
	VolumeMute: 74,
	KpDivide:   75,
	KpReturn:   76,
	KpMinus:    78,
	KpEqual:    81,
	Kp0:        82,
	Kp1:        83,
	Kp2:        84,
	Kp3:        85,
	Kp4:        86,
	Kp5:        87,
	Kp6:        88,
	Kp7:        89,
	Kp8:        91,
	Kp9:        92,

	F5:         96,
	F6:         97,
	F7:         98,
	F3:         99,
	F8:         100,
	F9:         101,
	F11:        103,
	F13:        105,
	F14:        107,
	F10:        109,
	F12:        111,
	F15:        113,
	Insert:     114,
	Home:       115,
	PageUp:     116,
	Delete:     117,
	F4:         118,
	End:        119,
	F2:         120,
	PageDown:   121,
	F1:         122,
	LeftArrow:  123,
	RightArrow: 124,
	DownArrow:  125,
	UpArrow:    126,
}

var fromRawCodes = make(map[uint16]Key, len(rawCodes))

func init() {
	for k, c := range rawCodes {
		fromRawCodes[c] = k
	}
}

// RawScanCode returns the macOS virtual key code of k. Unknown keys carry
// their code through. ok is false for named keys Apple keyboards do not
// have (PrintScreen, ScrollLock, Pause).
func RawScanCode(k Key) (uint16, bool) {
	if c, ok := k.UnknownCode(); ok {
		return c, true
	}
	c, ok := rawCodes[k]
	return c, ok
}

// FromRawScanCode names a macOS virtual key code. ok is false for codes
// without a named key; callers wrap those with Unknown.
func FromRawScanCode(code uint16) (Key, bool) {
	k, ok := fromRawCodes[code]
	return k, ok
}

// KeyFromRaw is FromRawScanCode with unnamed codes wrapped in Unknown.
func KeyFromRaw(code uint16) Key {
	if k, ok := fromRawCodes[code]; ok {
		return k
	}
	return Unknown(code)
}

// rawCanonical is the direct virtual-key-code table used where only the
// numeric code is known. It deliberately differs from FromNative: the arrow
// keys left and right land on the pointer buttons, the number row on the
// KEY_NUMERIC_* block and back-quote on KEY_APOSTROPHE.
var rawCanonical = map[uint16]keys.OsCode{
	58:  keys.KeyLeftAlt,
	61:  keys.KeyRightAlt,
	51:  keys.KeyBackspace,
	57:  keys.KeyCapsLock,
	59:  keys.KeyLeftCtrl,
	125: keys.KeyDown,
	53:  keys.KeyEsc,
	122: keys.KeyF1,
	120: keys.KeyF2,
	99:  keys.KeyF3,
	118: keys.KeyF4,
	96:  keys.KeyF5,
	97:  keys.KeyF6,
	98:  keys.KeyF7,
	100: keys.KeyF8,
	101: keys.KeyF9,
	109: keys.KeyF10,
	103: keys.KeyF11,
	111: keys.KeyF12,
	123: keys.BtnLeft,
	55:  keys.KeyLeftMeta,
	54:  keys.KeyRightMeta,
	36:  keys.KeyEnter,
	124: keys.BtnRight,
	56:  keys.KeyLeftShift,
	60:  keys.KeyRightShift,
	49:  keys.KeySpace,
	48:  keys.KeyTab,
	126: keys.KeyUp,
	50:  keys.KeyApostrophe,
	18:  keys.KeyNumeric1,
	19:  keys.KeyNumeric2,
	20:  keys.KeyNumeric3,
	21:  keys.KeyNumeric4,
	23:  keys.KeyNumeric5,
	22:  keys.KeyNumeric6,
	26:  keys.KeyNumeric7,
	28:  keys.KeyNumeric8,
	25:  keys.KeyNumeric9,
	29:  keys.KeyNumeric0,
	27:  keys.KeyMinus,
	24:  keys.KeyEqual,
	12:  keys.KeyQ,
	13:  keys.KeyW,
	14:  keys.KeyE,
	15:  keys.KeyR,
	17:  keys.KeyT,
	16:  keys.KeyY,
	32:  keys.KeyU,
	34:  keys.KeyI,
	31:  keys.KeyO,
	35:  keys.KeyP,
	33:  keys.KeyLeftBrace,
	30:  keys.KeyRightBrace,
	0:   keys.KeyA,
	1:   keys.KeyS,
	2:   keys.KeyD,
	3:   keys.KeyF,
	5:   keys.KeyG,
	4:   keys.KeyH,
	38:  keys.KeyJ,
	40:  keys.KeyK,
	37:  keys.KeyL,
	41:  keys.KeySemicolon,
	39:  keys.KeyApostrophe,
	42:  keys.KeyBackslash,
	6:   keys.KeyZ,
	7:   keys.KeyX,
	8:   keys.KeyC,
	9:   keys.KeyV,
	11:  keys.KeyB,
	45:  keys.KeyN,
	46:  keys.KeyM,
	43:  keys.KeyComma,
	47:  keys.KeyDot,
	44:  keys.KeySlash,
	63:  keys.KeyFn,
}

// CanonicalFromRaw maps a virtual key code straight to the canonical space.
func CanonicalFromRaw(code uint16) (keys.OsCode, bool) {
	c, ok := rawCanonical[code]
	return c, ok
}
