package native

import "github.com/Alia5/keygrab/keys"

// keyPairs is the bijective part of the Key <-> OsCode mapping.
var keyPairs = []struct {
	key  Key
	code keys.OsCode
}{
	{Alt, keys.KeyLeftAlt},
	{AltGr, keys.KeyRightAlt},
	{Backspace, keys.KeyBackspace},
	{CapsLock, keys.KeyCapsLock},
	{ControlLeft, keys.KeyLeftCtrl},
	{ControlRight, keys.KeyRightCtrl},
	{Delete, keys.KeyDelete},
	{DownArrow, keys.KeyDown},
	{End, keys.KeyEnd},
	{Escape, keys.KeyEsc},
	{F1, keys.KeyF1},
	{F2, keys.KeyF2},
	{F3, keys.KeyF3},
	{F4, keys.KeyF4},
	{F5, keys.KeyF5},
	{F6, keys.KeyF6},
	{F7, keys.KeyF7},
	{F8, keys.KeyF8},
	{F9, keys.KeyF9},
	{F10, keys.KeyF10},
	{F11, keys.KeyF11},
	{F12, keys.KeyF12},
	{F13, keys.KeyF13},
	{F14, keys.KeyF14},
	{F15, keys.KeyF15},
	{Home, keys.KeyHome},
	{LeftArrow, keys.KeyLeft},
	{MetaLeft, keys.KeyLeftMeta},
	{MetaRight, keys.KeyRightMeta},
	{PageDown, keys.KeyPageDown},
	{PageUp, keys.KeyPageUp},
	{Return, keys.KeyEnter},
	{RightArrow, keys.KeyRight},
	{ShiftLeft, keys.KeyLeftShift},
	{ShiftRight, keys.KeyRightShift},
	{Space, keys.KeySpace},
	{Tab, keys.KeyTab},
	{UpArrow, keys.KeyUp},
	{PrintScreen, keys.KeySysRq},
	{ScrollLock, keys.KeyScrollLock},
	{Pause, keys.KeyPause},
	{NumLock, keys.KeyNumLock},
	{BackQuote, keys.KeyGrave},
	{Num1, keys.Key1},
	{Num2, keys.Key2},
	{Num3, keys.Key3},
	{Num4, keys.Key4},
	{Num5, keys.Key5},
	{Num6, keys.Key6},
	{Num7, keys.Key7},
	{Num8, keys.Key8},
	{Num9, keys.Key9},
	{Num0, keys.Key0},
	{Minus, keys.KeyMinus},
	{Equal, keys.KeyEqual},
	{KeyQ, keys.KeyQ},
	{KeyW, keys.KeyW},
	{KeyE, keys.KeyE},
	{KeyR, keys.KeyR},
	{KeyT, keys.KeyT},
	{KeyY, keys.KeyY},
	{KeyU, keys.KeyU},
	{KeyI, keys.KeyI},
	{KeyO, keys.KeyO},
	{KeyP, keys.KeyP},
	{LeftBracket, keys.KeyLeftBrace},
	{RightBracket, keys.KeyRightBrace},
	{KeyA, keys.KeyA},
	{KeyS, keys.KeyS},
	{KeyD, keys.KeyD},
	{KeyF, keys.KeyF},
	{KeyG, keys.KeyG},
	{KeyH, keys.KeyH},
	{KeyJ, keys.KeyJ},
	{KeyK, keys.KeyK},
	{KeyL, keys.KeyL},
	{SemiColon, keys.KeySemicolon},
	{Quote, keys.KeyApostrophe},
	{BackSlash, keys.KeyBackslash},
	{IntlBackslash, keys.Key102nd},
	{KeyZ, keys.KeyZ},
	{KeyX, keys.KeyX},
	{KeyC, keys.KeyC},
	{KeyV, keys.KeyV},
	{KeyB, keys.KeyB},
	{KeyN, keys.KeyN},
	{KeyM, keys.KeyM},
	{Comma, keys.KeyComma},
	{Dot, keys.KeyDot},
	{Slash, keys.KeySlash},
	{Insert, keys.KeyInsert},
	{KpMinus, keys.KeyKpMinus},
	{KpPlus, keys.KeyKpPlus},
	{KpMultiply, keys.KeyKpAsterisk},
	{KpDivide, keys.KeyKpSlash},
	{KpEqual, keys.KeyKpEqual},
	{Kp0, keys.KeyKp0},
	{Kp1, keys.KeyKp1},
	{Kp2, keys.KeyKp2},
	{Kp3, keys.KeyKp3},
	{Kp4, keys.KeyKp4},
	{Kp5, keys.KeyKp5},
	{Kp6, keys.KeyKp6},
	{Kp7, keys.KeyKp7},
	{Kp8, keys.KeyKp8},
	{Kp9, keys.KeyKp9},
	{VolumeUp, keys.KeyVolumeUp},
	{VolumeDown, keys.KeyVolumeDown},
	{VolumeMute, keys.KeyMute},
}

var (
	toCanonical = map[Key]keys.OsCode{
		// Keypad Enter and keypad Delete fold into their main-block
		// counterparts on the way in.
		KpReturn: keys.KeyEnter,
		KpDelete: keys.KeyDelete,
	}
	toNative = map[keys.OsCode]Key{
		keys.KeyKpEnter: KpReturn,
		keys.KeyKpDot:   KpDelete,
		keys.KeyFn:      Function,
	}
)

func init() {
	for _, p := range keyPairs {
		toCanonical[p.key] = p.code
		toNative[p.code] = p.key
	}
}

// FromNative maps a native key to its canonical code. Function and Unknown
// keys have no canonical code.
func FromNative(k Key) (keys.OsCode, bool) {
	c, ok := toCanonical[k]
	return c, ok
}

// ToNative maps a canonical code to the native key that produces it, or
// KeyUnknownSentinel when there is none (pointer buttons, KEY_NUMERIC_*,
// KEY_COMPOSE).
func ToNative(c keys.OsCode) Key {
	if k, ok := toNative[c]; ok {
		return k
	}
	return KeyUnknownSentinel
}
