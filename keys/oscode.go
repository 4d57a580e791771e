// Package keys defines the platform-independent key vocabulary shared by the
// capture pipeline, the remapper and the output path.
//
// OsCode values are Linux input-event codes. Every backend translates its
// native key identities into this space before anything above the platform
// boundary sees them.
package keys

import (
	"fmt"
	"sort"
	"strings"
)

// OsCode identifies a physical key or pointer button.
type OsCode uint16

// Canonical codes. The set is closed: All returns every member.
const (
	KeyEsc        = OsCode(1)
	Key1          = OsCode(2)
	Key2          = OsCode(3)
	Key3          = OsCode(4)
	Key4          = OsCode(5)
	Key5          = OsCode(6)
	Key6          = OsCode(7)
	Key7          = OsCode(8)
	Key8          = OsCode(9)
	Key9          = OsCode(10)
	Key0          = OsCode(11)
	KeyMinus      = OsCode(12)
	KeyEqual      = OsCode(13)
	KeyBackspace  = OsCode(14)
	KeyTab        = OsCode(15)
	KeyQ          = OsCode(16)
	KeyW          = OsCode(17)
	KeyE          = OsCode(18)
	KeyR          = OsCode(19)
	KeyT          = OsCode(20)
	KeyY          = OsCode(21)
	KeyU          = OsCode(22)
	KeyI          = OsCode(23)
	KeyO          = OsCode(24)
	KeyP          = OsCode(25)
	KeyLeftBrace  = OsCode(26)
	KeyRightBrace = OsCode(27)
	KeyEnter      = OsCode(28)
	KeyLeftCtrl   = OsCode(29)
	KeyA          = OsCode(30)
	KeyS          = OsCode(31)
	KeyD          = OsCode(32)
	KeyF          = OsCode(33)
	KeyG          = OsCode(34)
	KeyH          = OsCode(35)
	KeyJ          = OsCode(36)
	KeyK          = OsCode(37)
	KeyL          = OsCode(38)
	KeySemicolon  = OsCode(39)
	KeyApostrophe = OsCode(40)
	KeyGrave      = OsCode(41)
	KeyLeftShift  = OsCode(42)
	KeyBackslash  = OsCode(43)
	KeyZ          = OsCode(44)
	KeyX          = OsCode(45)
	KeyC          = OsCode(46)
	KeyV          = OsCode(47)
	KeyB          = OsCode(48)
	KeyN          = OsCode(49)
	KeyM          = OsCode(50)
	KeyComma      = OsCode(51)
	KeyDot        = OsCode(52)
	KeySlash      = OsCode(53)
	KeyRightShift = OsCode(54)
	KeyKpAsterisk = OsCode(55)
	KeyLeftAlt    = OsCode(56)
	KeySpace      = OsCode(57)
	KeyCapsLock   = OsCode(58)
	KeyF1         = OsCode(59)
	KeyF2         = OsCode(60)
	KeyF3         = OsCode(61)
	KeyF4         = OsCode(62)
	KeyF5         = OsCode(63)
	KeyF6         = OsCode(64)
	KeyF7         = OsCode(65)
	KeyF8         = OsCode(66)
	KeyF9         = OsCode(67)
	KeyF10        = OsCode(68)
	KeyNumLock    = OsCode(69)
	KeyScrollLock = OsCode(70)
	KeyKp7        = OsCode(71)
	KeyKp8        = OsCode(72)
	KeyKp9        = OsCode(73)
	KeyKpMinus    = OsCode(74)
	KeyKp4        = OsCode(75)
	KeyKp5        = OsCode(76)
	KeyKp6        = OsCode(77)
	KeyKpPlus     = OsCode(78)
	KeyKp1        = OsCode(79)
	KeyKp2        = OsCode(80)
	KeyKp3        = OsCode(81)
	KeyKp0        = OsCode(82)
	KeyKpDot      = OsCode(83)
	Key102nd      = OsCode(86)
	KeyF11        = OsCode(87)
	KeyF12        = OsCode(88)
	KeyKpEnter    = OsCode(96)
	KeyRightCtrl  = OsCode(97)
	KeyKpSlash    = OsCode(98)
	KeySysRq      = OsCode(99)
	KeyRightAlt   = OsCode(100)
	KeyHome       = OsCode(102)
	KeyUp         = OsCode(103)
	KeyPageUp     = OsCode(104)
	KeyLeft       = OsCode(105)
	KeyRight      = OsCode(106)
	KeyEnd        = OsCode(107)
	KeyDown       = OsCode(108)
	KeyPageDown   = OsCode(109)
	KeyInsert     = OsCode(110)
	KeyDelete     = OsCode(111)
	KeyMute       = OsCode(113)
	KeyVolumeDown = OsCode(114)
	KeyVolumeUp   = OsCode(115)
	KeyKpEqual    = OsCode(117)
	KeyPause      = OsCode(119)
	KeyLeftMeta   = OsCode(125)
	KeyRightMeta  = OsCode(126)
	KeyCompose    = OsCode(127)
	KeyF13        = OsCode(183)
	KeyF14        = OsCode(184)
	KeyF15        = OsCode(185)
	KeyFn         = OsCode(0x1d0)
	KeyNumeric0   = OsCode(0x200)
	KeyNumeric1   = OsCode(0x201)
	KeyNumeric2   = OsCode(0x202)
	KeyNumeric3   = OsCode(0x203)
	KeyNumeric4   = OsCode(0x204)
	KeyNumeric5   = OsCode(0x205)
	KeyNumeric6   = OsCode(0x206)
	KeyNumeric7   = OsCode(0x207)
	KeyNumeric8   = OsCode(0x208)
	KeyNumeric9   = OsCode(0x209)

	BtnLeft   = OsCode(0x110)
	BtnRight  = OsCode(0x111)
	BtnMiddle = OsCode(0x112)
	BtnSide   = OsCode(0x113)
	BtnExtra  = OsCode(0x114)
)

// codeNames holds the evdev spelling of every canonical code.
var codeNames = map[OsCode]string{
	KeyEsc:   "KEY_ESC", Key1: "KEY_1", Key2: "KEY_2", Key3: "KEY_3", Key4: "KEY_4", Key5: "KEY_5",
	Key6:     "KEY_6", Key7: "KEY_7", Key8: "KEY_8", Key9: "KEY_9", Key0: "KEY_0",
	KeyMinus: "KEY_MINUS", KeyEqual: "KEY_EQUAL", KeyBackspace: "KEY_BACKSPACE", KeyTab: "KEY_TAB",

	KeyQ:         "KEY_Q", KeyW: "KEY_W", KeyE: "KEY_E", KeyR: "KEY_R", KeyT: "KEY_T", KeyY: "KEY_Y",
	KeyU:         "KEY_U", KeyI: "KEY_I", KeyO: "KEY_O", KeyP: "KEY_P",
	KeyLeftBrace: "KEY_LEFTBRACE", KeyRightBrace: "KEY_RIGHTBRACE", KeyEnter: "KEY_ENTER",
	KeyLeftCtrl:  "KEY_LEFTCTRL",

	KeyA:         "KEY_A", KeyS: "KEY_S", KeyD: "KEY_D", KeyF: "KEY_F", KeyG: "KEY_G", KeyH: "KEY_H",
	KeyJ:         "KEY_J", KeyK: "KEY_K", KeyL: "KEY_L",
	KeySemicolon: "KEY_SEMICOLON", KeyApostrophe: "KEY_APOSTROPHE", KeyGrave: "KEY_GRAVE",
	KeyLeftShift: "KEY_LEFTSHIFT", KeyBackslash: "KEY_BACKSLASH",

	KeyZ:          "KEY_Z", KeyX: "KEY_X", KeyC: "KEY_C", KeyV: "KEY_V", KeyB: "KEY_B", KeyN: "KEY_N",
	KeyM:          "KEY_M", KeyComma: "KEY_COMMA", KeyDot: "KEY_DOT", KeySlash: "KEY_SLASH",
	KeyRightShift: "KEY_RIGHTSHIFT", KeyKpAsterisk: "KEY_KPASTERISK", KeyLeftAlt: "KEY_LEFTALT",
	KeySpace:      "KEY_SPACE", KeyCapsLock: "KEY_CAPSLOCK",

	KeyF1:  "KEY_F1", KeyF2: "KEY_F2", KeyF3: "KEY_F3", KeyF4: "KEY_F4", KeyF5: "KEY_F5",
	KeyF6:  "KEY_F6", KeyF7: "KEY_F7", KeyF8: "KEY_F8", KeyF9: "KEY_F9", KeyF10: "KEY_F10",
	KeyF11: "KEY_F11", KeyF12: "KEY_F12", KeyF13: "KEY_F13", KeyF14: "KEY_F14", KeyF15: "KEY_F15",

	KeyNumLock: "KEY_NUMLOCK", KeyScrollLock: "KEY_SCROLLLOCK",
	KeyKp0:     "KEY_KP0", KeyKp1: "KEY_KP1", KeyKp2: "KEY_KP2", KeyKp3: "KEY_KP3", KeyKp4: "KEY_KP4",
	KeyKp5:     "KEY_KP5", KeyKp6: "KEY_KP6", KeyKp7: "KEY_KP7", KeyKp8: "KEY_KP8", KeyKp9: "KEY_KP9",
	KeyKpMinus: "KEY_KPMINUS", KeyKpPlus: "KEY_KPPLUS", KeyKpDot: "KEY_KPDOT",
	KeyKpEnter: "KEY_KPENTER", KeyKpSlash: "KEY_KPSLASH", KeyKpEqual: "KEY_KPEQUAL",

	Key102nd:    "KEY_102ND", KeyRightCtrl: "KEY_RIGHTCTRL", KeySysRq: "KEY_SYSRQ",
	KeyRightAlt: "KEY_RIGHTALT", KeyHome: "KEY_HOME", KeyUp: "KEY_UP", KeyPageUp: "KEY_PAGEUP",
	KeyLeft:     "KEY_LEFT", KeyRight: "KEY_RIGHT", KeyEnd: "KEY_END", KeyDown: "KEY_DOWN",
	KeyPageDown: "KEY_PAGEDOWN", KeyInsert: "KEY_INSERT", KeyDelete: "KEY_DELETE",
	KeyMute:     "KEY_MUTE", KeyVolumeDown: "KEY_VOLUMEDOWN", KeyVolumeUp: "KEY_VOLUMEUP",
	KeyPause:    "KEY_PAUSE", KeyLeftMeta: "KEY_LEFTMETA", KeyRightMeta: "KEY_RIGHTMETA",
	KeyCompose:  "KEY_COMPOSE", KeyFn: "KEY_FN",

	KeyNumeric0: "KEY_NUMERIC_0", KeyNumeric1: "KEY_NUMERIC_1", KeyNumeric2: "KEY_NUMERIC_2",
	KeyNumeric3: "KEY_NUMERIC_3", KeyNumeric4: "KEY_NUMERIC_4", KeyNumeric5: "KEY_NUMERIC_5",
	KeyNumeric6: "KEY_NUMERIC_6", KeyNumeric7: "KEY_NUMERIC_7", KeyNumeric8: "KEY_NUMERIC_8",
	KeyNumeric9: "KEY_NUMERIC_9",

	BtnLeft: "BTN_LEFT", BtnRight: "BTN_RIGHT", BtnMiddle: "BTN_MIDDLE",
	BtnSide: "BTN_SIDE", BtnExtra: "BTN_EXTRA",
}

// aliases are the short spellings accepted in configuration on top of the
// lower-cased evdev names.
var aliases = map[string]OsCode{
	"esc":    KeyEsc,
	"caps":   KeyCapsLock,
	"spc":    KeySpace,
	"ret":    KeyEnter,
	"bspc":   KeyBackspace,
	"del":    KeyDelete,
	"lctl":   KeyLeftCtrl,
	"rctl":   KeyRightCtrl,
	"lsft":   KeyLeftShift,
	"rsft":   KeyRightShift,
	"lalt":   KeyLeftAlt,
	"ralt":   KeyRightAlt,
	"lmet":   KeyLeftMeta,
	"rmet":   KeyRightMeta,
	"cmd":    KeyLeftMeta,
	"grv":    KeyGrave,
	"mouse1": BtnLeft,
	"mouse2": BtnRight,
	"mouse3": BtnMiddle,
}

var (
	allCodes  []OsCode
	fromNames map[string]OsCode
)

func init() {
	allCodes = make([]OsCode, 0, len(codeNames))
	fromNames = make(map[string]OsCode, 2*len(codeNames)+len(aliases))
	for c, name := range codeNames {
		allCodes = append(allCodes, c)
		lower := strings.ToLower(name)
		fromNames[lower] = c
		fromNames[strings.TrimPrefix(lower, "key_")] = c
	}
	for a, c := range aliases {
		fromNames[a] = c
	}
	sort.Slice(allCodes, func(i, j int) bool { return allCodes[i] < allCodes[j] })
}

// All returns every canonical code in ascending order.
func All() []OsCode {
	out := make([]OsCode, len(allCodes))
	copy(out, allCodes)
	return out
}

// IsValid reports whether c belongs to the canonical set.
func (c OsCode) IsValid() bool {
	_, ok := codeNames[c]
	return ok
}

func (c OsCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("OsCode(%d)", uint16(c))
}

// ParseOsCode resolves a configuration key name. It accepts evdev names in
// any case ("KEY_CAPSLOCK", "btn_left"), the name without the KEY_ prefix
// ("capslock") and a handful of short aliases ("esc", "lctl").
func ParseOsCode(s string) (OsCode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := fromNames[name]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("unknown key name %q", s)
}
