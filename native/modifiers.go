package native

// SyntheticMarker is stamped on every event this process injects so the tap
// can recognise and pass them through. Stored in kCGEventSourceUserData.
const SyntheticMarker int64 = 0x6b677262 // "kgrb"

// Device-dependent modifier bits of CGEventFlags (NX_DEVICE*KEYMASK) and
// the two device-independent bits that have no side.
const (
	flagLeftCtrl    uint64 = 0x00000001
	flagLeftShift   uint64 = 0x00000002
	flagRightShift  uint64 = 0x00000004
	flagLeftCmd     uint64 = 0x00000008
	flagRightCmd    uint64 = 0x00000010
	flagLeftAlt     uint64 = 0x00000020
	flagRightAlt    uint64 = 0x00000040
	flagRightCtrl   uint64 = 0x00002000
	flagAlphaShift  uint64 = 0x00010000
	flagSecondaryFn uint64 = 0x00800000
)

var modifierMasks = map[Key]uint64{
	ControlLeft:  flagLeftCtrl,
	ShiftLeft:    flagLeftShift,
	ShiftRight:   flagRightShift,
	MetaLeft:     flagLeftCmd,
	MetaRight:    flagRightCmd,
	Alt:          flagLeftAlt,
	AltGr:        flagRightAlt,
	ControlRight: flagRightCtrl,
	CapsLock:     flagAlphaShift,
	Function:     flagSecondaryFn,
}

// IsModifier reports whether k only ever arrives as a flags-changed event.
func IsModifier(k Key) bool {
	_, ok := modifierMasks[k]
	return ok
}

// ModifierKind decides whether a flags-changed event for the modifier with
// virtual key code raw is a press or a release, given the event's flags.
// ok is false when raw is not a modifier.
func ModifierKind(raw uint16, flags uint64) (kind EventKind, ok bool) {
	k, named := FromRawScanCode(raw)
	if !named {
		return 0, false
	}
	mask, isMod := modifierMasks[k]
	if !isMod {
		return 0, false
	}
	if flags&mask != 0 {
		return KeyPress, true
	}
	return KeyRelease, true
}

// ModifierFlag returns the flag bit set while k is held, for building the
// flags of injected modifier events.
func ModifierFlag(k Key) uint64 {
	return modifierMasks[k]
}

// Device-independent CGEventFlags bits.
const (
	maskShift     uint64 = 0x00020000
	maskControl   uint64 = 0x00040000
	maskAlternate uint64 = 0x00080000
	maskCommand   uint64 = 0x00100000
)

// ModifierState tracks the modifiers held by injected events so each new
// event can carry consistent flags. Not safe for concurrent use.
type ModifierState struct {
	device uint64
}

// Update records a key transition. Non-modifier keys are ignored.
func (s *ModifierState) Update(k Key, down bool) {
	mask, ok := modifierMasks[k]
	if !ok {
		return
	}
	if down {
		s.device |= mask
	} else {
		s.device &^= mask
	}
}

// Flags returns the CGEventFlags for the current state, device-dependent
// and device-independent bits combined.
func (s *ModifierState) Flags() uint64 {
	return s.Combine(0)
}

// Combine merges the injected modifiers into physical, the flags the HID
// system reports for keys the user is holding. Physical bits are never
// cleared.
func (s *ModifierState) Combine(physical uint64) uint64 {
	f := physical | s.device
	if f&(flagLeftShift|flagRightShift) != 0 {
		f |= maskShift
	}
	if f&(flagLeftCtrl|flagRightCtrl) != 0 {
		f |= maskControl
	}
	if f&(flagLeftAlt|flagRightAlt) != 0 {
		f |= maskAlternate
	}
	if f&(flagLeftCmd|flagRightCmd) != 0 {
		f |= maskCommand
	}
	return f
}
