//go:build darwin

package output

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation -framework ApplicationServices
#include <CoreGraphics/CoreGraphics.h>
#include <CoreFoundation/CoreFoundation.h>

static CGPoint keygrabCursor(void) {
	CGEventRef event = CGEventCreate(NULL);
	CGPoint cursor = CGEventGetLocation(event);
	CFRelease(event);
	return cursor;
}

static void keygrabPost(CGEventRef event, int64_t marker) {
	CGEventSetIntegerValueField(event, kCGEventSourceUserData, marker);
	CGEventPost(kCGHIDEventTap, event);
	CFRelease(event);
}

static int keygrabPostKey(CGEventSourceRef src, CGKeyCode code, bool down, CGEventFlags flags, int64_t marker) {
	CGEventRef event = CGEventCreateKeyboardEvent(src, code, down);
	if (!event) {
		return -1;
	}
	CGEventSetFlags(event, CGEventGetFlags(event) | flags);
	keygrabPost(event, marker);
	return 0;
}

static int keygrabPostButton(CGEventSourceRef src, int button, bool down, int64_t marker) {
	CGEventType type;
	CGMouseButton cgButton = (CGMouseButton)button;
	switch (button) {
	case 0:
		type = down ? kCGEventLeftMouseDown : kCGEventLeftMouseUp;
		break;
	case 1:
		type = down ? kCGEventRightMouseDown : kCGEventRightMouseUp;
		break;
	default:
		type = down ? kCGEventOtherMouseDown : kCGEventOtherMouseUp;
		break;
	}
	CGEventRef event = CGEventCreateMouseEvent(src, type, keygrabCursor(), cgButton);
	if (!event) {
		return -1;
	}
	CGEventSetIntegerValueField(event, kCGMouseEventButtonNumber, button);
	keygrabPost(event, marker);
	return 0;
}

static int keygrabPostMove(CGEventSourceRef src, double x, double y, int64_t marker) {
	CGEventRef event = CGEventCreateMouseEvent(src, kCGEventMouseMoved, CGPointMake(x, y), kCGMouseButtonLeft);
	if (!event) {
		return -1;
	}
	keygrabPost(event, marker);
	return 0;
}

static int keygrabPostScroll(CGEventSourceRef src, int32_t dy, int32_t dx, int64_t marker) {
	CGEventRef event = CGEventCreateScrollWheelEvent(src, kCGScrollEventUnitLine, 2, dy, dx);
	if (!event) {
		return -1;
	}
	keygrabPost(event, marker);
	return 0;
}

static int keygrabPostUnicode(CGEventSourceRef src, const UniChar *chars, int n, int64_t marker) {
	for (int i = 0; i < 2; i++) {
		CGEventRef event = CGEventCreateKeyboardEvent(src, 0, i == 0);
		if (!event) {
			return -1;
		}
		CGEventKeyboardSetUnicodeString(event, n, chars);
		keygrabPost(event, marker);
	}
	return 0;
}
*/
import "C"

import (
	"errors"
	"fmt"
	"sync"
	"unicode/utf16"

	"github.com/Alia5/keygrab/native"
)

var errCreateEvent = errors.New("CoreGraphics refused to create event")

// CGInjector posts events with CGEventPost at the HID level. Every event is
// stamped with native.SyntheticMarker so the capture tap lets it through.
type CGInjector struct {
	mu     sync.Mutex
	source C.CGEventSourceRef
	mods   native.ModifierState
}

// NewInjector creates an injector backed by a HID-system-state event
// source.
func NewInjector() (*CGInjector, error) {
	src := C.CGEventSourceCreate(C.kCGEventSourceStateHIDSystemState)
	if src == 0 {
		return nil, fmt.Errorf("create event source: %w", errCreateEvent)
	}
	return &CGInjector{source: src}, nil
}

// Close releases the event source.
func (i *CGInjector) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.source != 0 {
		C.CFRelease(C.CFTypeRef(i.source))
		i.source = 0
	}
	return nil
}

func (i *CGInjector) Inject(ev native.Event) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	marker := C.int64_t(native.SyntheticMarker)
	var rc C.int
	switch ev.Kind {
	case native.KeyPress, native.KeyRelease:
		raw, ok := native.RawScanCode(ev.Key)
		if !ok {
			return fmt.Errorf("no virtual key code for %s", ev.Key)
		}
		down := ev.Kind == native.KeyPress
		i.mods.Update(ev.Key, down)
		physical := uint64(C.CGEventSourceFlagsState(C.kCGEventSourceStateHIDSystemState))
		flags := i.mods.Combine(physical)
		rc = C.keygrabPostKey(i.source, C.CGKeyCode(raw), C.bool(down), C.CGEventFlags(flags), marker)
	case native.ButtonPress, native.ButtonRelease:
		rc = C.keygrabPostButton(i.source, C.int(ev.Button.Number()), C.bool(ev.Kind == native.ButtonPress), marker)
	case native.Wheel:
		rc = C.keygrabPostScroll(i.source, C.int32_t(ev.DeltaY), C.int32_t(-ev.DeltaX), marker)
	case native.MouseMove:
		rc = C.keygrabPostMove(i.source, C.double(ev.X), C.double(ev.Y), marker)
	default:
		return fmt.Errorf("cannot inject %s", ev.Kind)
	}
	if rc != 0 {
		return errCreateEvent
	}
	return nil
}

// InjectUnicode types r regardless of the active keyboard layout.
func (i *CGInjector) InjectUnicode(r rune) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	units := utf16.Encode([]rune{r})
	if len(units) == 0 {
		return nil
	}
	chars := make([]C.UniChar, len(units))
	for j, u := range units {
		chars[j] = C.UniChar(u)
	}
	if C.keygrabPostUnicode(i.source, &chars[0], C.int(len(chars)), C.int64_t(native.SyntheticMarker)) != 0 {
		return errCreateEvent
	}
	return nil
}
