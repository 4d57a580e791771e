//go:build darwin

package capture

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation -framework ApplicationServices
#include <CoreGraphics/CoreGraphics.h>
#include <CoreFoundation/CoreFoundation.h>
#include <stdint.h>

CGEventRef keygrabTapCallback(CGEventTapProxy proxy, CGEventType type, CGEventRef event, void *refcon);

static CFMachPortRef keygrabCreateTap(uintptr_t refcon) {
	CGEventMask mask = CGEventMaskBit(kCGEventKeyDown) |
		CGEventMaskBit(kCGEventKeyUp) |
		CGEventMaskBit(kCGEventFlagsChanged) |
		CGEventMaskBit(kCGEventLeftMouseDown) |
		CGEventMaskBit(kCGEventLeftMouseUp) |
		CGEventMaskBit(kCGEventRightMouseDown) |
		CGEventMaskBit(kCGEventRightMouseUp) |
		CGEventMaskBit(kCGEventOtherMouseDown) |
		CGEventMaskBit(kCGEventOtherMouseUp) |
		CGEventMaskBit(kCGEventScrollWheel);
	return CGEventTapCreate(
		kCGSessionEventTap,
		kCGHeadInsertEventTap,
		kCGEventTapOptionDefault,
		mask,
		keygrabTapCallback,
		(void*)refcon
	);
}

static CFRunLoopSourceRef keygrabAddToRunLoop(CFMachPortRef tap) {
	CFRunLoopSourceRef source = CFMachPortCreateRunLoopSource(kCFAllocatorDefault, tap, 0);
	CFRunLoopAddSource(CFRunLoopGetCurrent(), source, kCFRunLoopCommonModes);
	CGEventTapEnable(tap, true);
	return source;
}

static void keygrabRemove(CFMachPortRef tap, CFRunLoopSourceRef source) {
	CGEventTapEnable(tap, false);
	CFRunLoopRemoveSource(CFRunLoopGetCurrent(), source, kCFRunLoopCommonModes);
	CFRelease(source);
	CFMachPortInvalidate(tap);
	CFRelease(tap);
}
*/
import "C"

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"runtime/cgo"
	"unsafe"

	"github.com/Alia5/keygrab/native"
)

// EventTap intercepts keyboard and pointer events with a CGEventTap at
// session level. The process needs the Accessibility (or Input Monitoring)
// permission.
type EventTap struct {
	logger *slog.Logger
}

func NewEventTap(logger *slog.Logger) *EventTap {
	return &EventTap{logger: logger}
}

type tapState struct {
	cb     Callback
	tap    C.CFMachPortRef
	logger *slog.Logger
}

// Run installs the tap on the calling goroutine's OS thread and services
// its run loop until ctx is done.
func (t *EventTap) Run(ctx context.Context, cb Callback) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	state := &tapState{cb: cb, logger: t.logger}
	handle := cgo.NewHandle(state)
	defer handle.Delete()

	tap := C.keygrabCreateTap(C.uintptr_t(handle))
	if tap == 0 {
		return errors.New("create event tap: permission denied (grant Accessibility access)")
	}
	state.tap = tap
	source := C.keygrabAddToRunLoop(tap)
	defer C.keygrabRemove(tap, source)

	loop := C.CFRunLoopGetCurrent()
	stop := context.AfterFunc(ctx, func() { C.CFRunLoopStop(loop) })
	defer stop()
	if err := ctx.Err(); err != nil {
		return err
	}

	t.logger.Info("event tap installed")
	C.CFRunLoopRun()
	t.logger.Info("event tap removed")
	return ctx.Err()
}

//export keygrabTapCallback
func keygrabTapCallback(proxy C.CGEventTapProxy, eventType C.CGEventType, event C.CGEventRef, refcon unsafe.Pointer) C.CGEventRef {
	state := cgo.Handle(uintptr(refcon)).Value().(*tapState)

	switch eventType {
	case C.kCGEventTapDisabledByTimeout, C.kCGEventTapDisabledByUserInput:
		state.logger.Warn("event tap disabled by the system, re-enabling", "type", int(eventType))
		C.CGEventTapEnable(state.tap, true)
		return event
	}

	ev, ok := toNative(eventType, event)
	if !ok {
		return event
	}
	if _, pass := state.cb(ev); !pass {
		return C.CGEventRef(0)
	}
	return event
}

func toNative(eventType C.CGEventType, event C.CGEventRef) (native.Event, bool) {
	var ev native.Event
	ev.Synthetic = int64(C.CGEventGetIntegerValueField(event, C.kCGEventSourceUserData)) == native.SyntheticMarker

	switch eventType {
	case C.kCGEventKeyDown, C.kCGEventKeyUp:
		raw := uint16(C.CGEventGetIntegerValueField(event, C.kCGKeyboardEventKeycode))
		ev.Kind = native.KeyRelease
		if eventType == C.kCGEventKeyDown {
			ev.Kind = native.KeyPress
		}
		ev.Key = native.KeyFromRaw(raw)

	case C.kCGEventFlagsChanged:
		raw := uint16(C.CGEventGetIntegerValueField(event, C.kCGKeyboardEventKeycode))
		kind, ok := native.ModifierKind(raw, uint64(C.CGEventGetFlags(event)))
		if !ok {
			return ev, false
		}
		ev.Kind = kind
		ev.Key = native.KeyFromRaw(raw)

	case C.kCGEventLeftMouseDown, C.kCGEventRightMouseDown, C.kCGEventOtherMouseDown:
		ev.Kind = native.ButtonPress
		ev.Button = buttonFromEvent(event)

	case C.kCGEventLeftMouseUp, C.kCGEventRightMouseUp, C.kCGEventOtherMouseUp:
		ev.Kind = native.ButtonRelease
		ev.Button = buttonFromEvent(event)

	case C.kCGEventScrollWheel:
		ev.Kind = native.Wheel
		ev.DeltaY = int64(C.CGEventGetIntegerValueField(event, C.kCGScrollWheelEventDeltaAxis1))
		ev.DeltaX = -int64(C.CGEventGetIntegerValueField(event, C.kCGScrollWheelEventDeltaAxis2))

	default:
		return ev, false
	}
	return ev, true
}

func buttonFromEvent(event C.CGEventRef) native.Button {
	switch n := uint8(C.CGEventGetIntegerValueField(event, C.kCGMouseEventButtonNumber)); n {
	case 0:
		return native.ButtonLeft
	case 1:
		return native.ButtonRight
	case 2:
		return native.ButtonMiddle
	default:
		return native.UnknownButton(n)
	}
}
