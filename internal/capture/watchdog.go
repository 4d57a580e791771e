package capture

import (
	"sync/atomic"

	"github.com/Alia5/keygrab/keys"
)

// ExitCombo is the hard-wired recovery chord. Holding all three keys
// terminates the daemon whether or not they are mapped.
var ExitCombo = [3]keys.OsCode{keys.KeyLeftCtrl, keys.KeySpace, keys.KeyEsc}

// Watchdog tracks the physical state of the ExitCombo keys.
type Watchdog struct {
	held   [len(ExitCombo)]atomic.Bool
	onExit func()
}

// NewWatchdog returns a Watchdog calling onExit once the combo is held.
func NewWatchdog(onExit func()) *Watchdog {
	return &Watchdog{onExit: onExit}
}

// Check records ev and fires onExit when every combo key is down. It
// reports whether it fired.
func (w *Watchdog) Check(ev keys.KeyEvent) bool {
	idx := -1
	for i, c := range ExitCombo {
		if c == ev.Code {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	switch ev.Value {
	case keys.Press:
		w.held[idx].Store(true)
	case keys.Release:
		w.held[idx].Store(false)
		return false
	default:
		return false
	}
	for i := range w.held {
		if !w.held[i].Load() {
			return false
		}
	}
	if w.onExit != nil {
		w.onExit()
	}
	return true
}
