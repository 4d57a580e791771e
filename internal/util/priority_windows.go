//go:build windows

package util

import (
	"fmt"
	"log/slog"

	"golang.org/x/sys/windows"
)

// RaisePriority moves the process to the high priority class so input
// handling is scheduled promptly under load.
func RaisePriority(logger *slog.Logger) error {
	h := windows.CurrentProcess()
	before, err := windows.GetPriorityClass(h)
	if err != nil {
		return fmt.Errorf("get priority class: %w", err)
	}
	if err := windows.SetPriorityClass(h, windows.HIGH_PRIORITY_CLASS); err != nil {
		return fmt.Errorf("set priority class: %w", err)
	}
	logger.Debug("raised process priority", "before", before)
	return nil
}
