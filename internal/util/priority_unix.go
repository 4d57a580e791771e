//go:build unix

package util

import (
	"fmt"
	"log/slog"

	"golang.org/x/sys/unix"
)

// HighNice is the niceness RaisePriority asks for. Values below zero need
// root.
const HighNice = -10

// RaisePriority lowers the process niceness so the event-tap thread is
// scheduled promptly under load.
func RaisePriority(logger *slog.Logger) error {
	before, err := unix.Getpriority(unix.PRIO_PROCESS, 0)
	if err != nil {
		return fmt.Errorf("get priority: %w", err)
	}
	if err := unix.Setpriority(unix.PRIO_PROCESS, 0, HighNice); err != nil {
		return fmt.Errorf("set priority %d: %w", HighNice, err)
	}
	logger.Debug("raised process priority", "before", before, "nice", HighNice)
	return nil
}
