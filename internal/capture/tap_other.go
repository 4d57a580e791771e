//go:build !darwin

package capture

import (
	"context"
	"log/slog"
)

// EventTap is only implemented on macOS.
type EventTap struct {
	logger *slog.Logger
}

func NewEventTap(logger *slog.Logger) *EventTap {
	return &EventTap{logger: logger}
}

// Run always fails with ErrUnsupported.
func (t *EventTap) Run(ctx context.Context, cb Callback) error {
	return ErrUnsupported
}
