//go:build !darwin

package output

import (
	"fmt"

	"github.com/Alia5/keygrab/native"
)

// CGInjector is only implemented on macOS. Elsewhere every call fails.
type CGInjector struct{}

func NewInjector() (*CGInjector, error) {
	return nil, ErrUnsupported
}

func (i *CGInjector) Close() error { return nil }

func (i *CGInjector) Inject(ev native.Event) error {
	return fmt.Errorf("inject %s: %w", ev, ErrUnsupported)
}
