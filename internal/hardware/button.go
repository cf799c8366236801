package hardware

import (
	"context"
	"sync"
)

// VirtualButton is a push button pressed in software (HTTP activation or auto-activate).
type VirtualButton struct {
	once    sync.Once
	pressed chan struct{}
}

func NewVirtualButton() *VirtualButton {
	return &VirtualButton{pressed: make(chan struct{})}
}

// Press releases every current and future WaitPressed call. Extra presses are ignored.
func (b *VirtualButton) Press() {
	b.once.Do(func() { close(b.pressed) })
}

// IsPressed reports whether Press has been called.
func (b *VirtualButton) IsPressed() bool {
	select {
	case <-b.pressed:
		return true
	default:
		return false
	}
}

func (b *VirtualButton) WaitPressed(ctx context.Context) error {
	select {
	case <-b.pressed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ Button = (*VirtualButton)(nil)
