// Package notify delivers the emergency notification.
package notify

import "context"

// Message is a plaintext notification.
type Message struct {
	Subject string
	Body    string
}

// Notifier sends a single best-effort notification. Implementations never retry.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// Nop drops every message; used when notify.enabled is false.
type Nop struct{}

func (Nop) Notify(context.Context, Message) error { return nil }
