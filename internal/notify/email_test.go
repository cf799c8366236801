package notify

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"mine_evacuation/internal/config"
)

type capturedMail struct {
	addr string
	auth smtp.Auth
	from string
	to   []string
	msg  string
}

func newTestNotifier(cfg config.SMTPConfig, send sendMailFunc) *EmailNotifier {
	n := NewEmailNotifier(cfg, time.Second)
	n.sendMail = send
	return n
}

func TestEmailNotifier_SendsPlaintext(t *testing.T) {
	t.Parallel()

	var got capturedMail
	n := newTestNotifier(config.SMTPConfig{
		Host:      "smtp.example.com",
		Port:      587,
		Username:  "alerts@example.com",
		Password:  "secret",
		Recipient: "ops@example.com",
	}, func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		got = capturedMail{addr: addr, auth: a, from: from, to: to, msg: string(msg)}
		return nil
	})

	err := n.Notify(context.Background(), Message{
		Subject: "Coal Mine Emergency",
		Body:    "An emergency has been triggered in the coal mine.",
	})
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if got.addr != "smtp.example.com:587" {
		t.Errorf("addr = %q", got.addr)
	}
	if got.auth == nil {
		t.Errorf("expected PLAIN auth when username is set")
	}
	if got.from != "alerts@example.com" {
		t.Errorf("from = %q; want username fallback", got.from)
	}
	if len(got.to) != 1 || got.to[0] != "ops@example.com" {
		t.Errorf("to = %v", got.to)
	}
	if !strings.Contains(got.msg, "Subject: Coal Mine Emergency\r\n") {
		t.Errorf("missing subject header: %q", got.msg)
	}
	if !strings.Contains(got.msg, "\r\n\r\nAn emergency has been triggered in the coal mine.") {
		t.Errorf("missing body: %q", got.msg)
	}
}

func TestEmailNotifier_PropagatesSendError(t *testing.T) {
	t.Parallel()

	relayDown := errors.New("connection refused")
	n := newTestNotifier(config.SMTPConfig{
		Host: "smtp.example.com", Port: 587, From: "a@example.com", Recipient: "b@example.com",
	}, func(string, smtp.Auth, string, []string, []byte) error { return relayDown })

	err := n.Notify(context.Background(), Message{Subject: "s", Body: "b"})
	if !errors.Is(err, relayDown) {
		t.Fatalf("expected wrapped relay error, got %v", err)
	}
}

func TestEmailNotifier_RequiresAddresses(t *testing.T) {
	t.Parallel()

	calls := 0
	n := newTestNotifier(config.SMTPConfig{Host: "h", Port: 25}, func(string, smtp.Auth, string, []string, []byte) error {
		calls++
		return nil
	})
	if err := n.Notify(context.Background(), Message{}); err == nil {
		t.Fatalf("expected error without sender/recipient")
	}
	if calls != 0 {
		t.Fatalf("send must not be attempted, calls=%d", calls)
	}
}

func TestEmailNotifier_RespectsContext(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	defer close(release)
	n := newTestNotifier(config.SMTPConfig{
		Host: "h", Port: 25, From: "a@example.com", Recipient: "b@example.com",
	}, func(string, smtp.Auth, string, []string, []byte) error {
		<-release
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := n.Notify(ctx, Message{}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestNop(t *testing.T) {
	t.Parallel()
	if err := (Nop{}).Notify(context.Background(), Message{}); err != nil {
		t.Fatalf("Nop.Notify: %v", err)
	}
}
