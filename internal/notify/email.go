package notify

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"mine_evacuation/internal/config"
)

// sendMailFunc matches smtp.SendMail; swapped in tests.
type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailNotifier sends the notification through an authenticated SMTP relay.
// smtp.SendMail upgrades the session with STARTTLS when the relay offers it.
type EmailNotifier struct {
	cfg      config.SMTPConfig
	timeout  time.Duration
	sendMail sendMailFunc
}

func NewEmailNotifier(cfg config.SMTPConfig, timeout time.Duration) *EmailNotifier {
	return &EmailNotifier{cfg: cfg, timeout: timeout, sendMail: smtp.SendMail}
}

func (n *EmailNotifier) sender() string {
	if n.cfg.From != "" {
		return n.cfg.From
	}
	return n.cfg.Username
}

// buildMessage renders RFC 5322 headers followed by the plaintext body.
func buildMessage(from, to string, msg Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	b.WriteString("\r\n")
	return []byte(b.String())
}

// Notify sends msg once. The send runs in its own goroutine so ctx and the
// configured timeout bound how long the monitor loop waits.
func (n *EmailNotifier) Notify(ctx context.Context, msg Message) error {
	from := n.sender()
	if from == "" || n.cfg.Recipient == "" {
		return errors.New("email: sender and recipient are required")
	}
	addr := net.JoinHostPort(n.cfg.Host, strconv.Itoa(n.cfg.Port))

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}
	body := buildMessage(from, n.cfg.Recipient, msg)

	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() {
		done <- n.sendMail(addr, auth, from, []string{n.cfg.Recipient}, body)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("email: send via %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("email: send via %s: %w", addr, ctx.Err())
	}
}

var _ Notifier = (*EmailNotifier)(nil)
