package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"time"
)

// Mode is how a transport secures the SMTP session.
type Mode int

const (
	// ModeImplicitTLS negotiates TLS before the SMTP greeting (port 465).
	ModeImplicitTLS Mode = iota
	// ModeStartTLS connects in plaintext and upgrades with STARTTLS (port 587).
	ModeStartTLS
)

func (m Mode) String() string {
	switch m {
	case ModeImplicitTLS:
		return "ssl"
	case ModeStartTLS:
		return "starttls"
	default:
		return "unknown"
	}
}

// Transport delivers one already rendered message.
type Transport interface {
	Name() string
	Deliver(ctx context.Context, from, to string, msg []byte) error
}

// SMTPTransport is one (host, port, security mode) triple with credentials.
type SMTPTransport struct {
	Host     string
	Port     string
	Mode     Mode
	Username string
	Password string
	// Timeout bounds the whole attempt: dial, handshake and the SMTP dialogue.
	Timeout time.Duration
	// TLSConfig overrides the default config (tests, private CAs).
	TLSConfig *tls.Config
}

func (t *SMTPTransport) Name() string {
	return fmt.Sprintf("%s:%s", t.Mode, t.Port)
}

func (t *SMTPTransport) tlsConfig() *tls.Config {
	if t.TLSConfig != nil {
		return t.TLSConfig
	}
	return &tls.Config{ServerName: t.Host, MinVersion: tls.VersionTLS12}
}

func (t *SMTPTransport) Deliver(ctx context.Context, from, to string, msg []byte) error {
	timeout := t.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := t.dial(ctx)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	// a server that stalls mid-dialogue must not hold the attempt past its budget
	deadline, _ := ctx.Deadline()
	if err := conn.SetDeadline(deadline); err != nil {
		return fmt.Errorf("set deadline: %w", err)
	}

	c, err := smtp.NewClient(conn, t.Host)
	if err != nil {
		return fmt.Errorf("greeting: %w", err)
	}
	defer c.Close()

	if t.Mode == ModeStartTLS {
		if ok, _ := c.Extension("STARTTLS"); !ok {
			return errors.New("starttls: not offered by server")
		}
		if err := c.StartTLS(t.tlsConfig()); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}

	if t.Username != "" {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(smtp.PlainAuth("", t.Username, t.Password, t.Host)); err != nil {
				return fmt.Errorf("auth: %w", err)
			}
		}
	}

	if err := c.Mail(from); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := c.Rcpt(to); err != nil {
		return fmt.Errorf("rcpt to %s: %w", to, err)
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close data: %w", err)
	}
	return c.Quit()
}

func (t *SMTPTransport) dial(ctx context.Context) (net.Conn, error) {
	addr := net.JoinHostPort(t.Host, t.Port)
	nd := &net.Dialer{}
	if t.Mode == ModeImplicitTLS {
		td := &tls.Dialer{NetDialer: nd, Config: t.tlsConfig()}
		return td.DialContext(ctx, "tcp", addr)
	}
	return nd.DialContext(ctx, "tcp", addr)
}
