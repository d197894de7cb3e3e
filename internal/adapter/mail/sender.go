package mail

import (
	"context"
	"fmt"
	netmail "net/mail"
	"strings"
	"time"

	"equipment-loan/internal/config"
	"equipment-loan/internal/domain/notification"
	"equipment-loan/internal/infrastructure/metrics"

	"go.uber.org/zap"
)

// FallbackSender tries each transport in order and stops at the first success.
type FallbackSender struct {
	from       netmail.Address
	transports []Transport
	log        *zap.Logger
	now        func() time.Time
}

var _ notification.Sender = (*FallbackSender)(nil)

// NewSender wires the implicit-TLS transport first and STARTTLS second, with
// the same host and credentials.
func NewSender(cfg config.Mail, log *zap.Logger) *FallbackSender {
	mk := func(port string, mode Mode) Transport {
		return &SMTPTransport{
			Host:     cfg.Host,
			Port:     port,
			Mode:     mode,
			Username: cfg.Username,
			Password: cfg.Password,
			Timeout:  cfg.Timeout,
		}
	}
	return NewFallbackSender(
		netmail.Address{Name: cfg.SenderName, Address: cfg.Sender()},
		log,
		mk(cfg.SSLPort, ModeImplicitTLS),
		mk(cfg.StartTLSPort, ModeStartTLS),
	)
}

func NewFallbackSender(from netmail.Address, log *zap.Logger, transports ...Transport) *FallbackSender {
	if log == nil {
		log = zap.NewNop()
	}
	return &FallbackSender{from: from, transports: transports, log: log, now: time.Now}
}

func (s *FallbackSender) Send(ctx context.Context, msg notification.Message) (res notification.Result) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("mail send panicked", zap.Any("panic", r), zap.String("to", msg.To))
			res = notification.Result{Detail: fmt.Sprintf("internal error: %v", r)}
		}
		outcome := "failed"
		if res.Delivered {
			outcome = "delivered"
		}
		metrics.Notifications.WithLabelValues(outcome).Inc()
	}()

	msg.To = strings.TrimSpace(msg.To)
	raw, err := buildMessage(s.from, msg, s.now())
	if err != nil {
		s.log.Error("mail not sent", zap.String("to", msg.To), zap.Error(err))
		return notification.Result{Detail: err.Error()}
	}
	if len(s.transports) == 0 {
		return notification.Result{Detail: "no mail transport configured"}
	}

	var last error
	for i, t := range s.transports {
		start := time.Now()
		err := t.Deliver(ctx, s.from.Address, msg.To, raw)
		metrics.MailAttemptDuration.WithLabelValues(t.Name()).Observe(time.Since(start).Seconds())
		if err == nil {
			metrics.MailAttempts.WithLabelValues(t.Name(), "ok").Inc()
			s.log.Info("mail delivered",
				zap.String("to", msg.To),
				zap.String("subject", msg.Subject),
				zap.String("transport", t.Name()),
			)
			return notification.Result{Delivered: true}
		}
		metrics.MailAttempts.WithLabelValues(t.Name(), "error").Inc()
		last = err
		if i < len(s.transports)-1 {
			s.log.Warn("mail transport failed, trying next",
				zap.String("to", msg.To),
				zap.String("transport", t.Name()),
				zap.Error(err),
			)
		}
	}

	s.log.Error("mail delivery failed on all transports",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Error(last),
	)
	return notification.Result{Detail: last.Error()}
}
