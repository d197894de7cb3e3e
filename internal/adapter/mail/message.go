package mail

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	netmail "net/mail"
	"strings"
	"time"

	"equipment-loan/internal/domain/notification"
	"equipment-loan/pkg/id"
)

const lineLen = 76

var errNoRecipient = errors.New("recipient address is empty")

// buildMessage renders a UTF-8 plain text message with an encoded subject and
// a display-name From header.
func buildMessage(from netmail.Address, msg notification.Message, now time.Time) ([]byte, error) {
	to := strings.TrimSpace(msg.To)
	if to == "" {
		return nil, errNoRecipient
	}
	if strings.ContainsAny(to, "\r\n") || strings.ContainsAny(msg.Subject, "\r\n") {
		return nil, fmt.Errorf("header injection in recipient or subject")
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", from.String())
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", now.Format(time.RFC1123Z))
	fmt.Fprintf(&b, "Message-ID: %s\r\n", id.NewMessageID(id.DomainOf(from.Address)))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("Content-Transfer-Encoding: base64\r\n")
	b.WriteString("\r\n")

	enc := base64.StdEncoding.EncodeToString([]byte(msg.Body))
	for len(enc) > lineLen {
		b.WriteString(enc[:lineLen])
		b.WriteString("\r\n")
		enc = enc[lineLen:]
	}
	b.WriteString(enc)
	b.WriteString("\r\n")
	return b.Bytes(), nil
}
