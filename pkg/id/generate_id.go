package id

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewMessageID returns an RFC 5322 Message-ID such as <hex32@example.com>.
// The domain part falls back to "localhost" when none is given.
func NewMessageID(domain string) string {
	domain = strings.Trim(strings.TrimSpace(domain), "<>@")
	if domain == "" {
		domain = "localhost"
	}
	return "<" + NewID32() + "@" + domain + ">"
}

// DomainOf returns the part after the last "@" of an address, or "".
func DomainOf(addr string) string {
	if i := strings.LastIndex(addr, "@"); i >= 0 && i < len(addr)-1 {
		return strings.Trim(addr[i+1:], "> ")
	}
	return ""
}
