package subscriptions

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/url"
	"strings"

	"github.com/Nazarious-ucu/blog-newsletter-api/internal/models"
)

// Tokens mints and checks unsubscribe tokens. A token is
// hex(sha256(id + email + secret)), so it stays valid for the lifetime of the record.
type Tokens struct {
	secret  string
	baseURL string
}

func NewTokens(secret, baseURL string) *Tokens {
	return &Tokens{secret: secret, baseURL: strings.TrimRight(baseURL, "/")}
}

func (t *Tokens) Token(id, email string) string {
	sum := sha256.Sum256([]byte(id + email + t.secret))
	return hex.EncodeToString(sum[:])
}

// Verify compares byte for byte in constant time.
func (t *Tokens) Verify(sub models.Subscription, token string) bool {
	expected := t.Token(sub.ID, sub.Email)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(token)) == 1
}

// UnsubscribeURL is the link placed into e-mails sent to sub.
func (t *Tokens) UnsubscribeURL(sub models.Subscription) string {
	return t.baseURL + "/unsubscribe?token=" + t.Token(sub.ID, sub.Email) +
		"&email=" + url.QueryEscape(sub.Email)
}
