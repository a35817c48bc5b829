package jwt

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

var ErrBadCookieSignature = errors.New("cookie signature mismatch")

const signedPrefix = "s:"

// Signer produces "s:<value>.<mac>" cookie values, mac = base64url(hmac-sha256(value)).
type Signer struct {
	secret []byte
}

func NewSigner(secret []byte) *Signer {
	return &Signer{secret: secret}
}

func (s *Signer) Sign(value string) string {
	return signedPrefix + value + "." + s.mac(value)
}

func (s *Signer) Unsign(signed string) (string, error) {
	rest, ok := strings.CutPrefix(signed, signedPrefix)
	if !ok {
		return "", ErrBadCookieSignature
	}
	i := strings.LastIndexByte(rest, '.')
	if i <= 0 {
		return "", ErrBadCookieSignature
	}
	value, mac := rest[:i], rest[i+1:]
	if !hmac.Equal([]byte(mac), []byte(s.mac(value))) {
		return "", ErrBadCookieSignature
	}
	return value, nil
}

func (s *Signer) mac(value string) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
