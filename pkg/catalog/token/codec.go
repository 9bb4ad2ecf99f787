// Package token mints the short-lived capability tokens that stand in for
// the real resource identifiers in every API response. The scheme is the
// one the delivery proxy understands: "<id>|<expiry>" XOR-ed with a
// repeating shared secret, then base64. Confidencialidad por oscuridad, no
// integridad: anyone holding the secret can forge tokens.
package token

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMalformed = errors.New("token: malformed token")
	ErrExpired   = errors.New("token: expired")
)

// Codec is safe for concurrent use; it holds no mutable state.
type Codec struct {
	secret string
	ttl    time.Duration

	// now is swapped out in tests
	now func() time.Time
}

// defaultSecret mirrors the config default, so a codec built with an empty
// secret still interoperates with the delivery proxy's default.
const defaultSecret = "logoscontexto"

func NewCodec(secret string, ttl time.Duration) *Codec {
	if secret == "" {
		secret = defaultSecret
	}
	return &Codec{secret: secret, ttl: ttl, now: time.Now}
}

// Encode builds the token for a resource id. An empty id yields an empty
// token; callers omit the field in that case.
func (c *Codec) Encode(resourceId string) string {
	if resourceId == "" {
		return ""
	}
	expiresAt := c.now().Add(c.ttl).Unix()
	payload := resourceId + "|" + strconv.FormatInt(expiresAt, 10)
	return base64.StdEncoding.EncodeToString([]byte(c.xor(payload)))
}

// Decode is the inverse of Encode. The serving core never calls it; it
// exists for the delivery proxy and for the round-trip tests. `at` is the
// verifier's clock.
func (c *Codec) Decode(tok string, at time.Time) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(tok)
	if err != nil {
		return "", ErrMalformed
	}
	payload := c.xor(string(raw))

	// el separador es el último '|': el id mismo podría contener uno
	sep := strings.LastIndex(payload, "|")
	if sep < 0 {
		return "", ErrMalformed
	}
	expiresAt, err := strconv.ParseInt(payload[sep+1:], 10, 64)
	if err != nil {
		return "", ErrMalformed
	}
	if at.Unix() > expiresAt {
		return "", ErrExpired
	}
	return payload[:sep], nil
}

// xor applies the repeating-key XOR over the payload's code points. XOR is
// its own inverse, so the same pass encodes and decodes.
func (c *Codec) xor(payload string) string {
	runes := []rune(payload)
	keyLen := len(c.secret)
	for i, r := range runes {
		runes[i] = r ^ rune(c.secret[i%keyLen])
	}
	return string(runes)
}
