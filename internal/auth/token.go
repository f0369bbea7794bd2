package auth

import (
	"encoding/base64"
	"encoding/binary"
	"time"

	"pta-server/shared/models"
)

// TokenTTL is how long an activity token stays valid after issue.
const TokenTTL = time.Hour

const tokenByteLen = 8

// GenerateToken issues a fresh activity token: the current unix timestamp
// packed into eight big-endian bytes, base64-encoded.
func GenerateToken() string {
	return generateTokenAt(time.Now().UTC())
}

func generateTokenAt(t time.Time) string {
	buf := make([]byte, tokenByteLen)
	binary.BigEndian.PutUint64(buf, uint64(t.Unix()))
	return base64.StdEncoding.EncodeToString(buf)
}

// ValidateToken checks that a token decodes to a timestamp inside the
// validity window. Malformed input never propagates as anything other
// than models.ErrTokenInvalid.
func ValidateToken(token string) error {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return models.ErrTokenInvalid
	}
	if len(raw) != tokenByteLen {
		return models.ErrTokenInvalid
	}
	issued := time.Unix(int64(binary.BigEndian.Uint64(raw)), 0)
	now := time.Now().UTC()
	if issued.After(now) {
		return models.ErrTokenInvalid
	}
	if now.Sub(issued) > TokenTTL {
		return models.ErrTokenExpired
	}
	return nil
}
