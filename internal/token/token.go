// Package token issues and verifies the signed identity tokens shared by the
// auth and credit services. Tokens are HS256 JWTs carrying the user id,
// email (subject) and role; the validated claims are the only identity
// source trusted by protected operations.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mycompany/credit-platform/internal/common"
	"github.com/mycompany/credit-platform/internal/roles"
)

// minKeyLen is the smallest key accepted for HS256 (256 bits).
const minKeyLen = 32

// Claims is the payload of a platform token.
type Claims struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Email returns the token subject.
func (c *Claims) Email() string { return c.Subject }

// Codec signs and verifies tokens with a symmetric key. The clock is
// injectable so expiry behavior is deterministic in tests.
type Codec struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

type Option func(*Codec)

// WithClock overrides the time source used for iat/exp and verification.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// NewCodec builds a Codec from the configured secret and token TTL.
//
// Secrets shorter than 32 bytes are right-padded with zero bytes so that
// every service sharing the secret derives the same key. Padding weakens the
// effective key entropy; it is kept for compatibility with deployed secrets
// rather than rejected at startup.
func NewCodec(secret string, ttl time.Duration, opts ...Option) *Codec {
	c := &Codec{key: normalizeKey(secret), ttl: ttl, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c
}

func normalizeKey(secret string) []byte {
	b := []byte(secret)
	if len(b) >= minKeyLen {
		return b
	}
	key := make([]byte, minKeyLen)
	copy(key, b)
	return key
}

// Issue signs a token for the given identity, valid from now until now+ttl.
func (c *Codec) Issue(userID int64, email string, role roles.Role) (string, error) {
	now := c.now()
	claims := Claims{
		UserID: userID,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
}

// Verify checks the signature and expiry of tokenString and returns its
// claims. Signature and expiry failures are distinct error kinds so callers
// can log them apart, even though the HTTP boundary collapses both into the
// same unauthorized response.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return c.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return c.now() }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, common.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, common.ErrTokenSignature
		default:
			return nil, common.ErrTokenMalformed
		}
	}
	if !tok.Valid {
		return nil, common.ErrTokenMalformed
	}
	if _, err := roles.Parse(claims.Role); err != nil {
		return nil, common.ErrTokenMalformed
	}
	return claims, nil
}
