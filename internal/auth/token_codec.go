package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = 24 * time.Hour

var (
	errMissingSigningSecret = errors.New("signing secret must be provided")
	// ErrInvalidToken is returned by the extract helpers when the token
	// does not pass verification. Callers must verify before extracting.
	ErrInvalidToken = errors.New("auth: invalid token")
)

// sessionClaims is the payload carried by every session token.
type sessionClaims struct {
	Name  string `json:"name"`
	Admin bool   `json:"admin"`
	jwt.RegisteredClaims
}

// TokenCodecConfig configures the session token codec.
type TokenCodecConfig struct {
	SigningSecret []byte
	TokenTTL      time.Duration
	Clock         func() time.Time
}

// TokenCodec mints and verifies the self-contained HS256 session token.
// Validity is entirely a function of signature and expiry; there is no
// server-side session record and no revocation path.
type TokenCodec struct {
	signingSecret []byte
	ttl           time.Duration
	clock         func() time.Time
}

// NewTokenCodec constructs a TokenCodec with sane defaults.
func NewTokenCodec(cfg TokenCodecConfig) (*TokenCodec, error) {
	if len(cfg.SigningSecret) == 0 {
		return nil, errMissingSigningSecret
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &TokenCodec{
		signingSecret: append([]byte(nil), cfg.SigningSecret...),
		ttl:           ttl,
		clock:         clock,
	}, nil
}

// TokenTTL reports the lifetime applied to issued tokens.
func (c *TokenCodec) TokenTTL() time.Duration {
	return c.ttl
}

// Issue produces a signed session token for the given identity. The
// subject claim is the email; name and admin ride along as custom claims.
func (c *TokenCodec) Issue(email, name string, isAdmin bool) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", fmt.Errorf("auth: subject email must be provided")
	}

	now := c.clock().UTC()
	claims := sessionClaims{
		Name:  name,
		Admin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.signingSecret)
}

// Verify reports whether the token is structurally sound, carries a valid
// signature under the current secret, and has not expired. Malformed,
// forged, and expired tokens are indistinguishable to the caller.
func (c *TokenCodec) Verify(tokenString string) bool {
	_, err := c.decode(tokenString)
	return err == nil
}

// ExtractSubject returns the subject email of a verified token.
func (c *TokenCodec) ExtractSubject(tokenString string) (string, error) {
	claims, err := c.decode(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// ExtractName returns the display name of a verified token.
func (c *TokenCodec) ExtractName(tokenString string) (string, error) {
	claims, err := c.decode(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Name, nil
}

// ExtractIsAdmin returns the admin claim of a verified token.
func (c *TokenCodec) ExtractIsAdmin(tokenString string) (bool, error) {
	claims, err := c.decode(tokenString)
	if err != nil {
		return false, err
	}
	return claims.Admin, nil
}

func (c *TokenCodec) decode(tokenString string) (*sessionClaims, error) {
	trimmed := strings.TrimSpace(tokenString)
	if trimmed == "" {
		return nil, ErrInvalidToken
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(
		trimmed,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, ErrInvalidToken
			}
			return c.signingSecret, nil
		},
		jwt.WithTimeFunc(c.clock),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || parsed == nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
