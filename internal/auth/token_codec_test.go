package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestCodec(t *testing.T, secret string, clock func() time.Time) *TokenCodec {
	t.Helper()
	codec, err := NewTokenCodec(TokenCodecConfig{
		SigningSecret: []byte(secret),
		TokenTTL:      24 * time.Hour,
		Clock:         clock,
	})
	if err != nil {
		t.Fatalf("unexpected constructor error: %v", err)
	}
	return codec
}

func TestTokenCodecRoundTrip(t *testing.T) {
	codec := newTestCodec(t, "super-secret", nil)

	token, err := codec.Issue("admin@example.com", "Kamil", true)
	if err != nil {
		t.Fatalf("expected successful issuance: %v", err)
	}
	if !codec.Verify(token) {
		t.Fatalf("expected issued token to verify")
	}

	subject, err := codec.ExtractSubject(token)
	if err != nil {
		t.Fatalf("unexpected extract error: %v", err)
	}
	if subject != "admin@example.com" {
		t.Fatalf("unexpected subject %s", subject)
	}

	name, err := codec.ExtractName(token)
	if err != nil {
		t.Fatalf("unexpected extract error: %v", err)
	}
	if name != "Kamil" {
		t.Fatalf("unexpected name %s", name)
	}

	isAdmin, err := codec.ExtractIsAdmin(token)
	if err != nil {
		t.Fatalf("unexpected extract error: %v", err)
	}
	if !isAdmin {
		t.Fatalf("expected admin claim to survive the round trip")
	}
}

func TestTokenCodecCarriesNonAdminFlag(t *testing.T) {
	codec := newTestCodec(t, "super-secret", nil)

	token, err := codec.Issue("visitor@example.com", "Visitor", false)
	if err != nil {
		t.Fatalf("expected successful issuance: %v", err)
	}
	isAdmin, err := codec.ExtractIsAdmin(token)
	if err != nil {
		t.Fatalf("unexpected extract error: %v", err)
	}
	if isAdmin {
		t.Fatalf("expected admin claim to be false")
	}
}

func TestTokenCodecRejectsExpiredToken(t *testing.T) {
	issuedAt := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	codec := newTestCodec(t, "super-secret", func() time.Time { return issuedAt })

	token, err := codec.Issue("admin@example.com", "Kamil", true)
	if err != nil {
		t.Fatalf("expected successful issuance: %v", err)
	}

	late := newTestCodec(t, "super-secret", func() time.Time { return issuedAt.Add(25 * time.Hour) })
	if late.Verify(token) {
		t.Fatalf("expected expired token to fail verification")
	}
	if _, err := late.ExtractSubject(token); err == nil {
		t.Fatalf("expected extract to fail on expired token")
	}
}

func TestTokenCodecRejectsForeignSecret(t *testing.T) {
	codec := newTestCodec(t, "current-secret", nil)
	other := newTestCodec(t, "rotated-away-secret", nil)

	token, err := other.Issue("admin@example.com", "Kamil", true)
	if err != nil {
		t.Fatalf("expected successful issuance: %v", err)
	}
	if codec.Verify(token) {
		t.Fatalf("expected token signed with a different secret to fail")
	}
}

func TestTokenCodecRejectsMalformedToken(t *testing.T) {
	codec := newTestCodec(t, "super-secret", nil)

	for _, candidate := range []string{"", "   ", "not-a-token", "a.b.c"} {
		if codec.Verify(candidate) {
			t.Fatalf("expected %q to fail verification", candidate)
		}
	}
}

func TestTokenCodecRejectsUnsignedAlgorithm(t *testing.T) {
	codec := newTestCodec(t, "super-secret", nil)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "admin@example.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build none-algorithm token: %v", err)
	}
	if codec.Verify(token) {
		t.Fatalf("expected none-algorithm token to fail verification")
	}
}

func TestNewTokenCodecRequiresSecret(t *testing.T) {
	if _, err := NewTokenCodec(TokenCodecConfig{}); err == nil {
		t.Fatalf("expected constructor error for missing secret")
	}
}

func TestTokenCodecDefaultsTTL(t *testing.T) {
	codec := newTestCodec(t, "super-secret", nil)
	if codec.TokenTTL() != 24*time.Hour {
		t.Fatalf("unexpected default ttl %s", codec.TokenTTL())
	}
}
