package security

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
)

const testSecret = "abcdefghijklmnopqrstuvwxyz123456"

func TestTokenManagerRoundTrip(t *testing.T) {
	mgr := NewTokenManager("iss", "aud", testSecret, time.Hour)
	tok, err := mgr.Issue(domain.Identity{ID: 42, Email: "admin@x.com", Role: "admin"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if tok.Value == "" || tok.ExpiresAt.IsZero() {
		t.Fatalf("unexpected token %+v", tok)
	}

	identity, err := mgr.Verify(tok.Value)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if identity.ID != 42 || identity.Email != "admin@x.com" || identity.Role != "admin" {
		t.Fatalf("unexpected identity %+v", identity)
	}
}

func TestTokenManagerRejectsZeroIdentity(t *testing.T) {
	mgr := NewTokenManager("iss", "aud", testSecret, time.Hour)
	if _, err := mgr.Issue(domain.Identity{}); err == nil {
		t.Fatal("expected error issuing token without identity id")
	}
}

func TestTokenManagerFailuresAreIndistinguishable(t *testing.T) {
	mgr := NewTokenManager("iss", "aud", testSecret, time.Hour)
	tok, err := mgr.Issue(domain.Identity{ID: 7, Email: "a@b.c", Role: "admin"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	expired := NewTokenManager("iss", "aud", testSecret, time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	old, err := expired.Issue(domain.Identity{ID: 7, Email: "a@b.c", Role: "admin"})
	if err != nil {
		t.Fatalf("issue expired: %v", err)
	}

	otherKey := NewTokenManager("iss", "aud", "zyxwvutsrqponmlkjihgfedcba654321", time.Hour)
	wrongAudience := NewTokenManager("iss", "someone-else", testSecret, time.Hour)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "7", "iss": "iss", "aud": "aud", "exp": time.Now().Add(time.Hour).Unix()})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	cases := map[string]func() error{
		"expired":        func() error { _, err := mgr.Verify(old.Value); return err },
		"bad signature":  func() error { _, err := otherKey.Verify(tok.Value); return err },
		"wrong audience": func() error { _, err := wrongAudience.Verify(tok.Value); return err },
		"tampered":       func() error { _, err := mgr.Verify(tamperSignature(tok.Value)); return err },
		"alg none":       func() error { _, err := mgr.Verify(unsigned); return err },
		"empty":          func() error { _, err := mgr.Verify(""); return err },
		"garbage":        func() error { _, err := mgr.Verify("not-a-token"); return err },
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			if err := fn(); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

// tamperSignature swaps the first signature character, which always changes
// the decoded signature bytes.
func tamperSignature(token string) string {
	i := strings.LastIndex(token, ".") + 1
	swap := "A"
	if token[i] == 'A' {
		swap = "B"
	}
	return token[:i] + swap + token[i+1:]
}
