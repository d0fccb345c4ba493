package security

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cymbol-superstore/marketplace-api/internal/core/domain"
)

const testSecret = "test-secret-key"

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func newTestCodec(t *testing.T, clock *fakeClock) *JWTCodec {
	t.Helper()
	codec, err := NewJWTCodec(testSecret, "HS256", WithClock(clock.Now))
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	return codec
}

func TestJWTCodec_RoundTrip(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codec := newTestCodec(t, clock)

	cases := []domain.Claims{
		{Subject: "a@b.com", PrincipalID: 1, Role: domain.RoleCustomer},
		{Subject: "s@x.com", PrincipalID: 7, Role: domain.RoleSeller},
		{Subject: "zero@x.com", PrincipalID: 0, Role: domain.RoleCustomer},
	}
	for _, in := range cases {
		tok, err := codec.Encode(in, 30*time.Minute)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		if tok.TokenType != domain.TokenTypeBearer {
			t.Fatalf("unexpected token type %q", tok.TokenType)
		}
		if strings.Count(tok.Token, ".") != 2 {
			t.Fatalf("expected header.claims.signature, got %q", tok.Token)
		}

		out, err := codec.Decode(tok.Token)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if out.Subject != in.Subject || out.PrincipalID != in.PrincipalID || out.Role != in.Role {
			t.Fatalf("round trip mismatch: in=%+v out=%+v", in, out)
		}
		if !out.ExpiresAt.Equal(tok.ExpiresAt) {
			t.Fatalf("expiry mismatch: %v vs %v", out.ExpiresAt, tok.ExpiresAt)
		}
	}
}

func TestJWTCodec_DefaultTTL(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	codec := newTestCodec(t, clock)

	tok, err := codec.Encode(domain.Claims{Subject: "a@b.com", PrincipalID: 1}, 0)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if want := clock.now.Add(DefaultTokenTTL); !tok.ExpiresAt.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, tok.ExpiresAt)
	}
}

func TestJWTCodec_Expired(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codec := newTestCodec(t, clock)

	tok, err := codec.Encode(domain.Claims{Subject: "a@b.com", PrincipalID: 1}, time.Minute)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	clock.now = clock.now.Add(2 * time.Minute)
	if _, err := codec.Decode(tok.Token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestJWTCodec_WrongSecret(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codec := newTestCodec(t, clock)
	other, _ := NewJWTCodec("another-secret", "HS256", WithClock(clock.Now))

	tok, _ := other.Encode(domain.Claims{Subject: "a@b.com", PrincipalID: 1}, time.Minute)
	if _, err := codec.Decode(tok.Token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTCodec_RejectsOtherAlgorithm(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codec := newTestCodec(t, clock)
	hs512, _ := NewJWTCodec(testSecret, "HS512", WithClock(clock.Now))

	tok, _ := hs512.Encode(domain.Claims{Subject: "a@b.com", PrincipalID: 1}, time.Minute)
	if _, err := codec.Decode(tok.Token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for HS512 token, got %v", err)
	}
}

func TestJWTCodec_RejectsNoneAlgorithm(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codec := newTestCodec(t, clock)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":    "a@b.com",
		"id":     1,
		"seller": true,
		"exp":    clock.now.Add(time.Hour).Unix(),
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := codec.Decode(raw); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for alg=none, got %v", err)
	}
}

func TestJWTCodec_MissingClaims(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codec := newTestCodec(t, clock)
	exp := clock.now.Add(time.Hour).Unix()

	cases := map[string]jwt.MapClaims{
		"no id":     {"sub": "a@b.com", "seller": false, "exp": exp},
		"no seller": {"sub": "a@b.com", "id": 1, "exp": exp},
		"no sub":    {"id": 1, "seller": false, "exp": exp},
		"no exp":    {"sub": "a@b.com", "id": 1, "seller": false},
		"wrong id":  {"sub": "a@b.com", "id": "one", "seller": false, "exp": exp},
	}
	for name, claims := range cases {
		t.Run(name, func(t *testing.T) {
			raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
			if err != nil {
				t.Fatalf("sign: %v", err)
			}
			if _, err := codec.Decode(raw); !errors.Is(err, domain.ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestJWTCodec_IgnoresUnknownClaims(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codec := newTestCodec(t, clock)

	raw, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":    "s@x.com",
		"id":     7,
		"seller": true,
		"exp":    clock.now.Add(time.Hour).Unix(),
		"admin":  true,
	}).SignedString([]byte(testSecret))

	claims, err := codec.Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims.PrincipalID != 7 || claims.Role != domain.RoleSeller {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestJWTCodec_TamperedByteAlwaysFails(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codec := newTestCodec(t, clock)

	tok, err := codec.Encode(domain.Claims{Subject: "s@x.com", PrincipalID: 7, Role: domain.RoleSeller}, time.Hour)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	for i := 0; i < len(tok.Token); i++ {
		for _, mask := range []byte{0x01, 0x02, 0x20, 0x80} {
			b := []byte(tok.Token)
			b[i] ^= mask
			if _, err := codec.Decode(string(b)); err == nil {
				t.Fatalf("decode succeeded after flipping byte %d with mask %#x", i, mask)
			}
		}
	}
}

func FuzzDecodeTampered(f *testing.F) {
	clock := &fakeClock{now: time.Now()}
	codec, err := NewJWTCodec(testSecret, "HS256", WithClock(clock.Now))
	if err != nil {
		f.Fatalf("new codec: %v", err)
	}
	tok, err := codec.Encode(domain.Claims{Subject: "a@b.com", PrincipalID: 1}, time.Hour)
	if err != nil {
		f.Fatalf("encode: %v", err)
	}

	f.Add(uint(0), byte(1))
	f.Add(uint(len(tok.Token)/2), byte(0x40))
	f.Add(uint(len(tok.Token)-1), byte(0x03))

	f.Fuzz(func(t *testing.T, pos uint, mask byte) {
		if mask == 0 {
			t.Skip()
		}
		b := []byte(tok.Token)
		b[int(pos%uint(len(b)))] ^= mask
		if _, err := codec.Decode(string(b)); err == nil {
			t.Fatalf("tampered token accepted at position %d", pos%uint(len(b)))
		}
	})
}

func TestNewJWTCodec_Validation(t *testing.T) {
	if _, err := NewJWTCodec("", "HS256"); err == nil {
		t.Fatalf("expected error for empty secret")
	}
	for _, alg := range []string{"none", "RS256", "MD5"} {
		if _, err := NewJWTCodec("secret", alg); err == nil {
			t.Fatalf("expected error for algorithm %q", alg)
		}
	}
	codec, err := NewJWTCodec("secret", "")
	if err != nil {
		t.Fatalf("default algorithm: %v", err)
	}
	if codec.Algorithm() != "HS256" {
		t.Fatalf("expected HS256 default, got %s", codec.Algorithm())
	}
}
