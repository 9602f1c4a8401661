package auth

import (
	"os"
	"strings"
	"testing"
)

func TestMain(m *testing.M) {
	Init("test-secret")
	os.Exit(m.Run())
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "s3cret-password" {
		t.Fatal("hash equals the plaintext password")
	}

	if !VerifyPassword("s3cret-password", hash) {
		t.Error("correct password failed verification")
	}
	if VerifyPassword("wrong-password", hash) {
		t.Error("wrong password passed verification")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, "alice")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken returned error: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "alice" {
		t.Errorf("claims = %+v, want userID 42 and username alice", claims)
	}
}

func TestParseTokenRejectsTampering(t *testing.T) {
	token, err := GenerateToken(42, "alice")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments, want 3", len(parts))
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := ParseToken(tampered); err == nil {
		t.Error("expected an error for a tampered token")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseToken("not-a-token"); err == nil {
		t.Error("expected an error for a malformed token")
	}
}

func TestTokenSecretComesFromInit(t *testing.T) {
	// The secret is whatever Init set, not anything read from the
	// environment: a token signed under one secret must not validate
	// after the secret changes.
	defer Init("test-secret")

	Init("secret-a")
	token, err := GenerateToken(7, "bob")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	Init("secret-b")
	if _, err := ParseToken(token); err == nil {
		t.Error("token validated under a different secret")
	}

	Init("secret-a")
	if _, err := ParseToken(token); err != nil {
		t.Errorf("token failed under its own secret: %v", err)
	}
}

func TestTokenOpsRequireInit(t *testing.T) {
	defer Init("test-secret")
	Init("")

	if _, err := GenerateToken(1, "a"); err == nil {
		t.Error("GenerateToken succeeded without a secret")
	}
	if _, err := ParseToken("x.y.z"); err == nil {
		t.Error("ParseToken succeeded without a secret")
	}
}
