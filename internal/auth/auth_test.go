package auth

import (
	"testing"
	"time"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "hunter2hunter2" {
		t.Fatal("hash equals plaintext")
	}
	if !CheckPassword(hash, "hunter2hunter2") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "wrong-password") {
		t.Fatal("wrong password accepted")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tok, err := MakeToken("u-1", "Ada", "ada@example.com", RoleAdmin, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("make token: %v", err)
	}

	c, err := ParseToken(tok, "test-secret")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if c.UserID != "u-1" || c.Name != "Ada" || c.Email != "ada@example.com" || c.Role != RoleAdmin {
		t.Fatalf("claims mismatch: %+v", c)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	tok, err := MakeToken("u-1", "Ada", "ada@example.com", RoleUser, "secret-a", time.Hour)
	if err != nil {
		t.Fatalf("make token: %v", err)
	}
	if _, err := ParseToken(tok, "secret-b"); err == nil {
		t.Fatal("token signed with another secret accepted")
	}
}

func TestParseTokenExpired(t *testing.T) {
	tok, err := MakeToken("u-1", "Ada", "ada@example.com", RoleUser, "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("make token: %v", err)
	}
	if _, err := ParseToken(tok, "test-secret"); err == nil {
		t.Fatal("expired token accepted")
	}
}
