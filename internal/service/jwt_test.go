package service

import "testing"

func TestGenerateAndParseJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	InitJWT()

	token, err := GenerateJWT(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	userID, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if userID != 42 {
		t.Fatalf("expected user 42, got %d", userID)
	}
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	InitJWT()

	if _, err := ParseJWT("not.a.token"); err == nil {
		t.Fatal("expected error for garbage token")
	}
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-one")
	InitJWT()
	token, err := GenerateJWT(7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	t.Setenv("JWT_SECRET", "secret-two")
	InitJWT()
	if _, err := ParseJWT(token); err == nil {
		t.Fatal("expected error for token signed with another secret")
	}
}
