package service

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T, login, password string) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return NewAuthService(login, string(hash))
}

func TestAuthServiceAuthenticate(t *testing.T) {
	svc := newTestAuthService(t, "admin", "s3cret")

	tests := []struct {
		name     string
		login    string
		password string
		expected bool
	}{
		{name: "valid pair", login: "admin", password: "s3cret", expected: true},
		{name: "wrong password", login: "admin", password: "wrong", expected: false},
		{name: "wrong login", login: "root", password: "s3cret", expected: false},
		{name: "login is case sensitive", login: "Admin", password: "s3cret", expected: false},
		{name: "both empty", login: "", password: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.Authenticate(tt.login, tt.password); got != tt.expected {
				t.Fatalf("Authenticate(%q, %q) = %v, expected %v", tt.login, tt.password, got, tt.expected)
			}
		})
	}
}

func TestAuthServiceRejectsEverythingWithInvalidDigest(t *testing.T) {
	svc := NewAuthService("admin", "not-a-bcrypt-digest")

	if svc.Authenticate("admin", "admin123") {
		t.Fatal("expected authentication to fail with a malformed digest")
	}
}
