package auth

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "admin123" {
		t.Fatal("HashPassword() returned the plaintext password")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("HashPassword() = %q, want bcrypt prefix", hash)
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"matching password", "correct horse battery staple", true},
		{"wrong password", "tr0ub4dor&3", false},
		{"empty password", "", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := CheckPassword(hash, test.password); got != test.want {
				t.Errorf("CheckPassword() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestCheckPasswordInvalidHash(t *testing.T) {
	if CheckPassword("not-a-bcrypt-hash", "anything") {
		t.Error("CheckPassword() = true for a malformed hash")
	}
}
