package password_test

import (
	"errors"
	"testing"

	"rental/shared/password"
)

func TestHashAndVerify(t *testing.T) {
	hashed, err := password.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	if !password.IsHashed(hashed) {
		t.Errorf("IsHashed(%q) = false, want true", hashed)
	}

	if err := password.Verify("secret123", hashed); err != nil {
		t.Errorf("Verify with correct password: %v", err)
	}

	if err := password.Verify("wrong", hashed); !errors.Is(err, password.ErrInvalidPassword) {
		t.Errorf("Verify with wrong password = %v, want ErrInvalidPassword", err)
	}
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	if _, err := password.Hash(""); err == nil {
		t.Error("Hash(\"\") succeeded, want error")
	}
}

func TestVerifyLegacyClearText(t *testing.T) {
	// Rows written by the legacy system store the password as-is.
	if err := password.Verify("admin123", "admin123"); err != nil {
		t.Errorf("Verify clear-text match: %v", err)
	}

	if err := password.Verify("wrong", "admin123"); !errors.Is(err, password.ErrInvalidPassword) {
		t.Errorf("Verify clear-text mismatch = %v, want ErrInvalidPassword", err)
	}
}

func TestVerifyEmptyInputs(t *testing.T) {
	if err := password.Verify("", "stored"); !errors.Is(err, password.ErrInvalidPassword) {
		t.Errorf("Verify empty password = %v, want ErrInvalidPassword", err)
	}

	if err := password.Verify("secret", ""); !errors.Is(err, password.ErrInvalidPassword) {
		t.Errorf("Verify empty stored value = %v, want ErrInvalidPassword", err)
	}
}

func TestIsHashed(t *testing.T) {
	tests := []struct {
		stored string
		want   bool
	}{
		{"$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi", true},
		{"$2b$12$abcdefghijklmnopqrstuv", true},
		{"admin123", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := password.IsHashed(tt.stored); got != tt.want {
			t.Errorf("IsHashed(%q) = %v, want %v", tt.stored, got, tt.want)
		}
	}
}
