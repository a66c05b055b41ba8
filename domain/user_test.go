package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestValidUsername(t *testing.T) {
	tests := []struct {
		username string
		want     bool
	}{
		{"abc", true},
		{"ab", false},
		{"", false},
		{strings.Repeat("a", 30), true},
		{strings.Repeat("a", 31), false},
		// character count, not byte count
		{strings.Repeat("é", 30), true},
		{strings.Repeat("é", 31), false},
		{"日本語", true},
	}

	for _, tt := range tests {
		if got := ValidUsername(tt.username); got != tt.want {
			t.Errorf("ValidUsername(%q) = %v, want %v", tt.username, got, tt.want)
		}
	}
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@b.com", true},
		{"user.name@sub.domain.org", true},
		{"no-at-sign", false},
		{"missing@tld", false},
		{"spaces in@local.com", false},
		{"@domain.com", false},
		{"user@.com", false},
	}

	for _, tt := range tests {
		if got := ValidEmail(tt.email); got != tt.want {
			t.Errorf("ValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		email    string
		wantErr  bool
	}{
		{"valid", "alice", "secret1", "a@b.com", false},
		{"short username", "al", "secret1", "a@b.com", true},
		{"short password", "alice", "12345", "a@b.com", true},
		{"over-long password", "alice", strings.Repeat("x", 73), "a@b.com", true},
		{"bad email", "alice", "secret1", "not-an-email", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCredentials(tt.username, tt.password, tt.email)
			if tt.wantErr {
				if !IsDomainError(err, ErrCodeInvalid) {
					t.Errorf("ValidateCredentials() = %v, want INVALID", err)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateCredentials() = %v, want nil", err)
			}
		})
	}
}

func TestUserJSONHidesHash(t *testing.T) {
	user := User{
		ID:           "u1",
		Username:     "alice",
		PasswordHash: "$2a$10$secret",
		Email:        "a@b.com",
	}

	out, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(out), "secret") || strings.Contains(strings.ToLower(string(out)), "password") {
		t.Errorf("serialized user leaks the password hash: %s", out)
	}
}
