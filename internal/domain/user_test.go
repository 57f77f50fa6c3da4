package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("test@example.com", "a long enough password")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID")
	}
	if user.Email != "test@example.com" {
		t.Errorf("Expected email test@example.com, got %s", user.Email)
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}
}

func TestNewUserValidation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"empty email", "", "a long enough password", ErrEmptyEmail},
		{"no at sign", "invalid", "a long enough password", ErrInvalidEmailFormat},
		{"no domain dot", "a@b", "a long enough password", ErrInvalidEmailFormat},
		{"short password", "test@example.com", "short", ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestUserValidateLoadedFromStore(t *testing.T) {
	// Users loaded from the database have a hash but no plaintext.
	user := &User{
		ID:             uuid.New(),
		Email:          "test@example.com",
		HashedPassword: "$2a$10$notarealhashbutlongenough",
	}
	if err := user.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	user.HashedPassword = ""
	if err := user.Validate(); !errors.Is(err, ErrEmptyHashedPassword) {
		t.Errorf("Expected hashed password error, got %v", err)
	}
}
