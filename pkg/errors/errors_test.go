package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeSlideNotFound, "slide %s not in deck", "s1")

	if err.Code != ErrCodeSlideNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeSlideNotFound)
	}
	if err.Message != "slide s1 not in deck" {
		t.Errorf("Message = %q", err.Message)
	}
	if !strings.Contains(err.Error(), "SLIDE_NOT_FOUND") {
		t.Errorf("Error() = %q, want code prefix", err.Error())
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeInternal, cause, "store unavailable")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause with errors.Is")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Error() = %q, want cause included", err.Error())
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidGrid, "too big")
	wrapped := fmt.Errorf("handling request: %w", err)

	if !Is(wrapped, ErrCodeInvalidGrid) {
		t.Error("Is should find the code through wrapping")
	}
	if Is(wrapped, ErrCodeInvalidSpan) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeInvalidGrid) {
		t.Error("Is should not match plain errors")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeDeckNotFound, "gone")); got != ErrCodeDeckNotFound {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeDeckNotFound)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidInput, "ID cannot be empty")
	if got := UserMessage(err); got != "ID cannot be empty" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage on plain error = %q", got)
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid uuid", "9f1c2b3a-5d4e-4f6a-8b7c-0d1e2f3a4b5c", false},
		{"valid short", "b1", false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 129), true},
		{"control character", "id\x01", true},
		{"path traversal", "../etc/passwd", true},
		{"forward slash", "a/b", true},
		{"backslash", "a\\b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && GetCode(err) != ErrCodeInvalidInput {
				t.Errorf("code = %q, want %q", GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateGridSize(t *testing.T) {
	tests := []struct {
		name          string
		rows, columns int
		wantErr       bool
	}{
		{"within limit", 3, 4, false},
		{"at limit", 5, 5, false},
		{"zero rows", 0, 3, true},
		{"negative columns", 2, -1, true},
		{"rows over limit", 6, 3, true},
		{"columns over limit", 3, 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGridSize(tt.rows, tt.columns, 5, 5)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGridSize(%d, %d) error = %v, wantErr %v",
					tt.rows, tt.columns, err, tt.wantErr)
			}
			if err != nil && GetCode(err) != ErrCodeInvalidGrid {
				t.Errorf("code = %q, want %q", GetCode(err), ErrCodeInvalidGrid)
			}
		})
	}
}
