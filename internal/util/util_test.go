/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package util

import (
	"testing"

	"github.com/google/uuid"
)

func TestIntDigits(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 1}, {7, 1}, {10, 2}, {999, 3}, {-1234, 4},
	}
	for _, tt := range tests {
		if got := IntDigits(tt.in); got != tt.want {
			t.Errorf("IntDigits(%d) = %d; want %d", tt.in, got, tt.want)
		}
	}
}

func TestRandomString(t *testing.T) {
	s := RandomString(12)
	if len(s) != 12 {
		t.Fatalf("len = %d", len(s))
	}
	for _, c := range s {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			t.Errorf("unexpected rune %q", c)
		}
	}
	if RandomString(0) != "" {
		t.Error("expected empty string")
	}
}

func TestNewUUID(t *testing.T) {
	id, err := uuid.Parse(NewUUID())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if id.Version() != 4 {
		t.Errorf("version = %d; want 4", id.Version())
	}
}
