package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"123e4567-e89b-12d3-a456-426614174000",
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B",
	}
	invalid := []string{
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"", // empty
	}
	for _, id := range valid {
		if !IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = true, want false", id)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-01-31"); !ok {
		t.Error("expected 2025-01-31 to be valid")
	}
	if _, ok := IsValidDate("31-01-2025"); ok {
		t.Error("expected 31-01-2025 to be invalid")
	}
	if _, ok := IsValidDate("2025-02-30"); ok {
		t.Error("expected 2025-02-30 to be invalid")
	}
}

func TestIsValidTransactionCode(t *testing.T) {
	valid := []string{"BASIC", "NEC_EMP", "HOUSING_ALLOW_2"}
	invalid := []string{"b", "basic", "1BASIC", "", "WAY_TOO_LONG_FOR_A_CODE_FIELD"}
	for _, code := range valid {
		if !IsValidTransactionCode(code) {
			t.Errorf("IsValidTransactionCode(%q) = false, want true", code)
		}
	}
	for _, code := range invalid {
		if IsValidTransactionCode(code) {
			t.Errorf("IsValidTransactionCode(%q) = true, want false", code)
		}
	}
}
