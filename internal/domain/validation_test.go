package domain

import (
	"testing"
)

func TestNormalizeMobile(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain ten digits", "9123456789", "+989123456789"},
		{"with spaces", "912 345 6789", "+989123456789"},
		{"with leading zero", "09123456789", "+989123456789"},
		{"already prefixed", "+989123456789", "+989123456789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeMobile(tt.input)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestValidateMobile(t *testing.T) {
	tests := []struct {
		name        string
		mobile      string
		expectError bool
	}{
		{"valid", "9123456789", false},
		{"valid with spaces", "912 345 6789", false},
		{"valid with leading zero", "09123456789", false},
		{"valid with country code", "+989123456789", false},
		{"does not start with 9", "8123456789", true},
		{"too short", "912345678", true},
		{"last ten digits do not start with 9", "91234567890", true},
		{"non numeric", "912345678a", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMobile(tt.mobile)

			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name        string
		password    string
		expectError bool
	}{
		{"valid", "abcd1234", false},
		{"too short", "abc1234", true},
		{"too long", "abcdefgh123456789", true},
		{"max length", "abcdefgh12345678", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)

			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestRole_IsStaff(t *testing.T) {
	if !RoleBankOwner.IsStaff() || !RoleBranchManager.IsStaff() {
		t.Error("expected owner and branch manager to be staff")
	}

	if RoleUser.IsStaff() {
		t.Error("expected regular user not to be staff")
	}
}

func TestValidatePagination(t *testing.T) {
	limit, offset := ValidatePagination(0, -5)
	if limit != 50 || offset != 0 {
		t.Errorf("expected defaults (50, 0), got (%d, %d)", limit, offset)
	}

	limit, _ = ValidatePagination(5000, 0)
	if limit != 1000 {
		t.Errorf("expected limit clamped to 1000, got %d", limit)
	}
}
