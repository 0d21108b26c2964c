package domain

import "testing"

func TestDailyInterest(t *testing.T) {
	tests := []struct {
		name          string
		balance       int64
		yearlyPercent int64
		expected      int64
	}{
		{
			name:          "exact daily interest",
			balance:       36500,
			yearlyPercent: 10,
			expected:      10, // 36500*10/100/365 = 10.0
		},
		{
			name:          "zero balance",
			balance:       0,
			yearlyPercent: 10,
			expected:      0,
		},
		{
			name:          "small balance rounds to zero",
			balance:       100,
			yearlyPercent: 10,
			expected:      0, // 0.0273...
		},
		{
			name:          "rounds nearest",
			balance:       100000,
			yearlyPercent: 10,
			expected:      27, // 27.397...
		},
		{
			name:          "halfway rounds down to even",
			balance:       9125, // 9125*10/36500 = 2.5
			yearlyPercent: 10,
			expected:      2,
		},
		{
			name:          "halfway rounds up to even",
			balance:       5475, // 5475*10/36500 = 1.5
			yearlyPercent: 10,
			expected:      2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DailyInterest(tt.balance, tt.yearlyPercent)
			if got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestRoundHalfEven(t *testing.T) {
	tests := []struct {
		numerator   int64
		denominator int64
		expected    int64
	}{
		{25, 2, 12},   // 12.5 -> even neighbor 12
		{35, 2, 18},   // 17.5 -> even neighbor 18
		{150, 12, 12}, // 12.5 -> 12
		{42, 12, 4},   // 3.5 -> 4
		{10, 3, 3},    // 3.33 -> 3
		{20, 3, 7},    // 6.66 -> 7
		{-25, 2, -12},
	}

	for _, tt := range tests {
		got := RoundHalfEven(tt.numerator, tt.denominator)
		if got != tt.expected {
			t.Errorf("RoundHalfEven(%d, %d): expected %d, got %d",
				tt.numerator, tt.denominator, tt.expected, got)
		}
	}
}
