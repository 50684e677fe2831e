package services

import "testing"

func TestParseSalary(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"3500000", 3500000},
		{"$3,500,000", 3500000},
		{"3500000.75", 3500000},
		{" 2 500 000 ", 2500000},
		{"COP 1.000", 1},
		{"", 0},
		{"abc", 0},
		{"...", 0},
	}
	for _, tc := range tests {
		if got := ParseSalary(tc.in); got != tc.want {
			t.Errorf("ParseSalary(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
