package demography

import (
	"math"
	"testing"
)

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1,234", 1.234, true},
		{"1.5", 1.5, true},
		{" 42 ", 42, true},
		{"-3,25", -3.25, true},
		{"", 0, false},
		{"abc", 0, false},
		{"1 234", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseNumber(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseNumber(%q) = %v,%v want %v,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNumberOrZeroFallback(t *testing.T) {
	if v := NumberOrZero("n/a"); v != 0 {
		t.Errorf("unparseable cell should be 0, got %v", v)
	}
	if v := NumberOrZero("1,234"); v != 1.234 {
		t.Errorf("expected 1.234, got %v", v)
	}
}

func TestPercent(t *testing.T) {
	if p := Percent(100, 50); p != 200.00 {
		t.Errorf("Percent(100, 50) = %v, want 200", p)
	}
	p := Percent(100, 0)
	if p != 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		t.Errorf("zero reference must give 0, got %v", p)
	}
	if p := Percent(1, 3); p != 33.33 {
		t.Errorf("Percent(1, 3) = %v, want 33.33", p)
	}
	if p := Percent(1, 800); p != 0.12 {
		t.Errorf("Percent(1, 800) = %v, want 0.12", p)
	}
	if p := Percent(1, 160); p != 0.62 {
		t.Errorf("Percent(1, 160) = %v, want 0.62", p)
	}
	if p := Percent(2, 3); p != 66.67 {
		t.Errorf("Percent(2, 3) = %v, want 66.67", p)
	}
}
