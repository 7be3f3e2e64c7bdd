package timeutil

import (
	"testing"
)

func TestParseMinutes(t *testing.T) {
	cases := map[string]int{
		"45":      45,
		"45m":     45,
		"1h":      60,
		"1h30m":   90,
		"1h 30m":  90,
		"2 hours": 120,
		" 15min ": 15,
	}
	for in, want := range cases {
		got, err := ParseMinutes(in)
		if err != nil {
			t.Fatalf("ParseMinutes(%q): unexpected error: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseMinutes(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestParseMinutesInvalid(t *testing.T) {
	for _, in := range []string{"", "noop", "2d", "0", "-5", "0h"} {
		if _, err := ParseMinutes(in); err == nil {
			t.Errorf("ParseMinutes(%q): expected error", in)
		}
	}
}

func TestParseMinutesRoundTrip(t *testing.T) {
	for _, m := range []int{5, 45, 60, 90, 125} {
		got, err := ParseMinutes(FormatMinutes(m))
		if err != nil {
			t.Fatalf("round trip %d: %v", m, err)
		}
		if got != m {
			t.Errorf("round trip %d: got %d", m, got)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	cases := map[int]string{
		0:   "0m",
		45:  "45m",
		60:  "1h",
		90:  "1h 30m",
		125: "2h 5m",
	}
	for in, want := range cases {
		if got := FormatMinutes(in); got != want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", in, got, want)
		}
	}
}
