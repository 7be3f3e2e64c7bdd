package timeutil

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "10:15", want: 615},
		{in: "23:59", want: 1439},
		{in: "24:00", wantErr: true},
		{in: "10:60", wantErr: true},
		{in: "10:5", wantErr: true},
		{in: "1015", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeClock(t *testing.T) {
	got, err := NormalizeClock("9:05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "09:05" {
		t.Fatalf("expected 09:05, got %s", got)
	}
}

func TestAddDaysCrossesMonth(t *testing.T) {
	got, err := AddDays("2026-01-31", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2026-02-01" {
		t.Fatalf("expected 2026-02-01, got %s", got)
	}
}

func TestMinuteAndDateOf(t *testing.T) {
	at := time.Date(2026, 10, 19, 9, 50, 30, 0, time.UTC)
	if MinuteOf(at) != 590 {
		t.Fatalf("expected 590, got %d", MinuteOf(at))
	}
	if DateOf(at) != "2026-10-19" {
		t.Fatalf("unexpected date %s", DateOf(at))
	}
}
