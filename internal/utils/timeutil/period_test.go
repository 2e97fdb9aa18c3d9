package timeutil

import (
	"testing"
	"time"
)

func TestParsePeriod(t *testing.T) {
	got, err := ParsePeriod("202509")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v want %v", got, want)
	}

	for _, bad := range []string{"", "2025", "2025-09", "202513", "abc123"} {
		if _, err := ParsePeriod(bad); err == nil {
			t.Errorf("period %q should be rejected", bad)
		}
	}
}

func TestPeriodEnd(t *testing.T) {
	cases := map[string]time.Time{
		"202501": time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		"202512": time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		"202402": time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), // 闰二月
	}
	for period, want := range cases {
		got, err := PeriodEnd(period)
		if err != nil {
			t.Fatalf("%s: %v", period, err)
		}
		if !got.Equal(want) {
			t.Errorf("%s: got %v want %v", period, got, want)
		}
	}
}

func TestFormatPeriodRoundTrip(t *testing.T) {
	ts := time.Date(2025, 11, 30, 23, 59, 59, 0, time.UTC)
	period := FormatPeriod(ts)
	if period != "202511" {
		t.Fatalf("format: got %s", period)
	}
	start, err := ParsePeriod(period)
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	end, _ := PeriodEnd(period)
	if ts.Before(start) || !ts.Before(end) {
		t.Errorf("timestamp %v outside its own period [%v, %v)", ts, start, end)
	}
}
