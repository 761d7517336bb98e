package schedule

import (
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2026, time.August, 27, 9, 0, 0, 0, time.Local)

func TestResolveIntervalToday(t *testing.T) {
	iv, label, err := ResolveInterval("13:00-14:00", "today", testNow)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if label != "today" {
		t.Fatalf("unexpected label %q", label)
	}
	want := time.Date(2026, time.August, 27, 13, 0, 0, 0, time.Local)
	if !iv.Start.Equal(want) {
		t.Fatalf("start = %v, want %v", iv.Start, want)
	}
	if iv.Minutes() != 60 {
		t.Fatalf("duration = %d minutes, want 60", iv.Minutes())
	}
}

func TestResolveIntervalNoDayRollsOverMidnight(t *testing.T) {
	iv, label, err := ResolveInterval("23:30-00:15", "", testNow)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if label != "today" {
		t.Fatalf("unexpected label %q", label)
	}
	if iv.Minutes() != 45 {
		t.Fatalf("duration = %d minutes, want 45", iv.Minutes())
	}
	if iv.End.Day() != 28 {
		t.Fatalf("end should land on the next day, got %v", iv.End)
	}
}

func TestResolveIntervalExplicitDayRejectsRollover(t *testing.T) {
	for _, token := range []string{"today", "tomorrow", "2026-08-28"} {
		if _, _, err := ResolveInterval("23:30-00:15", token, testNow); !errors.Is(err, ErrEndBeforeStart) {
			t.Errorf("token %q: err = %v, want ErrEndBeforeStart", token, err)
		}
	}
}

func TestResolveIntervalTomorrow(t *testing.T) {
	iv, label, err := ResolveInterval("09:00-10:30", "tomorrow", testNow)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if label != "tomorrow" {
		t.Fatalf("unexpected label %q", label)
	}
	if iv.Start.Day() != 28 {
		t.Fatalf("start should be tomorrow, got %v", iv.Start)
	}
	if iv.Minutes() != 90 {
		t.Fatalf("duration = %d minutes, want 90", iv.Minutes())
	}
}

func TestResolveIntervalToSeparator(t *testing.T) {
	iv, _, err := ResolveInterval("13:00 to 14:30", "", testNow)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if iv.Minutes() != 90 {
		t.Fatalf("duration = %d minutes, want 90", iv.Minutes())
	}
}

func TestResolveIntervalExplicitDate(t *testing.T) {
	iv, label, err := ResolveInterval("13:00-14:00", "2026-08-28", testNow)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if label != "2026-08-28" {
		t.Fatalf("unexpected label %q", label)
	}
	if iv.Start.Day() != 28 {
		t.Fatalf("start day = %d, want 28", iv.Start.Day())
	}
}

func TestResolveIntervalDateOutOfRange(t *testing.T) {
	for _, date := range []string{"2026-08-26", "2026-08-29", "2025-01-01"} {
		if _, _, err := ResolveInterval("13:00-14:00", date, testNow); !errors.Is(err, ErrDateOutOfRange) {
			t.Errorf("date %q: err = %v, want ErrDateOutOfRange", date, err)
		}
	}
}

func TestResolveIntervalInvalidFormat(t *testing.T) {
	cases := []string{
		"",
		"13:00",
		"1300-1400",
		"13:00-14:00-15:00",
		"25:00-26:00",
		"13:60-14:00",
		"one-two",
	}
	for _, rangeText := range cases {
		if _, _, err := ResolveInterval(rangeText, "", testNow); !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("range %q: err = %v, want ErrInvalidFormat", rangeText, err)
		}
	}
}

func TestResolveIntervalGarbageDayToken(t *testing.T) {
	if _, _, err := ResolveInterval("13:00-14:00", "next week", testNow); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("err = %v, want ErrInvalidFormat", err)
	}
}
