package budget

import (
	"math"
	"testing"
	"time"
)

func TestParseRemaining(t *testing.T) {
	cases := []struct {
		text        string
		wantMinutes int
		wantOK      bool
	}{
		{"87:23", 5243, true},
		{"87 uur 23 min", 5243, true},
		{"Tegoed: 87 uur en 23 minuten", 5243, true},
		{"12h 30m", 750, true},
		{"5 uur", 300, true},
		{"45 min", 45, true},
		{"0:00", 0, false},
		{"geen tegoed", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			minutes, ok := ParseRemaining(tc.text)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if minutes != tc.wantMinutes {
				t.Fatalf("minutes = %d, want %d", minutes, tc.wantMinutes)
			}
		})
	}
}

func TestAnalyzeMidMonthProjection(t *testing.T) {
	// Day 15 of a 30-day month, 150h monthly budget, 87:23 remaining.
	now := time.Date(2026, time.April, 15, 12, 0, 0, 0, time.UTC)

	proj, ok := Analyze("87:23", 150, now)
	if !ok {
		t.Fatal("expected a projection")
	}

	wantUsed := 150*60 - (87*60 + 23)
	if proj.MinutesUsed != wantUsed {
		t.Fatalf("minutes used = %d, want %d", proj.MinutesUsed, wantUsed)
	}
	if proj.MinutesRemaining != 5243 {
		t.Fatalf("minutes remaining = %d, want 5243", proj.MinutesRemaining)
	}
	if proj.ElapsedDays != 15 || proj.DaysInPeriod != 30 {
		t.Fatalf("period = %d/%d days, want 15/30", proj.ElapsedDays, proj.DaysInPeriod)
	}

	wantDaily := float64(wantUsed) / 15
	if math.Abs(proj.DailyAverageUsed-wantDaily) > 1e-9 {
		t.Fatalf("daily average = %v, want %v", proj.DailyAverageUsed, wantDaily)
	}
	wantProjected := wantDaily * 30
	if math.Abs(proj.ProjectedTotal-wantProjected) > 1e-9 {
		t.Fatalf("projected total = %v, want %v", proj.ProjectedTotal, wantProjected)
	}
	wantDelta := float64(150*60)/30*15 - float64(wantUsed)
	if math.Abs(proj.ScheduleDeltaMinutes-wantDelta) > 1e-9 {
		t.Fatalf("schedule delta = %v, want %v", proj.ScheduleDeltaMinutes, wantDelta)
	}
	// 3757 used in half the month projects to 7514 of 9000 minutes.
	if proj.OverBudget {
		t.Fatal("should not be over budget")
	}
}

func TestAnalyzeOverBudget(t *testing.T) {
	// 20 hours left on day 15 of June: usage far ahead of the budget pace.
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

	proj, ok := Analyze("20:00", 150, now)
	if !ok {
		t.Fatal("expected a projection")
	}
	if !proj.OverBudget {
		t.Fatal("expected over-budget pace")
	}
	if proj.ScheduleDeltaMinutes >= 0 {
		t.Fatalf("schedule delta = %v, want negative", proj.ScheduleDeltaMinutes)
	}
}

func TestAnalyzeUnparseableDegrades(t *testing.T) {
	now := time.Date(2026, time.April, 15, 12, 0, 0, 0, time.UTC)
	if _, ok := Analyze("unknown", 150, now); ok {
		t.Fatal("expected parse failure to degrade to no projection")
	}
}
