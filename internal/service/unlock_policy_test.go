package service

import (
	"testing"
	"time"
)

func fixedPolicy(t *testing.T, at time.Time) *UnlockPolicy {
	t.Helper()
	return NewUnlockPolicy(WithClock(func() time.Time { return at }))
}

func berlinTime(t *testing.T, year int, month time.Month, day, hour, minute int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation(ReferenceTimezone)
	if err != nil {
		t.Fatalf("failed to load timezone: %v", err)
	}
	return time.Date(year, month, day, hour, minute, 0, 0, loc)
}

func TestUnlockPolicyOverrideAlwaysUnlocks(t *testing.T) {
	dates := []time.Time{
		time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC),
		time.Date(2025, time.November, 30, 23, 0, 0, 0, time.UTC),
		time.Date(2025, time.December, 1, 6, 0, 0, 0, time.UTC),
	}

	for _, at := range dates {
		policy := fixedPolicy(t, at)
		for day := 1; day <= DoorCount; day++ {
			if !policy.IsUnlocked(day, true) {
				t.Fatalf("expected day %d unlocked with override at %s", day, at)
			}
		}
	}
}

func TestUnlockPolicyOutsideDecemberLocksEverything(t *testing.T) {
	for _, month := range []time.Month{time.January, time.June, time.November} {
		policy := fixedPolicy(t, berlinTime(t, 2025, month, 28, 12, 0))
		for day := 1; day <= DoorCount; day++ {
			if policy.IsUnlocked(day, false) {
				t.Fatalf("expected day %d locked in %s", day, month)
			}
		}
	}
}

func TestUnlockPolicyDecemberUnlocksUpToToday(t *testing.T) {
	for current := 1; current <= 31; current++ {
		policy := fixedPolicy(t, berlinTime(t, 2025, time.December, current, 9, 0))
		for day := 1; day <= DoorCount; day++ {
			want := day <= current
			if got := policy.IsUnlocked(day, false); got != want {
				t.Fatalf("december %d, day %d: expected %v, got %v", current, day, want, got)
			}
		}
	}
}

func TestUnlockPolicyScenarios(t *testing.T) {
	tests := []struct {
		name     string
		at       time.Time
		unlocked int
	}{
		{name: "dec 10", at: berlinTime(t, 2025, time.December, 10, 8, 0), unlocked: 10},
		{name: "nov 30", at: berlinTime(t, 2025, time.November, 30, 23, 59), unlocked: 0},
		{name: "dec 24", at: berlinTime(t, 2025, time.December, 24, 0, 0), unlocked: 24},
		{name: "jan 1", at: berlinTime(t, 2026, time.January, 1, 0, 0), unlocked: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := fixedPolicy(t, tt.at)
			for day := 1; day <= DoorCount; day++ {
				want := day <= tt.unlocked
				if got := policy.IsUnlocked(day, false); got != want {
					t.Fatalf("day %d: expected %v, got %v", day, want, got)
				}
			}
		})
	}
}

func TestUnlockPolicyUsesReferenceTimezone(t *testing.T) {
	// 23:30 UTC on Nov 30 is already Dec 1 in Berlin.
	at := time.Date(2025, time.November, 30, 23, 30, 0, 0, time.UTC)
	policy := fixedPolicy(t, at)

	if !policy.IsUnlocked(1, false) {
		t.Fatal("expected door 1 to unlock at Berlin midnight")
	}
	if policy.IsUnlocked(2, false) {
		t.Fatal("expected door 2 to stay locked")
	}
	if policy.CurrentMonth() != time.December || policy.CurrentDay() != 1 {
		t.Fatalf("unexpected current date %s", policy.CurrentDate())
	}

	// 23:30 UTC on Dec 31 is already January in Berlin.
	late := fixedPolicy(t, time.Date(2025, time.December, 31, 23, 30, 0, 0, time.UTC))
	if late.IsUnlocked(1, false) {
		t.Fatal("expected doors to lock once January starts in Berlin")
	}
}

func TestUnlockPolicyFormatDate(t *testing.T) {
	policy := NewUnlockPolicy()
	got := policy.FormatDate(time.Date(2025, time.December, 5, 23, 30, 0, 0, time.UTC))
	if got != "06.12.2025" {
		t.Fatalf("expected 06.12.2025, got %q", got)
	}
}

func TestLoadReferenceLocationFallsBack(t *testing.T) {
	loc := LoadReferenceLocation("Mars/Olympus_Mons")
	_, offset := time.Date(2025, time.December, 1, 0, 0, 0, 0, loc).Zone()
	if offset != 3600 {
		t.Fatalf("expected fixed +01:00 fallback, got offset %d", offset)
	}
}
