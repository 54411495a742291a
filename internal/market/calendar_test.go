package market

import (
	"testing"
	"time"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestDateRange_Daily(t *testing.T) {
	dates := dateRange(day(2023, 1, 1), day(2023, 1, 5), "1d")
	if len(dates) != 5 {
		t.Fatalf("unexpected count: got %d want 5", len(dates))
	}
	if !dates[0].Equal(day(2023, 1, 1)) || !dates[4].Equal(day(2023, 1, 5)) {
		t.Errorf("unexpected endpoints: %v .. %v", dates[0], dates[4])
	}
}

func TestDateRange_WeeklyAnchorsOnSunday(t *testing.T) {
	dates := dateRange(day(2023, 1, 1), day(2023, 1, 31), "1wk")
	if len(dates) != 5 {
		t.Fatalf("unexpected count: got %d want 5", len(dates))
	}
	for i, d := range dates {
		if d.Weekday() != time.Sunday {
			t.Errorf("date %d is %v, want Sunday", i, d.Weekday())
		}
	}
	if !dates[0].Equal(day(2023, 1, 1)) || !dates[4].Equal(day(2023, 1, 29)) {
		t.Errorf("unexpected endpoints: %v .. %v", dates[0], dates[4])
	}
}

func TestDateRange_MonthlyAnchorsOnMonthStart(t *testing.T) {
	dates := dateRange(day(2023, 1, 15), day(2023, 4, 10), "1mo")
	want := []time.Time{day(2023, 2, 1), day(2023, 3, 1), day(2023, 4, 1)}
	if len(dates) != len(want) {
		t.Fatalf("unexpected count: got %d want %d", len(dates), len(want))
	}
	for i := range want {
		if !dates[i].Equal(want[i]) {
			t.Errorf("date %d mismatch: got %v want %v", i, dates[i], want[i])
		}
	}
}

func TestDateRange_QuarterlyCrossesYear(t *testing.T) {
	dates := dateRange(day(2022, 11, 1), day(2023, 6, 1), "3mo")
	want := []time.Time{day(2022, 11, 1), day(2023, 2, 1), day(2023, 5, 1)}
	if len(dates) != len(want) {
		t.Fatalf("unexpected count: got %d want %d", len(dates), len(want))
	}
	for i := range want {
		if !dates[i].Equal(want[i]) {
			t.Errorf("date %d mismatch: got %v want %v", i, dates[i], want[i])
		}
	}
}

func TestDateRange_Hourly(t *testing.T) {
	dates := dateRange(day(2023, 1, 1), day(2023, 1, 1).Add(3*time.Hour), "1h")
	if len(dates) != 4 {
		t.Fatalf("unexpected count: got %d want 4", len(dates))
	}
}

func TestDateRange_EmptyWhenNoAlignedPoint(t *testing.T) {
	// 周一到周三之间没有周日，序列为空，回落逻辑由 Query 负责。
	dates := dateRange(day(2023, 1, 2), day(2023, 1, 4), "1wk")
	if len(dates) != 0 {
		t.Fatalf("expected empty range, got %d", len(dates))
	}
}
