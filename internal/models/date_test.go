package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateOf(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, time.March, 9, 23, 45, 12, 0, time.UTC)
	if got := DateOf(ts); got != Date("2025-03-09") {
		t.Errorf("Expected 2025-03-09, got %s", got)
	}
}

func TestDate_AddDays(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		date Date
		days int
		want Date
	}{
		{"next day", "2025-03-09", 1, "2025-03-10"},
		{"month boundary", "2025-01-31", 1, "2025-02-01"},
		{"year boundary", "2024-12-31", 1, "2025-01-01"},
		{"leap day", "2024-02-28", 1, "2024-02-29"},
		{"backwards", "2025-03-01", -1, "2025-02-28"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.date.AddDays(tt.days); got != tt.want {
				t.Errorf("%s + %d days: expected %s, got %s", tt.date, tt.days, tt.want, got)
			}
		})
	}
}

func TestDate_Components(t *testing.T) {
	t.Parallel()

	d := Date("2025-06-03")
	if d.Weekday() != time.Tuesday {
		t.Errorf("Expected Tuesday, got %s", d.Weekday())
	}
	if d.DayOfMonth() != 3 {
		t.Errorf("Expected day 3, got %d", d.DayOfMonth())
	}
}

func TestDate_JSON(t *testing.T) {
	t.Parallel()

	type wrapper struct {
		Day Date `json:"day"`
	}

	data, err := json.Marshal(wrapper{Day: "2025-03-09"})
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	if string(data) != `{"day":"2025-03-09"}` {
		t.Errorf("Unexpected JSON: %s", data)
	}

	var decoded wrapper
	if err := json.Unmarshal([]byte(`{"day":null}`), &decoded); err != nil {
		t.Fatalf("Failed to unmarshal null: %v", err)
	}
	if !decoded.Day.IsZero() {
		t.Errorf("Expected zero date from null, got %s", decoded.Day)
	}

	if err := json.Unmarshal([]byte(`{"day":"not-a-date"}`), &decoded); err == nil {
		t.Error("Expected error for malformed date")
	}
}

func TestLevelForPoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		points int
		want   int
	}{
		{0, 1},
		{499, 1},
		{500, 2},
		{1000, 3},
		{1249, 3},
	}

	for _, tt := range tests {
		if got := LevelForPoints(tt.points, 500); got != tt.want {
			t.Errorf("LevelForPoints(%d): expected %d, got %d", tt.points, tt.want, got)
		}
	}
}
