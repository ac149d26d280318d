package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "in_progress", "completed"} {
		got, err := ParseStatus(s)
		if err != nil {
			t.Fatalf("ParseStatus(%q) err=%v, want nil", s, err)
		}
		if string(got) != s {
			t.Fatalf("ParseStatus(%q)=%q", s, got)
		}
	}

	_, err := ParseStatus("done")
	if !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("ParseStatus(done) err=%v, want %v", err, ErrUnknownStatus)
	}
}

func TestParsePriority(t *testing.T) {
	for _, s := range []string{"low", "medium", "high"} {
		if _, err := ParsePriority(s); err != nil {
			t.Fatalf("ParsePriority(%q) err=%v, want nil", s, err)
		}
	}

	_, err := ParsePriority("HIGH")
	if !errors.Is(err, ErrUnknownPriority) {
		t.Fatalf("ParsePriority(HIGH) err=%v, want %v", err, ErrUnknownPriority)
	}
}

func TestParseDate(t *testing.T) {
	cases := map[string]Date{
		"2025-01-05":                NewDate(2025, time.January, 5),
		" 2025-12-31 ":              NewDate(2025, time.December, 31),
		"2025-01-05T23:30:00-05:00": NewDate(2025, time.January, 5),
		"2025-01-05T00:10:00+09:00": NewDate(2025, time.January, 5),
	}
	for in, want := range cases {
		got, err := ParseDate(in)
		if err != nil {
			t.Fatalf("ParseDate(%q) err=%v, want nil", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("ParseDate(%q)=%s, want %s", in, got, want)
		}
	}

	for _, in := range []string{"", "tomorrow", "2025-02-30", "05/01/2025"} {
		if _, err := ParseDate(in); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("ParseDate(%q) err=%v, want %v", in, err, ErrInvalidDate)
		}
	}
}

func TestDate_DaysSince(t *testing.T) {
	today := NewDate(2025, time.January, 5)

	if got := NewDate(2025, time.January, 1).DaysSince(today); got != -4 {
		t.Fatalf("DaysSince=%d, want -4", got)
	}
	if got := today.DaysSince(today); got != 0 {
		t.Fatalf("DaysSince=%d, want 0", got)
	}
	if got := today.AddDays(30).DaysSince(today); got != 30 {
		t.Fatalf("DaysSince=%d, want 30", got)
	}
	// leap day
	if got := NewDate(2024, time.March, 1).DaysSince(NewDate(2024, time.February, 28)); got != 2 {
		t.Fatalf("DaysSince=%d, want 2", got)
	}
}

func TestDate_JSON(t *testing.T) {
	type wrapper struct {
		Due Date `json:"due"`
	}

	out, err := json.Marshal(wrapper{Due: NewDate(2025, time.March, 9)})
	if err != nil {
		t.Fatalf("Marshal err=%v", err)
	}
	if string(out) != `{"due":"2025-03-09"}` {
		t.Fatalf("Marshal=%s", out)
	}

	out, _ = json.Marshal(wrapper{})
	if string(out) != `{"due":null}` {
		t.Fatalf("Marshal zero=%s", out)
	}

	var w wrapper
	if err := json.Unmarshal([]byte(`{"due":"2025-03-09"}`), &w); err != nil {
		t.Fatalf("Unmarshal err=%v", err)
	}
	if w.Due.String() != "2025-03-09" {
		t.Fatalf("Unmarshal=%s", w.Due)
	}

	if err := json.Unmarshal([]byte(`{"due":"not a date"}`), &w); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("Unmarshal err=%v, want %v", err, ErrInvalidDate)
	}
}

func TestParseDate_FirstDayOfYearOne(t *testing.T) {
	d, err := ParseDate("0001-01-01")
	if err != nil {
		t.Fatalf("ParseDate err=%v, want nil", err)
	}
	if d.IsZero() {
		t.Fatalf("ParseDate(0001-01-01).IsZero()=true, want a set date")
	}
	if d.String() != "0001-01-01" {
		t.Fatalf("String()=%q, want 0001-01-01", d.String())
	}
	if !d.Before(NewDate(2025, time.January, 1)) {
		t.Fatalf("0001-01-01 should be before 2025-01-01")
	}
	if got := d.DaysSince(NewDate(2, time.January, 1)); got != -365 {
		t.Fatalf("DaysSince=%d, want -365", got)
	}
	if (Date{}).String() != "" {
		t.Fatalf("zero Date String()=%q, want empty", (Date{}).String())
	}
}
