package utils

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantNil bool
		wantErr bool
	}{
		{"valid date", "2026-06-15", "2026-06-15", false, false},
		{"empty means unset", "", "", true, false},
		{"slash format rejected", "2026/06/15", "", false, true},
		{"garbage rejected", "not-a-date", "", false, true},
		{"month out of range", "2026-13-01", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q) error = nil, want error", tt.raw)
				}
				if !errors.Is(err, ErrInvalidDate) {
					t.Errorf("ParseDate(%q) error = %v, want ErrInvalidDate", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) error = %v", tt.raw, err)
			}
			if tt.wantNil {
				if got != nil {
					t.Errorf("ParseDate(%q) = %v, want nil", tt.raw, got)
				}
				return
			}
			if got == nil || got.Format(DateLayout) != tt.want {
				t.Errorf("ParseDate(%q) = %v, want %s", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(nil); got != "" {
		t.Errorf("FormatDate(nil) = %q, want empty", got)
	}
	d := time.Date(2026, time.June, 15, 13, 45, 0, 0, time.UTC)
	if got := FormatDate(&d); got != "2026-06-15" {
		t.Errorf("FormatDate() = %q, want 2026-06-15", got)
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			"same day",
			time.Date(2026, time.June, 15, 8, 0, 0, 0, time.UTC),
			time.Date(2026, time.June, 15, 22, 0, 0, 0, time.UTC),
			0,
		},
		{
			"one day apart ignoring time of day",
			time.Date(2026, time.June, 15, 23, 0, 0, 0, time.UTC),
			time.Date(2026, time.June, 16, 1, 0, 0, 0, time.UTC),
			1,
		},
		{
			"thirty days",
			time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.February, 9, 0, 0, 0, 0, time.UTC),
			30,
		},
		{
			"negative when end precedes start",
			time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC),
			-5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.start, tt.end); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}
