package utils

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	berlin := time.FixedZone("CET", 3600)

	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2024-02-15", "2024-02-15T00:00:00+01:00", false},
		{"2024-02-15T10:00:00Z", "2024-02-15T10:00:00Z", false},
		{"2024-02-15T10:00:00.123Z", "2024-02-15T10:00:00.123Z", false},
		{"2024-02-15T10:00:00+07:00", "2024-02-15T10:00:00+07:00", false},
		{"2024-02-15T10:00:00", "2024-02-15T10:00:00+01:00", false},
		{"15/02/2024", "", true},
		{"", "", true},
	}

	for i, c := range cases {
		got, err := ParseDate(c.in, berlin)
		if (err != nil) != c.wantErr {
			t.Fatalf("case %d: ParseDate(%q) error = %v, wantErr %v", i, c.in, err, c.wantErr)
		}
		if c.wantErr {
			continue
		}
		if got.Format(time.RFC3339Nano) != c.want {
			t.Fatalf("case %d: ParseDate(%q) = %s, want %s", i, c.in, got.Format(time.RFC3339Nano), c.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)

	if got := FormatDate(&d); got != "2024-06-10" {
		t.Fatalf("FormatDate() = %q", got)
	}
	if got := FormatDate(nil); got != "" {
		t.Fatalf("FormatDate(nil) = %q, want empty", got)
	}
}

func TestFormatDateForDisplay(t *testing.T) {
	d := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		in   *time.Time
		want string
	}{
		{nil, "No date"},
		{&time.Time{}, "No date"},
		{&d, "Feb 15, 2024"},
	}
	for i, c := range cases {
		if got := FormatDateForDisplay(c.in); got != c.want {
			t.Fatalf("case %d: FormatDateForDisplay() = %q, want %q", i, got, c.want)
		}
	}
}
