package window

import (
	"testing"
	"time"
)

func TestActiveBoundaries(t *testing.T) {
	loc := time.FixedZone("CST", 8*3600)
	now := time.Date(2026, 10, 17, 9, 30, 0, 0, loc)
	w := Active(now, loc)

	cases := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"today noon", time.Date(2026, 10, 17, 12, 0, 0, 0, loc), true},
		{"today 11:59:59", time.Date(2026, 10, 17, 11, 59, 59, 0, loc), false},
		{"tomorrow last microsecond", time.Date(2026, 10, 18, 23, 59, 59, 999999000, loc), true},
		{"one microsecond later", time.Date(2026, 10, 18, 23, 59, 59, 999999000, loc).Add(time.Microsecond), false},
		{"tomorrow morning", time.Date(2026, 10, 18, 8, 0, 0, 0, loc), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := w.Contains(tc.t); got != tc.want {
				t.Errorf("Contains(%v) = %v, want %v", tc.t, got, tc.want)
			}
		})
	}
}

func TestActiveUsesLocationDate(t *testing.T) {
	loc := time.FixedZone("CST", 8*3600)
	// 20:00 UTC do dia 17 já é dia 18 em UTC+8
	now := time.Date(2026, 10, 17, 20, 0, 0, 0, time.UTC)
	w := Active(now, loc)
	if want := time.Date(2026, 10, 18, 12, 0, 0, 0, loc); !w.Start.Equal(want) {
		t.Errorf("Start = %v, want %v", w.Start, want)
	}
	if w.Key() != "20261018" {
		t.Errorf("Key = %q", w.Key())
	}
}

func TestActiveEndOfMonth(t *testing.T) {
	now := time.Date(2026, 10, 31, 15, 0, 0, 0, time.UTC)
	w := Active(now, time.UTC)
	if want := time.Date(2026, 11, 1, 23, 59, 59, 999999000, time.UTC); !w.End.Equal(want) {
		t.Errorf("End = %v, want %v", w.End, want)
	}
}
