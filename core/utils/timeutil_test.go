package utils

import (
	"testing"
	"time"
)

func TestOverlaps(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		aStart time.Time
		aEnd   time.Time
		bStart time.Time
		bEnd   time.Time
		want   bool
	}{
		{
			name:   "identical intervals overlap",
			aStart: base, aEnd: base.Add(30 * time.Minute),
			bStart: base, bEnd: base.Add(30 * time.Minute),
			want: true,
		},
		{
			name:   "touching end to start does not overlap",
			aStart: base, aEnd: base.Add(30 * time.Minute),
			bStart: base.Add(30 * time.Minute), bEnd: base.Add(time.Hour),
			want: false,
		},
		{
			name:   "partial overlap",
			aStart: base, aEnd: base.Add(30 * time.Minute),
			bStart: base.Add(15 * time.Minute), bEnd: base.Add(45 * time.Minute),
			want: true,
		},
		{
			name:   "containment",
			aStart: base, aEnd: base.Add(time.Hour),
			bStart: base.Add(15 * time.Minute), bEnd: base.Add(30 * time.Minute),
			want: true,
		},
		{
			name:   "disjoint",
			aStart: base, aEnd: base.Add(30 * time.Minute),
			bStart: base.Add(2 * time.Hour), bEnd: base.Add(3 * time.Hour),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd)
			if got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"09:00", 540, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"17:30", 1050, false},
		{"24:00", 0, true},
		{"09:60", 0, true},
		{"garbage", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestAtMinutesRespectsLocation(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)
	got := AtMinutes(date, 9*60, loc)

	if got.Hour() != 9 || got.Minute() != 0 {
		t.Errorf("AtMinutes wall clock = %02d:%02d, want 09:00", got.Hour(), got.Minute())
	}
	// New York is UTC-5 in early March.
	if got.UTC().Hour() != 14 {
		t.Errorf("AtMinutes UTC hour = %d, want 14", got.UTC().Hour())
	}
}

func TestApplyBuffers(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	bStart, bEnd := ApplyBuffers(start, end, 10, 5)
	if !bStart.Equal(start.Add(-10 * time.Minute)) {
		t.Errorf("buffered start = %v", bStart)
	}
	if !bEnd.Equal(end.Add(5 * time.Minute)) {
		t.Errorf("buffered end = %v", bEnd)
	}

	// Zero buffers leave the interval untouched.
	zStart, zEnd := ApplyBuffers(start, end, 0, 0)
	if !zStart.Equal(start) || !zEnd.Equal(end) {
		t.Errorf("zero buffers changed interval: [%v, %v)", zStart, zEnd)
	}
}
