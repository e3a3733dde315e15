package calendar

import (
	"math"
	"testing"
	"time"
)

func TestFixedFromGregorian(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day int
		want             int
	}{
		{"RD epoch", 1, 1, 1, 1},
		{"Unix epoch", 1970, 1, 1, 719163},
		{"J2000 date", 2000, 1, 1, 730120},
		{"Leap day 2024", 2024, 2, 29, 738945},
		{"After leap day", 2024, 3, 1, 738946},
		{"Calendrical sample 1945-11-12", 1945, 11, 12, 710347},
		{"Before epoch", 0, 12, 31, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FixedFromGregorian(tt.year, tt.month, tt.day)
			if got != tt.want {
				t.Errorf("FixedFromGregorian(%d, %d, %d) = %d, want %d",
					tt.year, tt.month, tt.day, got, tt.want)
			}
		})
	}
}

func TestGregorianRoundTrip(t *testing.T) {
	// Walk across century and leap boundaries, including years before RD 1.
	start := FixedFromGregorian(-3, 1, 1)
	end := FixedFromGregorian(2401, 12, 31)
	for date := start; date <= end; date += 17 {
		y, m, d := GregorianFromFixed(date)
		if got := FixedFromGregorian(y, m, d); got != date {
			t.Fatalf("round trip of %d gave %04d-%02d-%02d -> %d", date, y, m, d, got)
		}
		if got := GregorianYearFromFixed(date); got != y {
			t.Fatalf("GregorianYearFromFixed(%d) = %d, want %d", date, got, y)
		}
	}
}

func TestGregorianYearBoundaries(t *testing.T) {
	for _, year := range []int{-500, -1, 0, 1, 100, 400, 1900, 2000, 2100} {
		first := FixedFromGregorian(year, 1, 1)
		if got := GregorianYearFromFixed(first); got != year {
			t.Errorf("year of Jan 1 %d = %d", year, got)
		}
		if got := GregorianYearFromFixed(first - 1); got != year-1 {
			t.Errorf("year of Dec 31 %d = %d", year-1, got)
		}
	}
}

func TestIsGregorianLeapYear(t *testing.T) {
	tests := []struct {
		year int
		want bool
	}{
		{1900, false},
		{2000, true},
		{2023, false},
		{2024, true},
		{0, true},
		{-4, true},
		{-100, false},
	}

	for _, tt := range tests {
		if got := IsGregorianLeapYear(tt.year); got != tt.want {
			t.Errorf("IsGregorianLeapYear(%d) = %v, want %v", tt.year, got, tt.want)
		}
	}
}

func TestMomentTimeRoundTrip(t *testing.T) {
	times := []time.Time{
		time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 21, 1, 29, 6, 0, time.UTC),
		time.Date(1582, 10, 15, 18, 30, 0, 0, time.UTC),
	}

	for _, tm := range times {
		m := MomentFromTime(tm)
		back := m.Time()
		if d := back.Sub(tm); d > time.Millisecond || d < -time.Millisecond {
			t.Errorf("round trip of %v = %v (diff %v)", tm, back, d)
		}
	}

	if got := MomentFromTime(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)); math.Abs(float64(got)-730120.5) > 1e-9 {
		t.Errorf("moment of J2000 = %v, want 730120.5", got)
	}
}

func TestMomentFixed(t *testing.T) {
	tests := []struct {
		m    Moment
		want int
	}{
		{730120.5, 730120},
		{730120, 730120},
		{-0.25, -1},
		{0.999, 0},
	}

	for _, tt := range tests {
		if got := tt.m.Fixed(); got != tt.want {
			t.Errorf("Moment(%v).Fixed() = %d, want %d", tt.m, got, tt.want)
		}
	}
}

func TestMod(t *testing.T) {
	tests := []struct {
		x, y, want float64
	}{
		{9, 5, 4},
		{-9, 5, 1},
		{9, -5, -1},
		{-9, -5, -4},
		{725.25, 360, 5.25},
	}

	for _, tt := range tests {
		if got := Mod(tt.x, tt.y); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Mod(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestMod3(t *testing.T) {
	tests := []struct {
		x, a, b, want float64
	}{
		{190, -180, 180, -170},
		{-190, -180, 180, 170},
		{180, -180, 180, -180},
		{0.7, -0.5, 0.5, -0.3},
		{42, 3, 3, 42},
	}

	for _, tt := range tests {
		if got := Mod3(tt.x, tt.a, tt.b); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Mod3(%v, %v, %v) = %v, want %v", tt.x, tt.a, tt.b, got, tt.want)
		}
	}
}

func TestPoly(t *testing.T) {
	// 1 + 2x + 3x^2 at x = 0.5
	if got := Poly(0.5, []float64{1, 2, 3}); math.Abs(got-2.75) > 1e-12 {
		t.Errorf("Poly = %v, want 2.75", got)
	}
	if got := Poly(7, nil); got != 0 {
		t.Errorf("Poly of empty coefficients = %v, want 0", got)
	}
}
